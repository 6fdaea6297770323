package hidtag

import (
	"errors"

	"github.com/smallnest/ringbuffer"
)

// ErrIncomplete is returned by IncrementalDecoder.Feed when the buffered
// bytes form the start of an item but not yet its full payload. Callers
// should feed more bytes and retry; this is not a parse error.
var ErrIncomplete = errors.New("hidtag: incomplete item")

// incrementalBufferSize bounds the ring buffer backing a single in-flight
// item: a prefix byte plus at most 4 payload bytes.
const incrementalBufferSize = 5

// IncrementalDecoder decodes a descriptor one byte at a time, advancing an
// internal state machine (prefix -> collect N bytes -> emit item). This is
// what an editor-style consumer needs for partial or actively-edited
// descriptors, where a full byte buffer isn't available up front.
type IncrementalDecoder struct {
	buf    *ringbuffer.RingBuffer
	offset int
}

// NewIncrementalDecoder returns a decoder starting at descriptor offset 0.
func NewIncrementalDecoder() *IncrementalDecoder {
	return &IncrementalDecoder{
		buf: ringbuffer.New(incrementalBufferSize),
	}
}

// Feed appends one byte to the decoder. It returns a completed Item once
// enough bytes have accumulated for the current prefix, ErrIncomplete if
// more bytes are still needed, or a fatal error for an unknown tag.
func (d *IncrementalDecoder) Feed(b byte) (Item, error) {
	if _, err := d.buf.Write([]byte{b}); err != nil && !errors.Is(err, ringbuffer.ErrIsFull) {
		return Item{}, err
	}

	if d.buf.Length() == 0 {
		return Item{}, ErrIncomplete
	}

	pending := make([]byte, d.buf.Length())
	n, err := d.buf.TryRead(pending)
	if err != nil && !errors.Is(err, ringbuffer.ErrIsEmpty) {
		return Item{}, err
	}
	pending = pending[:n]

	prefix := pending[0]
	size := payloadSize(prefix)
	if len(pending) < 1+size {
		// Not enough bytes yet: put everything back for the next Feed.
		d.buf.Write(pending)
		return Item{}, ErrIncomplete
	}

	tag, cat, err := lookupTag(prefix, d.offset)
	if err != nil {
		d.requeue(pending, 1+size)
		return Item{}, err
	}

	var raw uint32
	for i := 0; i < size; i++ {
		raw |= uint32(pending[1+i]) << (8 * i)
	}

	item := Item{
		Tag:      tag,
		Category: cat,
		Size:     size,
		RawValue: raw,
		Offset:   d.offset,
		RawBytes: append([]byte(nil), pending[:1+size]...),
	}
	switch tag {
	case TagLogicalMinimum, TagPhysicalMinimum:
		item.IsSigned = true
		item.SignedValue = TwosComplement(raw, size*8)
	case TagUnitExponent:
		item.IsSigned = true
		item.SignedValue = unitExponent(raw)
	default:
		item.SignedValue = int32(raw)
	}

	d.offset += 1 + size
	d.requeue(pending, 1+size)
	return item, nil
}

// requeue pushes back any bytes beyond the first consumed bytes of an
// in-flight item, so a multi-item feed (e.g. from Decode-style bulk
// ingestion one byte at a time) doesn't lose trailing bytes.
func (d *IncrementalDecoder) requeue(pending []byte, consumed int) {
	if consumed < len(pending) {
		d.buf.Write(pending[consumed:])
	}
}
