package hidtag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwosComplement(t *testing.T) {
	tests := []struct {
		val  uint32
		bits int
		want int32
	}{
		{0x00, 8, 0},
		{0x7F, 8, 127},
		{0x80, 8, -128},
		{0xFF, 8, -1},
		{0x01, 1, -1}, // single sign bit set
		{0x00, 1, 0},
		{0x0F, 4, -1},
		{0x07, 4, 7},
		{5, 0, 5},  // bits<=0 passes through unsigned
		{5, 32, 5}, // bits>=32 passes through unsigned
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TwosComplement(tt.val, tt.bits), "val=0x%x bits=%d", tt.val, tt.bits)
	}
}

func TestTwosComplement_RoundTripsThroughEveryByteValue(t *testing.T) {
	for v := 0; v <= 0xFF; v++ {
		signed := TwosComplement(uint32(v), 8)
		assert.Equal(t, int32(int8(v)), signed, "byte 0x%02x", v)
	}
}

func TestUnitExponent(t *testing.T) {
	tests := []struct {
		val  uint32
		want int32
	}{
		{0x0, 0},
		{0x7, 7},
		{0x8, -8},
		{0xF, -1},
		{0xF0, 0}, // only the low nibble matters
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, unitExponent(tt.val))
	}
}

func TestDecode_SingleZeroSizeItem(t *testing.T) {
	// End Collection: prefix 0xC0, size bits 00 -> no payload.
	items, err := Decode([]byte{0xC0})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, TagEndCollection, items[0].Tag)
	assert.Equal(t, TagMain, items[0].Category)
	assert.Equal(t, 0, items[0].Size)
	assert.Equal(t, []byte{0xC0}, items[0].RawBytes)
}

func TestDecode_MultiByteLittleEndianPayload(t *testing.T) {
	// Usage Page, 2-byte payload 0x1234 little-endian -> 0x12,0x34 raw=0x3412.
	items, err := Decode([]byte{0b00000110, 0x12, 0x34})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, TagUsagePage, items[0].Tag)
	assert.Equal(t, 2, items[0].Size)
	assert.EqualValues(t, 0x3412, items[0].RawValue)
}

func TestDecode_FourByteItem(t *testing.T) {
	// Logical Minimum, 4-byte payload -> size bits 11.
	items, err := Decode([]byte{0b00010111, 0x01, 0x00, 0x00, 0x00})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, TagLogicalMinimum, items[0].Tag)
	assert.True(t, items[0].IsSigned)
	assert.EqualValues(t, 1, items[0].SignedValue)
}

func TestDecode_LogicalMinimumIsSigned(t *testing.T) {
	// Logical Minimum, 1-byte payload 0x81 (-127 two's complement).
	items, err := Decode([]byte{0b00010101, 0x81})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsSigned)
	assert.EqualValues(t, -127, items[0].SignedValue)
}

func TestDecode_UnitExponentIsSigned(t *testing.T) {
	// Unit Exponent, 1-byte payload 0x0F -> -1.
	items, err := Decode([]byte{0b01010101, 0x0F})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsSigned)
	assert.EqualValues(t, -1, items[0].SignedValue)
}

func TestDecode_TrailingZeroByteIsDropped(t *testing.T) {
	items, err := Decode([]byte{0xC0, 0x00})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, TagEndCollection, items[0].Tag)
}

func TestDecode_TruncatedItemErrors(t *testing.T) {
	// Usage Page declares a 2-byte payload but only one byte follows.
	_, err := Decode([]byte{0b00000110, 0x12})
	var truncated *TruncatedItemError
	require.ErrorAs(t, err, &truncated)
	assert.Equal(t, 0, truncated.Offset)
}

func TestDecode_UnknownTagErrors(t *testing.T) {
	_, err := Decode([]byte{0b01101100})
	var unknown *UnknownTagError
	require.ErrorAs(t, err, &unknown)
}

func TestDecode_RawBytesRoundTripsOriginalBuffer(t *testing.T) {
	buf := []byte{
		0x05, 0x01, 0x09, 0x02, 0xA1, 0x01, 0x09, 0x01, 0xA1, 0x00,
		0x05, 0x09, 0x19, 0x01, 0x29, 0x03, 0x15, 0x00, 0x25, 0x01,
		0x95, 0x03, 0x75, 0x01, 0x81, 0x02, 0x95, 0x01, 0x75, 0x05,
		0x81, 0x03, 0x05, 0x01, 0x09, 0x30, 0x09, 0x31, 0x15, 0x81,
		0x25, 0x7F, 0x75, 0x08, 0x95, 0x02, 0x81, 0x06, 0xC0, 0xC0,
	}
	items, err := Decode(buf)
	require.NoError(t, err)

	var rebuilt []byte
	for _, item := range items {
		rebuilt = append(rebuilt, item.RawBytes...)
	}
	assert.Equal(t, buf, rebuilt, "concatenating every item's RawBytes must reproduce the original buffer exactly")
}

func TestDecode_OffsetsAreContiguousAcrossEveryItem(t *testing.T) {
	// One of every tag with a zero-byte payload back to back; a property check that
	// regardless of which tags appear, offsets never overlap or skip a byte.
	var buf []byte
	for prefix := range tagTable {
		size := payloadSize(prefix)
		buf = append(buf, prefix)
		for i := 0; i < size; i++ {
			buf = append(buf, 0x00)
		}
	}
	items, err := Decode(buf)
	require.NoError(t, err)
	require.Len(t, items, len(tagTable))

	offset := 0
	for _, item := range items {
		assert.Equal(t, offset, item.Offset)
		offset += 1 + item.Size
	}
	assert.Equal(t, len(buf), offset)
}

func TestDecode_MultipleItemsAdvanceOffset(t *testing.T) {
	// Usage Page(Generic Desktop) then Usage(Mouse), each a 1-byte item.
	items, err := Decode([]byte{0x05, 0x01, 0x09, 0x02})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].Offset)
	assert.Equal(t, 2, items[1].Offset)
}
