package replay

import (
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hedzr/go-ringbuf/v2/mpmc"
)

// CollectorMetrics tracks a Collector's lifetime counters with atomic
// operations for lock-free concurrent reads.
type CollectorMetrics struct {
	RecordsProcessed   int64
	ErrorsOccurred     int64
	RecordsOverwritten int64
}

func (m *CollectorMetrics) incProcessed()            { atomic.AddInt64(&m.RecordsProcessed, 1) }
func (m *CollectorMetrics) incErrors()               { atomic.AddInt64(&m.ErrorsOccurred, 1) }
func (m *CollectorMetrics) incOverwritten(n uint32)   { atomic.AddInt64(&m.RecordsOverwritten, int64(n)) }

const (
	collectorNotRunning uint32 = iota
	collectorRunning
	collectorStopping

	// MaxBufferSize bounds a Collector's ring buffer against accidental
	// misconfiguration.
	MaxBufferSize uint32 = 1024 * 1024
)

// Collector drains a Session's Record channel into a fixed-size ring
// buffer, so a slow consumer (a TUI render loop, a file writer) never
// blocks the replay stream — the oldest unread record is overwritten
// instead. Safe for concurrent Start/Stop/GetMetrics calls.
type Collector struct {
	in      <-chan Record
	buffer  mpmc.RichOverlappedRingBuffer[Record]
	stop    chan struct{}
	done    chan struct{}
	onError func(error)
	metrics CollectorMetrics
	state   uint32
}

// NewCollector creates a Collector reading from in with a ring buffer sized
// bufferSize. onError is called for unexpected ring-buffer errors; if nil,
// it panics.
func NewCollector(in <-chan Record, bufferSize uint32, onError func(error)) (*Collector, error) {
	if in == nil {
		return nil, fmt.Errorf("replay: collector input channel cannot be nil")
	}
	if bufferSize == 0 {
		return nil, fmt.Errorf("replay: collector buffer size must be > 0")
	}
	if bufferSize > MaxBufferSize {
		return nil, fmt.Errorf("replay: collector buffer size %d exceeds maximum %d", bufferSize, MaxBufferSize)
	}
	if onError == nil {
		onError = func(err error) {
			panic(fmt.Sprintf("replay.Collector: %v", err))
		}
	}
	return &Collector{
		in:      in,
		buffer:  mpmc.NewOverlappedRingBuffer[Record](bufferSize),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		onError: onError,
	}, nil
}

// Start begins draining the input channel into the ring buffer.
func (c *Collector) Start() error {
	if !atomic.CompareAndSwapUint32(&c.state, collectorNotRunning, collectorRunning) {
		switch atomic.LoadUint32(&c.state) {
		case collectorRunning:
			return fmt.Errorf("replay: collector is already running")
		case collectorStopping:
			return fmt.Errorf("replay: collector is stopping, wait for it to finish")
		default:
			return fmt.Errorf("replay: collector is in an unknown state")
		}
	}

	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	started := make(chan struct{}, 1)

	go func() {
		started <- struct{}{}
		defer func() {
			close(c.done)
			atomic.StoreUint32(&c.state, collectorNotRunning)
		}()
		for {
			select {
			case <-c.stop:
				return
			case rec, ok := <-c.in:
				if !ok {
					return
				}
				overwrites, err := c.buffer.EnqueueM(rec)
				if err != nil {
					c.metrics.incErrors()
					c.onError(fmt.Errorf("replay: ring buffer enqueue: %w", err))
					return
				}
				c.metrics.incOverwritten(overwrites)
				c.metrics.incProcessed()
			}
		}
	}()

	select {
	case <-started:
		return nil
	case <-time.After(time.Second):
		close(c.stop)
		<-c.done
		return fmt.Errorf("replay: collector failed to start within 1s")
	}
}

// Stop halts collection, waiting for the drain goroutine to exit.
func (c *Collector) Stop() error {
	if !atomic.CompareAndSwapUint32(&c.state, collectorRunning, collectorStopping) {
		switch atomic.LoadUint32(&c.state) {
		case collectorNotRunning:
			return nil
		case collectorStopping:
		default:
			return fmt.Errorf("replay: collector is in an unknown state")
		}
	} else {
		close(c.stop)
	}

	select {
	case <-c.done:
		return nil
	case <-time.After(5 * time.Second):
		<-c.done
		return fmt.Errorf("replay: collector stop exceeded 5s timeout")
	}
}

// GetMetrics returns a snapshot of the collector's counters.
func (c *Collector) GetMetrics() CollectorMetrics {
	return CollectorMetrics{
		RecordsProcessed:   atomic.LoadInt64(&c.metrics.RecordsProcessed),
		ErrorsOccurred:     atomic.LoadInt64(&c.metrics.ErrorsOccurred),
		RecordsOverwritten: atomic.LoadInt64(&c.metrics.RecordsOverwritten),
	}
}

// ConsumerFunc processes records drained from a Collector. record == nil
// signals no more data is buffered; return the final accumulated result.
// Returning a non-zero result before that point stops draining early.
type ConsumerFunc[T any] func(record *Record) (T, error)

// ConsumeRecords drains every currently-buffered record into consumer.
func ConsumeRecords[T any](c *Collector, consumer ConsumerFunc[T]) (T, error) {
	for !c.buffer.IsEmpty() {
		rec, err := c.buffer.Dequeue()
		if err != nil {
			var zero T
			return zero, fmt.Errorf("replay: ring buffer dequeue: %w", err)
		}
		result, err := consumer(&rec)
		if err != nil {
			return result, err
		}
		if !isZeroValue(result) {
			return result, nil
		}
	}
	return consumer(nil)
}

func isZeroValue[T any](v T) bool {
	var zero T
	return reflect.DeepEqual(v, zero)
}

// PlainTextConsumerFunc returns a ConsumerFunc that concatenates every
// drained record's Text, one per line.
func PlainTextConsumerFunc() ConsumerFunc[string] {
	var b strings.Builder
	return func(record *Record) (string, error) {
		if record == nil {
			return b.String(), nil
		}
		b.WriteString(record.Text)
		b.WriteString("\n")
		return "", nil
	}
}
