package xlog

import (
	"sync"
	"sync/atomic"
)

// defaultBufferSize is the per-subscription channel depth: generous
// enough to absorb a burst of RegexError/TruncationWarning entries from
// one batch element without a slow subscriber stalling the Builder.
const defaultBufferSize = 64

// Publisher is an [io.Writer] that fans diagnostic log entries out to
// every active [Subscription]. jsonkit's Builder writes one entry per
// non-fatal condition it encounters (a rewrite pattern that failed to
// compile, a key truncated past the safe-path-segment length) so a CLI
// or embedding application can observe them without the transform engine
// itself taking a logger dependency or blocking on a slow reader.
//
// Each [Publisher.Write] copies the input once and delivers it to every
// subscriber via a buffered channel with ring-buffer semantics: when a
// subscriber's channel is full, the oldest entry is dropped so Write
// never blocks the caller. Safe for concurrent use.
//
// Create instances with [NewPublisher].
type Publisher struct {
	subscribers []*Subscription
	bufSize     int
	mu          sync.Mutex
	closed      bool
}

// PublisherOption configures a [Publisher] returned by [NewPublisher].
type PublisherOption func(*Publisher)

// WithBufferSize sets the channel buffer size for subscriptions created
// after this option is applied. Values less than 1 are clamped to 1.
func WithBufferSize(n int) PublisherOption {
	return func(p *Publisher) {
		if n < 1 {
			n = 1
		}

		p.bufSize = n
	}
}

// NewPublisher creates a Publisher with defaultBufferSize-deep
// subscriber channels unless overridden by [WithBufferSize].
func NewPublisher(opts ...PublisherOption) *Publisher {
	p := &Publisher{
		bufSize: defaultBufferSize,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Write delivers a copy of b to every live subscriber and reports
// len(b), nil regardless of how many subscribers actually received it:
// a diagnostic that nobody is listening for is still not an error for
// the batch run producing it.
func (p *Publisher) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return len(b), nil
	}

	entry := make([]byte, len(b))
	copy(entry, b)

	alive := p.subscribers[:0]

	for _, sub := range p.subscribers {
		if sub.closed.Load() {
			close(sub.ch)
			continue
		}

		select {
		case sub.ch <- entry:
		default:
			// Ring-buffer: drop the oldest queued entry to make room
			// rather than block the writer on a stalled subscriber. The
			// subscriber may drain concurrently, so neither step blocks.
			select {
			case <-sub.ch:
			default:
			}

			select {
			case sub.ch <- entry:
			default:
			}
		}

		alive = append(alive, sub)
	}

	for i := len(alive); i < len(p.subscribers); i++ {
		p.subscribers[i] = nil
	}

	p.subscribers = alive

	return len(b), nil
}

// Subscribe registers and returns a new [Subscription]. If the Publisher
// is already closed, the returned subscription's channel is closed
// immediately and C() drains empty.
func (p *Publisher) Subscribe() *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()

	sub := &Subscription{
		ch: make(chan []byte, p.bufSize),
	}

	if p.closed {
		close(sub.ch)
		return sub
	}

	p.subscribers = append(p.subscribers, sub)

	return sub
}

// Close closes every subscription's channel and releases the subscriber
// list. Idempotent; safe to call even if no diagnostics were ever
// published.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true
	for _, sub := range p.subscribers {
		close(sub.ch)
	}

	p.subscribers = nil

	return nil
}

// Subscription receives diagnostic entries from a [Publisher].
type Subscription struct {
	ch     chan []byte
	closed atomic.Bool
}

// C returns the read-only channel that delivers diagnostic entries.
// Callers must not mutate the delivered byte slices.
func (s *Subscription) C() <-chan []byte {
	return s.ch
}

// Close marks the subscription as done; the Publisher closes the
// underlying channel on its next Write or Close. Idempotent.
func (s *Subscription) Close() {
	s.closed.Store(true)
}
