package audit

import (
	"context"
	"log/slog"
	"time"
)

// Sink receives recorded events. Implementations must tolerate concurrent
// Append calls from the recorder goroutine only.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Recorder buffers events on a channel and drains them to its sinks from a
// single background goroutine (run via Run, typically inside an errgroup).
// Record never blocks the caller: when the buffer is full the event is
// dropped and counted, because authentication must not stall on the log.
type Recorder struct {
	inbox  chan Event
	sinks  []Sink
	logger *slog.Logger
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithLogger substitutes the recorder's logger.
func WithLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// WithBuffer sets the inbox capacity.
func WithBuffer(n int) RecorderOption {
	return func(r *Recorder) {
		r.inbox = make(chan Event, n)
	}
}

// NewRecorder constructs a recorder fanning out to the given sinks.
func NewRecorder(sinks []Sink, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		inbox:  make(chan Event, 256),
		sinks:  sinks,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record enqueues an event, stamping the time if unset. Drops rather than
// blocks on a full buffer.
func (r *Recorder) Record(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	select {
	case r.inbox <- event:
	default:
		r.logger.Warn("activity log buffer full, dropping event", "action", event.Action)
	}
}

// Run drains the inbox until ctx is cancelled. Sink failures are logged and
// skipped; the log is best-effort.
func (r *Recorder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			r.drain()
			return ctx.Err()
		case event := <-r.inbox:
			r.append(ctx, event)
		}
	}
}

func (r *Recorder) drain() {
	// Flush whatever is already buffered with a short grace period.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for {
		select {
		case event := <-r.inbox:
			r.append(ctx, event)
		default:
			return
		}
	}
}

func (r *Recorder) append(ctx context.Context, event Event) {
	for _, sink := range r.sinks {
		if err := sink.Append(ctx, event); err != nil {
			r.logger.Error("activity log append failed", "action", event.Action, "error", err)
		}
	}
}
