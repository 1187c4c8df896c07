package live

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/banshee-data/modelboard/internal/monitoring"
	"github.com/banshee-data/modelboard/internal/timeutil"
)

// DefaultInterval is the tick period used when a FeedConfig leaves it unset.
const DefaultInterval = time.Second

// ErrFeedRunning is returned by Start when the feed is already running.
var ErrFeedRunning = errors.New("feed already running")

// Recorder receives every sample a feed produces, e.g. to persist history.
type Recorder interface {
	RecordSample(ctx context.Context, series string, s Sample) error
}

// FeedConfig configures a Feed.
type FeedConfig struct {
	// Name identifies the series in logs and recordings.
	Name     string
	Buffer   *Buffer
	Source   Source
	Interval time.Duration
	// Clock defaults to timeutil.RealClock.
	Clock timeutil.Clock
	// Recorder is optional.
	Recorder Recorder
}

// Feed appends one sample from its Source to its Buffer on every tick. It has
// a single running state; Stop (or cancelling the Start context) tears the
// ticker down.
type Feed struct {
	name     string
	buf      *Buffer
	source   Source
	interval time.Duration
	clock    timeutil.Clock
	recorder Recorder

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	ticks  uint64
}

// NewFeed validates cfg and returns a stopped Feed.
func NewFeed(cfg FeedConfig) (*Feed, error) {
	if cfg.Buffer == nil {
		return nil, fmt.Errorf("feed %q: buffer is required", cfg.Name)
	}
	if cfg.Source == nil {
		return nil, fmt.Errorf("feed %q: source is required", cfg.Name)
	}
	if cfg.Interval < 0 {
		return nil, fmt.Errorf("feed %q: negative interval %v", cfg.Name, cfg.Interval)
	}
	if cfg.Interval == 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = timeutil.RealClock{}
	}
	return &Feed{
		name:     cfg.Name,
		buf:      cfg.Buffer,
		source:   cfg.Source,
		interval: cfg.Interval,
		clock:    cfg.Clock,
		recorder: cfg.Recorder,
	}, nil
}

// Name returns the series name.
func (f *Feed) Name() string { return f.name }

// Buffer returns the window the feed writes to.
func (f *Feed) Buffer() *Buffer { return f.buf }

// Interval returns the tick period.
func (f *Feed) Interval() time.Duration { return f.interval }

// Start begins ticking in a new goroutine. The ticker is created before Start
// returns and is stopped on every exit path of that goroutine.
func (f *Feed) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		if !closed(f.done) {
			return ErrFeedRunning
		}
		// The previous run ended through its context; release it.
		f.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	ticker := f.clock.NewTicker(f.interval)
	done := make(chan struct{})
	f.cancel = cancel
	f.done = done

	go func() {
		defer close(done)
		defer ticker.Stop()
		monitoring.Diagf("live feed %s started (interval=%v capacity=%d)", f.name, f.interval, f.buf.Cap())
		for {
			select {
			case <-ctx.Done():
				monitoring.Diagf("live feed %s stopped after %d ticks", f.name, f.Ticks())
				return
			case now := <-ticker.C():
				f.Tick(ctx, now)
			}
		}
	}()
	return nil
}

// Stop cancels the feed and waits for its goroutine to exit. Calling Stop
// on a stopped feed is a no-op.
func (f *Feed) Stop() {
	f.mu.Lock()
	cancel, done := f.cancel, f.done
	f.cancel, f.done = nil, nil
	f.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the feed goroutine is active.
func (f *Feed) Running() bool {
	f.mu.Lock()
	done := f.done
	f.mu.Unlock()
	return done != nil && !closed(done)
}

func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

// Tick produces and stores one sample at now. The feed goroutine calls it
// for each ticker event; tests may call it directly.
func (f *Feed) Tick(ctx context.Context, now time.Time) Sample {
	s := Sample{Timestamp: now, Value: f.source.Next(now)}
	f.buf.Push(s)

	f.mu.Lock()
	f.ticks++
	f.mu.Unlock()

	monitoring.Tracef("live feed %s tick value=%.3f len=%d", f.name, s.Value, f.buf.Len())
	if f.recorder != nil {
		if err := f.recorder.RecordSample(ctx, f.name, s); err != nil {
			monitoring.Opsf("live feed %s: failed to record sample: %v", f.name, err)
		}
	}
	return s
}

// Ticks returns how many samples the feed has produced.
func (f *Feed) Ticks() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ticks
}
