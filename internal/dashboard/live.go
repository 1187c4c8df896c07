package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/banshee-data/modelboard/internal/chart"
	"github.com/banshee-data/modelboard/internal/config"
	"github.com/banshee-data/modelboard/internal/live"
	"github.com/banshee-data/modelboard/internal/mockdata"
	"github.com/banshee-data/modelboard/internal/monitoring"
	"github.com/banshee-data/modelboard/internal/timeutil"
)

// LiveSnapshot is the JSON view of one live series.
type LiveSnapshot struct {
	Stream   mockdata.Stream `json:"stream"`
	Capacity int             `json:"capacity"`
	Samples  []live.Sample   `json:"samples"`
	Stats    live.Stats      `json:"stats"`
	// History holds recorded samples when requested with ?history=N.
	History  []live.Sample   `json:"history,omitempty"`
}

// Live owns the dashboard's live feeds. Fixed streams fill a monitor window,
// the others a shorter real-time window.
type Live struct {
	group   *live.Group
	streams map[string]mockdata.Stream
	height  int
	loc     *time.Location
}

// NewLive creates one stopped feed per mock stream. rec may be nil; when set
// every sample is also recorded there.
func NewLive(cfg *config.Config, clock timeutil.Clock, rec live.Recorder) (*Live, error) {
	loc, err := timeutil.LoadTimezone(cfg.GetTimezone())
	if err != nil {
		return nil, err
	}
	l := &Live{
		group:   live.NewGroup(),
		streams: make(map[string]mockdata.Stream),
		height:  cfg.GetRealTimeHeight(),
		loc:     loc,
	}
	for i, s := range mockdata.Streams() {
		capacity := cfg.GetRealTimeCapacity()
		if s.Fixed {
			capacity = cfg.GetMonitorCapacity()
		}
		buf, err := live.NewBuffer(capacity)
		if err != nil {
			return nil, fmt.Errorf("stream %q: %w", s.Name, err)
		}
		feed, err := live.NewFeed(live.FeedConfig{
			Name:     s.Name,
			Buffer:   buf,
			Source:   live.NewUniformSource(s.Min, s.Max, cfg.GetSeed()+int64(i)),
			Interval: cfg.GetLiveInterval(),
			Clock:    clock,
			Recorder: rec,
		})
		if err != nil {
			return nil, err
		}
		if err := l.group.Add(feed); err != nil {
			return nil, err
		}
		l.streams[s.Name] = s
	}
	return l, nil
}

// Start starts every feed; they stop when ctx ends or on Stop.
func (l *Live) Start(ctx context.Context) error {
	if err := l.group.StartAll(ctx); err != nil {
		return err
	}
	monitoring.Opsf("live feeds started: %v", l.group.Names())
	return nil
}

// Stop stops every feed and waits for them to exit.
func (l *Live) Stop() { l.group.StopAll() }

// Location is the display zone of time labels.
func (l *Live) Location() *time.Location { return l.loc }

// Names returns the live series names, sorted.
func (l *Live) Names() []string { return l.group.Names() }

// Stream returns the named stream and its feed.
func (l *Live) Stream(name string) (mockdata.Stream, *live.Feed, bool) {
	s, ok := l.streams[name]
	if !ok {
		return mockdata.Stream{}, nil, false
	}
	f, ok := l.group.Get(name)
	return s, f, ok
}

// Chart draws the current window of the named series.
func (l *Live) Chart(name string) (*chart.Chart, error) {
	s, f, ok := l.Stream(name)
	if !ok {
		return nil, fmt.Errorf("unknown live series %q", name)
	}
	if s.Fixed {
		return chart.Monitor(f.Buffer().Samples(), chart.MonitorOptions{
			Title:    s.Title,
			Unit:     s.Unit,
			Color:    s.Color,
			Min:      s.Min,
			Max:      s.Max,
			Location: l.loc,
		})
	}
	return chart.RealTime(f.Buffer().Values(), chart.RealTimeOptions{
		Title:  s.Title,
		Color:  s.Color,
		Height: l.height,
	})
}

// HTML renders the current window of the named series with echarts.
func (l *Live) HTML(name string, r chart.HTMLRenderer) ([]byte, error) {
	s, f, ok := l.Stream(name)
	if !ok {
		return nil, fmt.Errorf("unknown live series %q", name)
	}
	if r.Location == nil {
		r.Location = l.loc
	}
	return r.Live(s.Title, s.Unit, s.Color, s.Min, s.Max, f.Buffer().Samples())
}

// Snapshot returns the named series' window and statistics.
func (l *Live) Snapshot(name string) (LiveSnapshot, bool) {
	s, f, ok := l.Stream(name)
	if !ok {
		return LiveSnapshot{}, false
	}
	buf := f.Buffer()
	samples := buf.Samples()
	return LiveSnapshot{
		Stream:   s,
		Capacity: buf.Cap(),
		Samples:  samples,
		Stats:    live.SummarizeSamples(samples),
	}, true
}
