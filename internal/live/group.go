package live

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Group owns a set of named feeds whose lifetimes are tied together, such
// as every live chart on one dashboard page.
type Group struct {
	mu    sync.RWMutex
	feeds map[string]*Feed
}

// NewGroup returns an empty Group.
func NewGroup() *Group {
	return &Group{feeds: make(map[string]*Feed)}
}

// Add registers f under its name.
func (g *Group) Add(f *Feed) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.feeds[f.Name()]; ok {
		return fmt.Errorf("feed %q already registered", f.Name())
	}
	g.feeds[f.Name()] = f
	return nil
}

// Get returns the named feed.
func (g *Group) Get(name string) (*Feed, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	f, ok := g.feeds[name]
	return f, ok
}

// Names returns the registered feed names, sorted.
func (g *Group) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	names := make([]string, 0, len(g.feeds))
	for name := range g.feeds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StartAll starts every feed. If one fails the ones already started are
// stopped again before the error is returned.
func (g *Group) StartAll(ctx context.Context) error {
	var started []*Feed
	for _, name := range g.Names() {
		f, _ := g.Get(name)
		if err := f.Start(ctx); err != nil {
			for _, s := range started {
				s.Stop()
			}
			return fmt.Errorf("start feed %q: %w", name, err)
		}
		started = append(started, f)
	}
	return nil
}

// StopAll stops every feed and waits for them to exit.
func (g *Group) StopAll() {
	for _, name := range g.Names() {
		if f, ok := g.Get(name); ok {
			f.Stop()
		}
	}
}
