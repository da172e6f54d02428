// Package viewport turns list geometry into the "sentinel visible" signal that drives
// infinite scrolling.
package viewport

import (
	"sync"
)

// DefaultMargin is how many rows before the list end the sentinel counts as visible.
const DefaultMargin = 5

// DefaultSentinel identifies the sentinel placed after the last record.
const DefaultSentinel = "list-end"

// VisibilitySource reports visibility changes of a sentinel.
// Implementations deliver the current value on registration when it is known.
type VisibilitySource interface {
	OnVisibilityChange(sentinelID string, cb func(visible bool)) (cancel func())
}

// Geometry describes a scrolled list in rows.
type Geometry struct {
	Offset        int // first visible row
	Height        int // rows in the viewport
	ContentHeight int // rows of content; the sentinel sits at this row
}

// SentinelVisible reports whether the sentinel row is within the viewport extended by margin.
func (g Geometry) SentinelVisible(margin int) bool {
	return g.ContentHeight < g.Offset+g.Height+margin
}

// Observer is a VisibilitySource fed by geometry updates from a list widget.
type Observer struct {
	mu        sync.Mutex
	margin    int
	geometry  Geometry
	visible   bool
	known     bool
	listeners map[uint64]func(bool)
	next      uint64
}

var _ VisibilitySource = (*Observer)(nil)

// NewObserver creates an Observer. A negative margin uses DefaultMargin.
func NewObserver(margin int) *Observer {
	if margin < 0 {
		margin = DefaultMargin
	}
	return &Observer{margin: margin, listeners: make(map[uint64]func(bool))}
}

// Update records new geometry and notifies listeners when visibility changes.
func (o *Observer) Update(g Geometry) {
	o.mu.Lock()
	o.geometry = g
	visible := g.SentinelVisible(o.margin)
	changed := !o.known || visible != o.visible
	o.visible, o.known = visible, true
	var cbs []func(bool)
	if changed {
		cbs = make([]func(bool), 0, len(o.listeners))
		for _, cb := range o.listeners {
			cbs = append(cbs, cb)
		}
	}
	o.mu.Unlock()

	for _, cb := range cbs {
		cb(visible)
	}
}

// Visible reports the last computed visibility.
func (o *Observer) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

// Geometry returns the last geometry passed to Update.
func (o *Observer) Geometry() Geometry {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.geometry
}

// OnVisibilityChange registers cb. The Observer tracks a single sentinel, so
// sentinelID only labels the registration.
func (o *Observer) OnVisibilityChange(_ string, cb func(visible bool)) (cancel func()) {
	o.mu.Lock()
	id := o.next
	o.next++
	o.listeners[id] = cb
	known, visible := o.known, o.visible
	o.mu.Unlock()

	if known {
		cb(visible)
	}
	return func() {
		o.mu.Lock()
		delete(o.listeners, id)
		o.mu.Unlock()
	}
}
