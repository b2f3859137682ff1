// Package pager tracks which time window each delivered report message
// currently shows, and applies forward/backward navigation to it.
//
// State is held in memory keyed by Telegram message ID. Losing it on
// restart is acceptable: reports are re-derivable from storage, and an
// unknown message simply restarts at the newest window.
package pager

import (
	"sync"
	"time"

	"github.com/pandarinos/yve/internal/database"
)

// Direction is one navigation step on a report message. Forward moves
// toward newer, narrower windows; Backward moves toward all-time.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// ParseDirection maps callback data to a Direction.
func ParseDirection(data string) (Direction, bool) {
	switch data {
	case "forward":
		return Forward, true
	case "backward":
		return Backward, true
	default:
		return 0, false
	}
}

// Controls describes which navigation buttons a report message offers.
type Controls int

const (
	// ControlsBackwardOnly is shown at the newest window.
	ControlsBackwardOnly Controls = iota
	// ControlsBoth is shown at interior windows.
	ControlsBoth
	// ControlsForwardOnly is shown at the all-time window.
	ControlsForwardOnly
)

// ControlsFor returns the buttons valid at the given window. The bounds
// windows hide the control that would leave the valid range.
func ControlsFor(w database.Window) Controls {
	switch w {
	case database.WindowThisMonth:
		return ControlsBackwardOnly
	case database.WindowAllTime:
		return ControlsForwardOnly
	default:
		return ControlsBoth
	}
}

// Result is the outcome of one navigation step.
type Result struct {
	// Window is the window now shown (unchanged if Changed is false).
	Window database.Window
	// Global marks reports that aggregate across all groups; it is set
	// when the report was requested via the network-wide command and
	// sticks for every later navigation on the same message.
	Global bool
	// Changed reports whether the step moved to a different window. A
	// step past the bounds leaves the state untouched.
	Changed bool
}

type page struct {
	mu      sync.Mutex
	window  database.Window
	global  bool
	touched time.Time
}

// Pager holds the per-message navigation state.
type Pager struct {
	mu    sync.Mutex
	pages map[int]*page
	now   func() time.Time
}

// New creates an empty Pager.
func New() *Pager {
	return &Pager{
		pages: make(map[int]*page),
		now:   time.Now,
	}
}

// Track registers a freshly sent report message at the newest window.
func (p *Pager) Track(messageID int, global bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pages[messageID] = &page{
		window:  database.WindowThisMonth,
		global:  global,
		touched: p.now(),
	}
}

// Navigate applies one step to the message's state and returns the
// resulting window. Steps are serialized per message, so two rapid
// button presses cannot interleave. An unknown message (state lost on
// restart) is treated as a group-scoped report at the newest window;
// its first step always reports a change so the buttons on screen get
// redrawn to match the recreated state.
func (p *Pager) Navigate(messageID int, dir Direction) Result {
	pg, created := p.getOrCreate(messageID)

	pg.mu.Lock()
	defer pg.mu.Unlock()

	next := pg.window
	if dir == Forward {
		next--
	} else {
		next++
	}

	pg.touched = p.now()
	if !next.Valid() {
		return Result{Window: pg.window, Global: pg.global, Changed: created}
	}

	pg.window = next
	return Result{Window: next, Global: pg.global, Changed: true}
}

// EvictBefore drops state for messages not navigated since the cutoff
// and returns the number of entries removed.
func (p *Pager) EvictBefore(cutoff time.Time) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	evicted := 0
	for id, pg := range p.pages {
		pg.mu.Lock()
		stale := pg.touched.Before(cutoff)
		pg.mu.Unlock()
		if stale {
			delete(p.pages, id)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of tracked report messages.
func (p *Pager) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pages)
}

func (p *Pager) getOrCreate(messageID int) (*page, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pg, ok := p.pages[messageID]
	if !ok {
		pg = &page{window: database.WindowThisMonth, touched: p.now()}
		p.pages[messageID] = pg
	}
	return pg, !ok
}
