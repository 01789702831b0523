// Package countdown drives the live "time left" display of an auction
// detail view. The remaining-time math is pure and tested separately from
// the scheduling.
package countdown

import (
	"fmt"
	"sync"
	"time"

	model "auction-client/internal/models"
)

// Urgency picks the styling of the remaining-time text.
type Urgency int

const (
	// UrgencyNormal applies when at least a full day remains.
	UrgencyNormal Urgency = iota
	// UrgencyWarning applies under 24 hours.
	UrgencyWarning
	// UrgencyUrgent applies under one hour.
	UrgencyUrgent
)

// Snapshot is one computed countdown state.
type Snapshot struct {
	Remaining time.Duration
	Text      string
	Urgency   Urgency
	Expired   bool
}

// Compute derives the countdown snapshot for an auction ending at endTime.
// The text shows the coarsest two non-zero units, floor division with no
// rounding up.
func Compute(endTime, now time.Time) Snapshot {
	remaining := endTime.Sub(now)
	if remaining <= 0 {
		return Snapshot{Remaining: remaining, Text: "Завершен", Urgency: UrgencyUrgent, Expired: true}
	}

	days := int(remaining / (24 * time.Hour))
	hours := int(remaining % (24 * time.Hour) / time.Hour)
	minutes := int(remaining % time.Hour / time.Minute)
	seconds := int(remaining % time.Minute / time.Second)

	var text string
	switch {
	case days > 0:
		text = fmt.Sprintf("%dд %dч", days, hours)
	case hours > 0:
		text = fmt.Sprintf("%dч %dм", hours, minutes)
	default:
		text = fmt.Sprintf("%dм %dс", minutes, seconds)
	}

	urgency := UrgencyNormal
	if days == 0 {
		if hours < 1 {
			urgency = UrgencyUrgent
		} else {
			urgency = UrgencyWarning
		}
	}

	return Snapshot{Remaining: remaining, Text: text, Urgency: urgency}
}

// View receives countdown updates. RenderRemaining fires every second while
// the auction is open. AuctionExpired fires exactly once, when the countdown
// crosses zero; the view hides the bid form and shows the ended notice.
type View interface {
	RenderRemaining(Snapshot)
	AuctionExpired()
}

// Ticker schedules countdown updates for the auction currently on screen.
// At most one run is active per ticker: Start cancels the previous run
// before launching the next, so repeated navigation to the same view never
// accumulates timers.
type Ticker struct {
	view   View
	clock  func() time.Time
	period time.Duration

	mu      sync.Mutex
	current *Run
}

// NewTicker creates a ticker with a one second period and the wall clock.
func NewTicker(view View) *Ticker {
	return &Ticker{view: view, clock: time.Now, period: time.Second}
}

// NewTickerWithClock creates a ticker with an injected clock and period.
// Intended for tests.
func NewTickerWithClock(view View, clock func() time.Time, period time.Duration) *Ticker {
	return &Ticker{view: view, clock: clock, period: period}
}

// Run is a cancellable countdown task handle.
type Run struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Stop cancels the run and waits until no further callback can fire.
// Safe to call more than once.
func (r *Run) Stop() {
	r.once.Do(func() { close(r.stop) })
	<-r.done
}

// Done is closed when the run has terminated, whether by Stop or by the
// auction expiring.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Start begins ticking against the auction returned by current. The
// supplier may report ok=false while the view state is nil or mid-refresh;
// such ticks are skipped silently. An initial tick is rendered
// synchronously before the first period elapses.
func (t *Ticker) Start(current func() (model.Auction, bool)) *Run {
	t.mu.Lock()
	prev := t.current
	t.mu.Unlock()
	if prev != nil {
		prev.Stop()
	}

	run := &Run{stop: make(chan struct{}), done: make(chan struct{})}
	t.mu.Lock()
	t.current = run
	t.mu.Unlock()

	if expired := t.tick(current); expired {
		close(run.done)
		return run
	}

	go func() {
		defer close(run.done)
		ticker := time.NewTicker(t.period)
		defer ticker.Stop()
		for {
			select {
			case <-run.stop:
				return
			case <-ticker.C:
				if expired := t.tick(current); expired {
					return
				}
			}
		}
	}()

	return run
}

// Stop cancels the active run, if any.
func (t *Ticker) Stop() {
	t.mu.Lock()
	run := t.current
	t.current = nil
	t.mu.Unlock()
	if run != nil {
		run.Stop()
	}
}

// tick renders one countdown update and reports whether the auction has
// expired, which ends the run.
func (t *Ticker) tick(current func() (model.Auction, bool)) bool {
	auction, ok := current()
	if !ok {
		return false
	}
	snap := Compute(auction.EndTime, t.clock())
	t.view.RenderRemaining(snap)
	if snap.Expired {
		t.view.AuctionExpired()
		return true
	}
	return false
}
