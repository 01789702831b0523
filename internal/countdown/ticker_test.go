package countdown

import (
	"sync"
	"testing"
	"time"

	model "auction-client/internal/models"

	"github.com/stretchr/testify/require"
)

// spyView records every callback so tests can assert tick behavior.
type spyView struct {
	mu        sync.Mutex
	snapshots []Snapshot
	expired   int
}

func (s *spyView) RenderRemaining(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, snap)
}

func (s *spyView) AuctionExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expired++
}

func (s *spyView) renderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshots)
}

func (s *spyView) expiredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expired
}

func (s *spyView) lastSnapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshots[len(s.snapshots)-1]
}

// Tests Compute
func TestCompute(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		remaining       time.Duration
		expectedText    string
		expectedUrgency Urgency
		expectExpired   bool
	}{
		{
			name:            "days_and_hours",
			remaining:       2*24*time.Hour + 5*time.Hour + 30*time.Minute,
			expectedText:    "2д 5ч",
			expectedUrgency: UrgencyNormal,
		},
		{
			name:            "hours_and_minutes",
			remaining:       5*time.Hour + 30*time.Minute + 45*time.Second,
			expectedText:    "5ч 30м",
			expectedUrgency: UrgencyWarning,
		},
		{
			name:            "minutes_and_seconds",
			remaining:       12*time.Minute + 45*time.Second,
			expectedText:    "12м 45с",
			expectedUrgency: UrgencyUrgent,
		},
		{
			name:            "ninety_seconds_is_urgent",
			remaining:       90 * time.Second,
			expectedText:    "1м 30с",
			expectedUrgency: UrgencyUrgent,
		},
		{
			name:            "floor_division_no_rounding",
			remaining:       59*time.Minute + 59*time.Second + 900*time.Millisecond,
			expectedText:    "59м 59с",
			expectedUrgency: UrgencyUrgent,
		},
		{
			name:            "exactly_one_day_is_normal",
			remaining:       24 * time.Hour,
			expectedText:    "1д 0ч",
			expectedUrgency: UrgencyNormal,
		},
		{
			name:          "zero_is_expired",
			remaining:     0,
			expectExpired: true,
			expectedText:  "Завершен",
		},
		{
			name:          "negative_is_expired",
			remaining:     -time.Second,
			expectExpired: true,
			expectedText:  "Завершен",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Compute(now.Add(tt.remaining), now)
			require.Equal(t, tt.expectedText, snap.Text)
			require.Equal(t, tt.expectExpired, snap.Expired)
			if !tt.expectExpired {
				require.Equal(t, tt.expectedUrgency, snap.Urgency)
			}
		})
	}
}

func supplier(a model.Auction) func() (model.Auction, bool) {
	return func() (model.Auction, bool) { return a, true }
}

// An auction that is already past its end renders the terminal label once
// and stops: later periods must not produce further callbacks.
func TestTicker_ImmediateExpiry(t *testing.T) {
	now := time.Now()
	view := &spyView{}
	ticker := NewTickerWithClock(view, func() time.Time { return now }, 5*time.Millisecond)

	auction := model.Auction{Status: model.StatusActive, EndTime: now.Add(-time.Second)}
	run := ticker.Start(supplier(auction))

	select {
	case <-run.Done():
	default:
		t.Fatal("run should be done immediately for an expired auction")
	}

	require.Equal(t, 1, view.renderCount())
	require.True(t, view.lastSnapshot().Expired)
	require.Equal(t, 1, view.expiredCount())

	// No further ticks after expiry.
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, 1, view.renderCount())
	require.Equal(t, 1, view.expiredCount())
}

func TestTicker_TicksWhileOpen(t *testing.T) {
	now := time.Now()
	view := &spyView{}
	ticker := NewTickerWithClock(view, func() time.Time { return now }, 5*time.Millisecond)

	auction := model.Auction{Status: model.StatusActive, EndTime: now.Add(90 * time.Second)}
	run := ticker.Start(supplier(auction))
	defer run.Stop()

	require.Eventually(t, func() bool { return view.renderCount() >= 3 }, time.Second, time.Millisecond)

	snap := view.lastSnapshot()
	require.Equal(t, "1м 30с", snap.Text)
	require.Equal(t, UrgencyUrgent, snap.Urgency)
	require.Zero(t, view.expiredCount())
}

// Starting the ticker again must cancel the previous run so timers do not
// accumulate across repeated navigation to the same view.
func TestTicker_RestartCancelsPreviousRun(t *testing.T) {
	now := time.Now()
	view := &spyView{}
	ticker := NewTickerWithClock(view, func() time.Time { return now }, 5*time.Millisecond)

	auction := model.Auction{Status: model.StatusActive, EndTime: now.Add(time.Hour)}
	first := ticker.Start(supplier(auction))
	second := ticker.Start(supplier(auction))
	defer second.Stop()

	select {
	case <-first.Done():
	default:
		t.Fatal("first run must be cancelled by the second Start")
	}

	select {
	case <-second.Done():
		t.Fatal("second run must still be active")
	default:
	}
}

// After Stop returns, no callback may fire against the torn-down view.
func TestTicker_StopHaltsCallbacks(t *testing.T) {
	now := time.Now()
	view := &spyView{}
	ticker := NewTickerWithClock(view, func() time.Time { return now }, 5*time.Millisecond)

	auction := model.Auction{Status: model.StatusActive, EndTime: now.Add(time.Hour)}
	ticker.Start(supplier(auction))
	require.Eventually(t, func() bool { return view.renderCount() >= 2 }, time.Second, time.Millisecond)

	ticker.Stop()
	rendered := view.renderCount()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, rendered, view.renderCount())

	// Stop is idempotent.
	ticker.Stop()
}

// A tick that finds no auction (view state nil or mid-refresh) skips
// silently instead of faulting.
func TestTicker_SkipsTickWithoutAuction(t *testing.T) {
	now := time.Now()
	view := &spyView{}
	ticker := NewTickerWithClock(view, func() time.Time { return now }, 5*time.Millisecond)

	run := ticker.Start(func() (model.Auction, bool) { return model.Auction{}, false })
	time.Sleep(30 * time.Millisecond)
	run.Stop()

	require.Zero(t, view.renderCount())
	require.Zero(t, view.expiredCount())
}
