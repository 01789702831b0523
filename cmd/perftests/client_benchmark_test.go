package perftests

import (
	"testing"
	"time"

	"auction-client/internal/auctionstatus"
	"auction-client/internal/bidform"
	"auction-client/internal/countdown"
	model "auction-client/internal/models"
	"auction-client/internal/view"
)

func benchAuction(now time.Time) model.Auction {
	return model.Auction{
		ID:           1,
		Title:        "Антикварные часы",
		StartPrice:   100,
		CurrentPrice: 250,
		Step:         10,
		StartTime:    now.Add(-time.Hour),
		EndTime:      now.Add(26 * time.Hour),
		Status:       model.StatusActive,
		BidsCount:    7,
	}
}

// Benchmark 1: status derivation on every render tick
func Benchmark_StatusDerive(b *testing.B) {
	now := time.Now()
	auction := benchAuction(now)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = auctionstatus.Derive(auction, now)
	}
}

// Benchmark 2: countdown snapshot, computed once per second per open page
func Benchmark_CountdownCompute(b *testing.B) {
	now := time.Now()
	end := now.Add(26*time.Hour + 14*time.Minute)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = countdown.Compute(end, now)
	}
}

// Benchmark 3: bid validation on the hot path of the bid form
func Benchmark_ValidateProposedBid(b *testing.B) {
	now := time.Now()
	auction := benchAuction(now)
	sess := model.Session{Authenticated: true, Balance: 5000}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = bidform.ValidateProposedBid(260, auction, sess)
	}
}

// Benchmark 4: price formatting, called for every rendered row
func Benchmark_FormatPrice(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = view.FormatPrice(1234567.89)
	}
}
