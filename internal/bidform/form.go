// Package bidform decides how the bid form of an auction detail view is
// presented and validates a proposed bid before it goes to the server.
// Every check here is advisory fast-fail UX: the server revalidates on
// submission and its verdict is authoritative.
package bidform

import (
	"fmt"
	"time"

	"auction-client/internal/auctionstatus"
	"auction-client/internal/clienterrors"
	model "auction-client/internal/models"
	"auction-client/internal/view"

	"github.com/shopspring/decimal"
)

// Notice is the message shown in place of a hidden bid form.
type Notice int

const (
	NoticeNone Notice = iota
	// NoticeNotStarted: the auction has not opened yet.
	NoticeNotStarted
	// NoticeEnded: the auction is over or was closed by the server.
	NoticeEnded
	// NoticeLoginRequired: bidding needs an authenticated session.
	NoticeLoginRequired
)

// FormState describes the bid form of a detail view: either hidden behind
// a notice, or visible with the minimum acceptable bid pre-filled.
type FormState struct {
	Visible bool
	Notice  Notice
	// MinimumBid is both the input's lower bound and its initial value.
	MinimumBid float64
}

// MinimumBid computes the least acceptable bid: the current price (or the
// start price while there are no bids) plus the step. Decimal arithmetic
// keeps 0.1+0.2 style float noise out of the boundary.
func MinimumBid(a model.Auction) float64 {
	min, _ := decimal.NewFromFloat(a.EffectivePrice()).Add(decimal.NewFromFloat(a.Step)).Float64()
	return min
}

// Configure decides the bid form state for an auction and session at time
// now. Time-based notices take precedence over the login prompt, matching
// the order the detail page checks them.
func Configure(a model.Auction, s model.Session, now time.Time) FormState {
	status := auctionstatus.Derive(a, now)
	switch status.Phase {
	case auctionstatus.PhasePending:
		return FormState{Notice: NoticeNotStarted}
	case auctionstatus.PhaseTerminal, auctionstatus.PhaseEnded:
		return FormState{Notice: NoticeEnded}
	}
	if !s.Authenticated {
		return FormState{Notice: NoticeLoginRequired}
	}
	return FormState{Visible: true, MinimumBid: MinimumBid(a)}
}

// ValidateProposedBid checks a bid amount against the auction's minimum
// and the session's cached balance. A nil return means the client may
// proceed to the confirmation step.
func ValidateProposedBid(amount float64, a model.Auction, s model.Session) error {
	min := MinimumBid(a)
	if amount < min {
		return fmt.Errorf("%w: минимальная ставка: %s", clienterrors.ErrBelowMinimum, view.FormatPriceRub(min))
	}
	if !s.Authenticated {
		return fmt.Errorf("%w: для размещения ставки необходимо войти в систему", clienterrors.ErrNotAuthenticated)
	}
	if s.Balance < amount {
		return fmt.Errorf("%w: ваш баланс: %s, требуется: %s",
			clienterrors.ErrInsufficientFunds, view.FormatPriceRub(s.Balance), view.FormatPriceRub(amount))
	}
	return nil
}
