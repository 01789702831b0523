package auctionstatus

import (
	"time"

	"auction-client/internal/models"
)

// Phase is the display phase of an auction derived from its server status
// and the current time.
type Phase int

const (
	// PhaseTerminal covers auctions the server has already closed
	// (FINISHED or CANCELLED), regardless of timestamps.
	PhaseTerminal Phase = iota
	// PhasePending means the auction has not started yet.
	PhasePending
	// PhaseActive means now is within [startTime, endTime].
	PhaseActive
	// PhaseEnded means the end time has passed, even if the server
	// snapshot still says ACTIVE.
	PhaseEnded
)

// Status is the display state of an auction at a given instant.
type Status struct {
	Phase      Phase
	Label      string
	StyleClass string
	// BiddableWindow reports whether the auction accepts bids time-wise.
	// Whether the current user may actually bid additionally requires an
	// authenticated session, see the bidform package.
	BiddableWindow bool
}

// Derive computes the display status of an auction at time now. It is a
// pure function of its inputs: a terminal server status wins over any
// timestamps, otherwise the status is inferred from the time window with
// endTime inclusive. A stale ACTIVE status past endTime renders as ended.
func Derive(a models.Auction, now time.Time) Status {
	if a.Status == models.StatusFinished || a.Status == models.StatusCancelled {
		return Status{Phase: PhaseTerminal, Label: "Завершен", StyleClass: "bg-danger"}
	}
	if now.Before(a.StartTime) {
		return Status{Phase: PhasePending, Label: "Ожидает начала", StyleClass: "bg-warning text-dark"}
	}
	if !now.After(a.EndTime) {
		return Status{Phase: PhaseActive, Label: "Активен", StyleClass: "bg-success", BiddableWindow: true}
	}
	return Status{Phase: PhaseEnded, Label: "Завершен", StyleClass: "bg-danger"}
}

// Biddable reports whether the given session may place a bid on the
// auction at time now. The check is advisory: the server revalidates the
// window and the session on submission.
func Biddable(a models.Auction, s models.Session, now time.Time) bool {
	return Derive(a, now).BiddableWindow && s.Authenticated
}
