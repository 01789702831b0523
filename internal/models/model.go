package models

import "time"

// Auction statuses as reported by the server. FINISHED and CANCELLED are
// terminal; an ACTIVE value may be stale and is cross-checked against the
// time window on the client.
const (
	StatusActive    = "ACTIVE"
	StatusFinished  = "FINISHED"
	StatusCancelled = "CANCELLED"
	StatusExpired   = "EXPIRED"
)

// Auction is a read-only snapshot of a server-owned auction record.
type Auction struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	StartPrice   float64   `json:"startPrice"`
	CurrentPrice float64   `json:"currentPrice,omitempty"` // zero means no bids yet, fall back to StartPrice
	Step         float64   `json:"step"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Category     string    `json:"category,omitempty"`
	Status       string    `json:"status"`
	BidsCount    int       `json:"bidsCount"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	CreatorID    int64     `json:"creatorId,omitempty"`
	CreatorName  string    `json:"creatorName,omitempty"`
	WinnerID     int64     `json:"winnerId,omitempty"`
	WinnerName   string    `json:"winnerName,omitempty"`
}

// EffectivePrice returns the price the next bid competes against.
func (a Auction) EffectivePrice() float64 {
	if a.CurrentPrice > 0 {
		return a.CurrentPrice
	}
	return a.StartPrice
}

// Bid represents a user's bid on an auction.
type Bid struct {
	ID           int64     `json:"id"`
	AuctionID    int64     `json:"auctionId,omitempty"`
	AuctionTitle string    `json:"auctionTitle,omitempty"` // present on the user-cabinet bid list
	UserID       int64     `json:"userId,omitempty"`
	UserName     string    `json:"userName"`
	Amount       float64   `json:"amount"`
	CreatedAt    time.Time `json:"createdAt"`
	IsWinning    bool      `json:"isWinning"`
}

// Session is the client-cached snapshot of the authenticated user. It is
// advisory only: the server re-checks authorization on every mutating call.
type Session struct {
	Authenticated bool    `json:"authenticated"`
	ID            int64   `json:"id,omitempty"`
	FullName      string  `json:"fullName,omitempty"`
	Email         string  `json:"email,omitempty"`
	Role          string  `json:"role,omitempty"`
	Balance       float64 `json:"balance,omitempty"`
	AvatarURL     string  `json:"avatarUrl,omitempty"`
	Birthdate     string  `json:"birthdate,omitempty"`
	Visits        int     `json:"visits,omitempty"`
}

// Guest is the session used when authentication is absent or has failed.
func Guest() Session {
	return Session{Authenticated: false}
}

// User is the server-side user record as exposed to the profile and admin pages.
type User struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Balance   float64   `json:"balance"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	Birthdate string    `json:"birthdate,omitempty"`
	Visits    int       `json:"visits,omitempty"`
	Banned    bool      `json:"banned,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// News is a news post shown on the landing and news pages.
type News struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Balance is the response of GET /api/balance.
type Balance struct {
	Balance float64 `json:"balance"`
}

// ServerTime is the response of GET /api/time.
type ServerTime struct {
	Time string `json:"time"`
}
