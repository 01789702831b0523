package helpers

import (
	model "auction-client/internal/models"
)

// Request/Response DTOs
type PlaceBidRequest struct {
	AuctionID int64   `json:"auctionId" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
}

type BidResultResponse struct {
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
	NewBalance float64 `json:"newBalance"`
	NewPrice   float64 `json:"newPrice"`
	BidsCount  int     `json:"bidsCount"`
}

type AuctionUpdateRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	StartPrice  float64 `json:"startPrice" binding:"required"`
	Step        float64 `json:"step" binding:"required"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
}

type TopUpResponse struct {
	NewBalance float64 `json:"newBalance"`
	Message    string  `json:"message"`
}

type ProfileUpdateRequest struct {
	FullName  string `json:"fullName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Birthdate string `json:"birthdate"`
}

type AdminUserUpdateRequest struct {
	FullName string  `json:"fullName" binding:"required"`
	Email    string  `json:"email" binding:"required"`
	Role     string  `json:"role" binding:"required"`
	Balance  float64 `json:"balance"`
}

type NewsRequest struct {
	ID      int64  `json:"id"`
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SessionFromUser builds the session snapshot returned by the auth endpoints.
func SessionFromUser(u model.User) model.Session {
	return model.Session{
		Authenticated: true,
		ID:            u.ID,
		FullName:      u.FullName,
		Email:         u.Email,
		Role:          u.Role,
		Balance:       u.Balance,
		AvatarURL:     u.AvatarURL,
		Birthdate:     u.Birthdate,
		Visits:        u.Visits,
	}
}
