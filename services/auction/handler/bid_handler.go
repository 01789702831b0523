package handler

import (
	"net/http"

	model "auction-client/internal/models"
	"auction-client/services/auction/helpers"
	"auction-client/utils"

	"github.com/gin-gonic/gin"
)

// PlaceBidHandler handles POST /api/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bidder := currentUser(c)
	outcome, err := h.service.PlaceBid(bidder, req.AuctionID, req.Amount)
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.BidResultResponse{
		Success:    true,
		Message:    "Ставка принята",
		NewBalance: outcome.NewBalance,
		NewPrice:   outcome.NewPrice,
		BidsCount:  outcome.BidsCount,
	})
	helpers.LogSuccess("PlaceBidHandler", "bid placed", map[string]any{
		"auction_id": req.AuctionID,
		"user_id":    bidder.ID,
		"amount":     req.Amount,
	})
}

// AuctionBidsHandler handles GET /api/bids/auction/:id
func (h *AuctionHandler) AuctionBidsHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Некорректный идентификатор аукциона")
		return
	}

	bids, err := h.service.AuctionBids(id)
	if err != nil {
		helpers.RespondError(c, "AuctionBidsHandler", err)
		return
	}
	if bids == nil {
		bids = []model.Bid{}
	}
	utils.JSONResponse(c, http.StatusOK, bids)
}

// FinishAuctionHandler handles POST /api/bids/finish-auction/:id
func (h *AuctionHandler) FinishAuctionHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Некорректный идентификатор аукциона")
		return
	}

	if err := h.service.FinishAuction(currentUser(c), id); err != nil {
		helpers.RespondError(c, "FinishAuctionHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"message": "Аукцион завершен"})
	helpers.LogSuccess("FinishAuctionHandler", "auction finished", map[string]any{"auction_id": id})
}

// BalanceHandler handles GET /api/balance
func (h *AuctionHandler) BalanceHandler(c *gin.Context) {
	balance, err := h.service.Balance(currentUser(c))
	if err != nil {
		helpers.RespondError(c, "BalanceHandler", err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, model.Balance{Balance: balance})
}

// AddFixedBalanceHandler handles POST /api/balance/add-fixed
func (h *AuctionHandler) AddFixedBalanceHandler(c *gin.Context) {
	user := currentUser(c)
	balance, err := h.service.AddFixedBalance(user)
	if err != nil {
		helpers.RespondError(c, "AddFixedBalanceHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.TopUpResponse{
		NewBalance: balance,
		Message:    "Баланс успешно пополнен",
	})
	helpers.LogSuccess("AddFixedBalanceHandler", "balance topped up", map[string]any{
		"user_id":     user.ID,
		"new_balance": balance,
	})
}
