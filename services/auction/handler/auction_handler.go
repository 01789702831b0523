package handler

import (
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"auction-client/internal/devserver/auctionerrors"
	model "auction-client/internal/models"
	"auction-client/services/auction/helpers"
	"auction-client/utils"

	"github.com/gin-gonic/gin"
)

// GetAuctionHandler handles GET /api/auctions/:id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Некорректный идентификатор аукциона")
		return
	}

	auction, err := h.service.Auction(id)
	if err != nil {
		helpers.RespondError(c, "GetAuctionHandler", err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, auction)
}

// ActiveAuctionsHandler handles GET /api/auctions/active
func (h *AuctionHandler) ActiveAuctionsHandler(c *gin.Context) {
	auctions, err := h.service.ActiveAuctions()
	if err != nil {
		helpers.RespondError(c, "ActiveAuctionsHandler", err)
		return
	}
	if auctions == nil {
		auctions = []model.Auction{}
	}
	utils.JSONResponse(c, http.StatusOK, auctions)
}

// CompletedAuctionsHandler handles GET /api/auctions/completed
func (h *AuctionHandler) CompletedAuctionsHandler(c *gin.Context) {
	auctions, err := h.service.CompletedAuctions()
	if err != nil {
		helpers.RespondError(c, "CompletedAuctionsHandler", err)
		return
	}
	if auctions == nil {
		auctions = []model.Auction{}
	}
	utils.JSONResponse(c, http.StatusOK, auctions)
}

// MyCompletedAuctionsHandler handles GET /api/auctions/my/completed
func (h *AuctionHandler) MyCompletedAuctionsHandler(c *gin.Context) {
	auctions, err := h.service.MyCompletedAuctions(currentUser(c))
	if err != nil {
		helpers.RespondError(c, "MyCompletedAuctionsHandler", err)
		return
	}
	if auctions == nil {
		auctions = []model.Auction{}
	}
	utils.JSONResponse(c, http.StatusOK, auctions)
}

// CreateAuctionHandler handles POST /api/auctions/create. The create form
// arrives as multipart with an optional image attachment.
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	draft, err := h.auctionFromForm(c)
	if err != nil {
		helpers.RespondError(c, "CreateAuctionHandler", err)
		return
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		name := utils.GenerateID() + filepath.Ext(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
			utils.Error("CreateAuctionHandler: failed to store image", map[string]any{"error": err.Error()})
			utils.JSONError(c, http.StatusInternalServerError, "Не удалось сохранить изображение")
			return
		}
		draft.ImageURL = "/uploads/" + name
	}

	created, err := h.service.CreateAuction(currentUser(c), draft)
	if err != nil {
		helpers.RespondError(c, "CreateAuctionHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, created)
	helpers.LogSuccess("CreateAuctionHandler", "auction created", map[string]any{
		"auction_id": created.ID,
		"creator_id": created.CreatorID,
	})
}

func (h *AuctionHandler) auctionFromForm(c *gin.Context) (model.Auction, error) {
	startPrice, err := strconv.ParseFloat(c.PostForm("startPrice"), 64)
	if err != nil {
		return model.Auction{}, &auctionerrors.ValidationError{Message: "Некорректная начальная цена"}
	}
	step, err := strconv.ParseFloat(c.PostForm("step"), 64)
	if err != nil {
		return model.Auction{}, &auctionerrors.ValidationError{Message: "Некорректный шаг ставки"}
	}
	startTime, err := time.Parse(time.RFC3339, c.PostForm("startTime"))
	if err != nil {
		return model.Auction{}, &auctionerrors.ValidationError{Message: "Некорректное время начала"}
	}
	endTime, err := time.Parse(time.RFC3339, c.PostForm("endTime"))
	if err != nil {
		return model.Auction{}, &auctionerrors.ValidationError{Message: "Некорректное время окончания"}
	}

	return model.Auction{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		StartPrice:  startPrice,
		Step:        step,
		StartTime:   startTime,
		EndTime:     endTime,
		Category:    c.PostForm("category"),
		Status:      model.StatusActive,
	}, nil
}

// UpdateAuctionHandler handles PUT /api/auctions/:id
func (h *AuctionHandler) UpdateAuctionHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Некорректный идентификатор аукциона")
		return
	}

	var req helpers.AuctionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateAuctionHandler", err)
		return
	}

	updated, err := h.service.UpdateAuction(currentUser(c), id, req.Title, req.Description, req.StartPrice, req.Step, req.Category, req.Status)
	if err != nil {
		helpers.RespondError(c, "UpdateAuctionHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, updated)
	helpers.LogSuccess("UpdateAuctionHandler", "auction updated", map[string]any{"auction_id": id})
}

// DeleteAuctionHandler handles DELETE /api/auctions/:id
func (h *AuctionHandler) DeleteAuctionHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Некорректный идентификатор аукциона")
		return
	}

	if err := h.service.DeleteAuction(currentUser(c), id); err != nil {
		helpers.RespondError(c, "DeleteAuctionHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"message": "Аукцион удален"})
	helpers.LogSuccess("DeleteAuctionHandler", "auction deleted", map[string]any{"auction_id": id})
}

// ServerTimeHandler handles GET /api/time
func (h *AuctionHandler) ServerTimeHandler(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, model.ServerTime{
		Time: time.Now().Format("02.01.2006 15:04:05"),
	})
}
