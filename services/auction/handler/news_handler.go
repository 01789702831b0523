package handler

import (
	"net/http"
	"strconv"

	model "auction-client/internal/models"
	"auction-client/services/auction/helpers"
	"auction-client/utils"

	"github.com/gin-gonic/gin"
)

// NewsListHandler handles GET /api/news
func (h *AuctionHandler) NewsListHandler(c *gin.Context) {
	news, err := h.service.NewsList()
	if err != nil {
		helpers.RespondError(c, "NewsListHandler", err)
		return
	}
	if news == nil {
		news = []model.News{}
	}
	utils.JSONResponse(c, http.StatusOK, news)
}

// NewsInfoHandler handles GET /api/news/getInfo?id=N
func (h *AuctionHandler) NewsInfoHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Некорректный идентификатор новости")
		return
	}

	news, err := h.service.NewsInfo(id)
	if err != nil {
		helpers.RespondError(c, "NewsInfoHandler", err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, news)
}

// CreateNewsHandler handles POST /api/news
func (h *AuctionHandler) CreateNewsHandler(c *gin.Context) {
	var req helpers.NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateNewsHandler", err)
		return
	}

	news, err := h.service.CreateNews(currentUser(c), req.Title, req.Content)
	if err != nil {
		helpers.RespondError(c, "CreateNewsHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, news)
	helpers.LogSuccess("CreateNewsHandler", "news created", map[string]any{"news_id": news.ID})
}

// UpdateNewsHandler handles POST /api/news/update
func (h *AuctionHandler) UpdateNewsHandler(c *gin.Context) {
	var req helpers.NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateNewsHandler", err)
		return
	}
	if req.ID <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Некорректный идентификатор новости")
		return
	}

	news, err := h.service.UpdateNews(currentUser(c), req.ID, req.Title, req.Content)
	if err != nil {
		helpers.RespondError(c, "UpdateNewsHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, news)
	helpers.LogSuccess("UpdateNewsHandler", "news updated", map[string]any{"news_id": news.ID})
}

// DeleteNewsHandler handles DELETE /api/news/:id
func (h *AuctionHandler) DeleteNewsHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Некорректный идентификатор новости")
		return
	}

	if err := h.service.DeleteNews(currentUser(c), id); err != nil {
		helpers.RespondError(c, "DeleteNewsHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"message": "Новость удалена"})
	helpers.LogSuccess("DeleteNewsHandler", "news deleted", map[string]any{"news_id": id})
}
