package handler

import (
	"net/http"
	"path/filepath"

	model "auction-client/internal/models"
	"auction-client/services/auction/helpers"
	"auction-client/utils"

	"github.com/gin-gonic/gin"
)

// GetUserHandler handles GET /api/users/:id
func (h *AuctionHandler) GetUserHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Некорректный идентификатор пользователя")
		return
	}

	user, err := h.service.UserProfile(currentUser(c), id)
	if err != nil {
		helpers.RespondError(c, "GetUserHandler", err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, user)
}

// UpdateUserHandler handles PUT /api/users/:id
func (h *AuctionHandler) UpdateUserHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Некорректный идентификатор пользователя")
		return
	}

	var req helpers.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateUserHandler", err)
		return
	}

	user, err := h.service.UpdateProfile(currentUser(c), id, req.FullName, req.Email, req.Birthdate)
	if err != nil {
		helpers.RespondError(c, "UpdateUserHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, user)
	helpers.LogSuccess("UpdateUserHandler", "profile updated", map[string]any{"user_id": id})
}

// UploadAvatarHandler handles POST /api/users/:id/avatar
func (h *AuctionHandler) UploadAvatarHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Некорректный идентификатор пользователя")
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Файл аватара не найден")
		return
	}

	name := utils.GenerateID() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
		utils.Error("UploadAvatarHandler: failed to store avatar", map[string]any{"error": err.Error()})
		utils.JSONError(c, http.StatusInternalServerError, "Не удалось сохранить аватар")
		return
	}

	user, err := h.service.SetAvatar(currentUser(c), id, "/uploads/"+name)
	if err != nil {
		helpers.RespondError(c, "UploadAvatarHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, user)
	helpers.LogSuccess("UploadAvatarHandler", "avatar updated", map[string]any{"user_id": id})
}

// UserBidsHandler handles GET /api/users/:id/bids
func (h *AuctionHandler) UserBidsHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Некорректный идентификатор пользователя")
		return
	}

	bids, err := h.service.UserBids(currentUser(c), id)
	if err != nil {
		helpers.RespondError(c, "UserBidsHandler", err)
		return
	}
	if bids == nil {
		bids = []model.Bid{}
	}
	utils.JSONResponse(c, http.StatusOK, bids)
}

// WonLotsHandler handles GET /api/users/:id/won-lots
func (h *AuctionHandler) WonLotsHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Некорректный идентификатор пользователя")
		return
	}

	lots, err := h.service.WonLots(currentUser(c), id)
	if err != nil {
		helpers.RespondError(c, "WonLotsHandler", err)
		return
	}
	if lots == nil {
		lots = []model.Auction{}
	}
	utils.JSONResponse(c, http.StatusOK, lots)
}

// AllUsersHandler handles GET /api/users/all
func (h *AuctionHandler) AllUsersHandler(c *gin.Context) {
	users, err := h.service.AllUsers(currentUser(c))
	if err != nil {
		helpers.RespondError(c, "AllUsersHandler", err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	utils.JSONResponse(c, http.StatusOK, users)
}

// CreateUserHandler handles POST /api/users/create-with-avatar. The admin
// create form arrives as multipart with an optional avatar attachment.
func (h *AuctionHandler) CreateUserHandler(c *gin.Context) {
	avatarURL := ""
	if file, err := c.FormFile("avatar"); err == nil && file != nil {
		name := utils.GenerateID() + filepath.Ext(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
			utils.Error("CreateUserHandler: failed to store avatar", map[string]any{"error": err.Error()})
			utils.JSONError(c, http.StatusInternalServerError, "Не удалось сохранить аватар")
			return
		}
		avatarURL = "/uploads/" + name
	}

	user, err := h.service.CreateUser(currentUser(c), c.PostForm("fullName"), c.PostForm("email"), c.PostForm("password"), c.PostForm("role"), avatarURL)
	if err != nil {
		helpers.RespondError(c, "CreateUserHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, user)
	helpers.LogSuccess("CreateUserHandler", "user created", map[string]any{"user_id": user.ID})
}

// AdminUpdateUserHandler handles PUT /api/users/:id/admin-update
func (h *AuctionHandler) AdminUpdateUserHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Некорректный идентификатор пользователя")
		return
	}

	var req helpers.AdminUserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AdminUpdateUserHandler", err)
		return
	}

	user, err := h.service.AdminUpdateUser(currentUser(c), id, req.FullName, req.Email, req.Role, req.Balance)
	if err != nil {
		helpers.RespondError(c, "AdminUpdateUserHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, user)
	helpers.LogSuccess("AdminUpdateUserHandler", "user updated", map[string]any{"user_id": id})
}

// DeleteUserHandler handles DELETE /api/users/:id
func (h *AuctionHandler) DeleteUserHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Некорректный идентификатор пользователя")
		return
	}

	if err := h.service.DeleteUser(currentUser(c), id); err != nil {
		helpers.RespondError(c, "DeleteUserHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"message": "Пользователь удален"})
	helpers.LogSuccess("DeleteUserHandler", "user deleted", map[string]any{"user_id": id})
}

// BanUserHandler handles POST /api/users/:id/ban
func (h *AuctionHandler) BanUserHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Некорректный идентификатор пользователя")
		return
	}

	banned, err := h.service.ToggleBan(currentUser(c), id)
	if err != nil {
		helpers.RespondError(c, "BanUserHandler", err)
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"banned": banned})
	helpers.LogSuccess("BanUserHandler", "ban toggled", map[string]any{"user_id": id, "banned": banned})
}
