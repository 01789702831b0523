package handler

import (
	"net/http"

	model "auction-client/internal/models"
	"auction-client/services/auction/helpers"
	"auction-client/utils"

	"github.com/gin-gonic/gin"
)

const sessionMaxAge = 30 * 24 * 60 * 60

// LoginHandler handles POST /auth/login
func (h *AuctionHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	user, token, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		helpers.RespondError(c, "LoginHandler", err)
		return
	}

	c.SetCookie(SessionCookie, token, sessionMaxAge, "/", "", false, true)
	utils.JSONResponse(c, http.StatusOK, helpers.SessionFromUser(user))
	helpers.LogSuccess("LoginHandler", "user logged in", map[string]any{"user_id": user.ID})
}

// RegisterHandler handles POST /auth/register
func (h *AuctionHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	user, err := h.service.Register(req.FullName, req.Email, req.Password)
	if err != nil {
		helpers.RespondError(c, "RegisterHandler", err)
		return
	}

	// Registration logs the new account in right away.
	loggedIn, token, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		helpers.RespondError(c, "RegisterHandler", err)
		return
	}

	c.SetCookie(SessionCookie, token, sessionMaxAge, "/", "", false, true)
	utils.JSONResponse(c, http.StatusCreated, helpers.SessionFromUser(loggedIn))
	helpers.LogSuccess("RegisterHandler", "user registered", map[string]any{"user_id": user.ID})
}

// LogoutHandler handles POST /auth/logout
func (h *AuctionHandler) LogoutHandler(c *gin.Context) {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		if err := h.service.Logout(token); err != nil {
			utils.Warn("LogoutHandler: failed to drop session", map[string]any{"error": err.Error()})
		}
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	utils.JSONResponse(c, http.StatusOK, gin.H{"message": "ok"})
}

// WhoAmIHandler handles GET /auth/whoAmI. An absent or stale session is not
// an error: the guest snapshot is returned instead.
func (h *AuctionHandler) WhoAmIHandler(c *gin.Context) {
	token, err := c.Cookie(SessionCookie)
	if err != nil || token == "" {
		utils.JSONResponse(c, http.StatusOK, model.Guest())
		return
	}

	user, err := h.service.WhoAmI(token)
	if err != nil {
		utils.JSONResponse(c, http.StatusOK, model.Guest())
		return
	}
	utils.JSONResponse(c, http.StatusOK, helpers.SessionFromUser(user))
}
