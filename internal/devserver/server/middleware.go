package server

import (
	"net/http"
	"time"

	"auction-client/services/auction/handler"
	"auction-client/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// RequireAuth resolves the session cookie into a user and aborts with 401
// when the session is absent or stale.
func RequireAuth(service handler.AuctionServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(handler.SessionCookie)
		if err != nil || token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Требуется авторизация")
			c.Abort()
			return
		}

		user, err := service.Authenticate(token)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Требуется авторизация")
			c.Abort()
			return
		}

		c.Set(handler.UserKey, user)
		c.Next()
	}
}
