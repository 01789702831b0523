// Package server wires the development stub backend's routes.
package server

import (
	handler "auction-client/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the stub backend
func SetupRouter(service handler.AuctionServiceInterface, uploadDir string) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	h := handler.NewAuctionHandler(service, uploadDir)
	authRequired := RequireAuth(service)

	auth := router.Group("/auth")
	{
		auth.POST("/login", h.LoginHandler)
		auth.POST("/register", h.RegisterHandler)
		auth.POST("/logout", h.LogoutHandler)
		auth.GET("/whoAmI", h.WhoAmIHandler)
	}

	auctions := router.Group("/api/auctions")
	{
		auctions.GET("/active", h.ActiveAuctionsHandler)
		auctions.GET("/completed", h.CompletedAuctionsHandler)
		auctions.GET("/my/completed", authRequired, h.MyCompletedAuctionsHandler)
		auctions.GET("/:id", h.GetAuctionHandler)
		auctions.POST("/create", authRequired, h.CreateAuctionHandler)
		auctions.PUT("/:id", authRequired, h.UpdateAuctionHandler)
		auctions.DELETE("/:id", authRequired, h.DeleteAuctionHandler)
	}

	bids := router.Group("/api/bids")
	{
		bids.POST("", authRequired, h.PlaceBidHandler)
		bids.GET("/auction/:id", h.AuctionBidsHandler)
		bids.POST("/finish-auction/:id", authRequired, h.FinishAuctionHandler)
	}

	balance := router.Group("/api/balance", authRequired)
	{
		balance.GET("", h.BalanceHandler)
		balance.POST("/add-fixed", h.AddFixedBalanceHandler)
	}

	users := router.Group("/api/users", authRequired)
	{
		users.GET("/all", h.AllUsersHandler)
		users.POST("/create-with-avatar", h.CreateUserHandler)
		users.GET("/:id", h.GetUserHandler)
		users.PUT("/:id", h.UpdateUserHandler)
		users.DELETE("/:id", h.DeleteUserHandler)
		users.POST("/:id/avatar", h.UploadAvatarHandler)
		users.GET("/:id/bids", h.UserBidsHandler)
		users.GET("/:id/won-lots", h.WonLotsHandler)
		users.PUT("/:id/admin-update", h.AdminUpdateUserHandler)
		users.POST("/:id/ban", h.BanUserHandler)
	}

	news := router.Group("/api/news")
	{
		news.GET("", h.NewsListHandler)
		news.GET("/getInfo", h.NewsInfoHandler)
		news.POST("", authRequired, h.CreateNewsHandler)
		news.POST("/update", authRequired, h.UpdateNewsHandler)
		news.DELETE("/:id", authRequired, h.DeleteNewsHandler)
	}

	router.GET("/api/time", h.ServerTimeHandler)
	router.Static("/uploads", uploadDir)

	return router
}
