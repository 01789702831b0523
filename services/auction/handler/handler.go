// Package handler exposes the development stub backend over HTTP. The
// routes and response shapes follow the production REST contract so the
// client packages can run against this server unchanged.
package handler

import (
	"strconv"

	"auction-client/internal/devserver/service"
	model "auction-client/internal/models"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the session token cookie.
const SessionCookie = "SESSION"

// UserKey is the gin context key the auth middleware stores the resolved
// user under.
const UserKey = "user"

type AuctionServiceInterface interface {
	Register(fullName, email, password string) (model.User, error)
	Login(email, password string) (model.User, string, error)
	Logout(token string) error
	WhoAmI(token string) (model.User, error)
	Authenticate(token string) (model.User, error)

	Auction(id int64) (model.Auction, error)
	ActiveAuctions() ([]model.Auction, error)
	CompletedAuctions() ([]model.Auction, error)
	MyCompletedAuctions(actor model.User) ([]model.Auction, error)
	CreateAuction(creator model.User, a model.Auction) (model.Auction, error)
	UpdateAuction(actor model.User, id int64, title, description string, startPrice, step float64, category, status string) (model.Auction, error)
	DeleteAuction(actor model.User, id int64) error

	PlaceBid(bidder model.User, auctionID int64, amount float64) (service.BidOutcome, error)
	AuctionBids(auctionID int64) ([]model.Bid, error)
	FinishAuction(actor model.User, auctionID int64) error

	Balance(user model.User) (float64, error)
	AddFixedBalance(user model.User) (float64, error)

	UserProfile(actor model.User, id int64) (model.User, error)
	UpdateProfile(actor model.User, id int64, fullName, email, birthdate string) (model.User, error)
	SetAvatar(actor model.User, id int64, avatarURL string) (model.User, error)
	UserBids(actor model.User, id int64) ([]model.Bid, error)
	WonLots(actor model.User, id int64) ([]model.Auction, error)
	AllUsers(actor model.User) ([]model.User, error)
	CreateUser(actor model.User, fullName, email, password, role, avatarURL string) (model.User, error)
	AdminUpdateUser(actor model.User, id int64, fullName, email, role string, balance float64) (model.User, error)
	DeleteUser(actor model.User, id int64) error
	ToggleBan(actor model.User, id int64) (bool, error)

	NewsList() ([]model.News, error)
	NewsInfo(id int64) (model.News, error)
	CreateNews(actor model.User, title, content string) (model.News, error)
	UpdateNews(actor model.User, id int64, title, content string) (model.News, error)
	DeleteNews(actor model.User, id int64) error
}

type AuctionHandler struct {
	service   AuctionServiceInterface
	uploadDir string
}

func NewAuctionHandler(service AuctionServiceInterface, uploadDir string) *AuctionHandler {
	return &AuctionHandler{service: service, uploadDir: uploadDir}
}

// currentUser returns the user resolved by the auth middleware.
func currentUser(c *gin.Context) model.User {
	user, _ := c.Get(UserKey)
	u, _ := user.(model.User)
	return u
}

// pathID parses the numeric :id route parameter.
func pathID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
