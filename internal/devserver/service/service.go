// Package service holds the business rules of the development stub
// backend: auction lifecycle, bid acceptance with escrow accounting, auth
// and balance handling. The rules mirror the production platform so the
// client sees the same contract.
package service

import (
	"fmt"
	"strings"
	"time"

	"auction-client/internal/devserver/auctionerrors"
	"auction-client/internal/devserver/repository"
	model "auction-client/internal/models"
	"auction-client/utils"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// FixedTopUp is the amount POST /api/balance/add-fixed credits.
const FixedTopUp = 10000.0

// MinAuctionDuration is the least allowed distance between start and end.
const MinAuctionDuration = 3 * time.Minute

// Service implements the stub backend's business logic on top of the
// sqlite repository.
type Service struct {
	repo  *repository.DB
	clock func() time.Time
}

// New creates a Service using the wall clock.
func New(repo *repository.DB) *Service {
	return &Service{repo: repo, clock: time.Now}
}

// NewWithClock creates a Service with an injected clock. Intended for tests.
func NewWithClock(repo *repository.DB, clock func() time.Time) *Service {
	return &Service{repo: repo, clock: clock}
}

// --- Auth ---

// Register creates a user account and returns it.
func (s *Service) Register(fullName, email, password string) (model.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	if fullName == "" || email == "" || password == "" {
		return model.User{}, fmt.Errorf("service: %w", &auctionerrors.ValidationError{Message: "Заполните все поля"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("service: hash password: %w", err)
	}

	user, err := s.repo.CreateUser(model.User{FullName: fullName, Email: email, Role: "user"}, string(hash))
	if err != nil {
		return model.User{}, fmt.Errorf("service: register %s: %w", email, err)
	}
	utils.Info("user registered", map[string]any{"user_id": user.ID, "email": email})
	return user, nil
}

// Login checks credentials and returns the user with a fresh session token.
func (s *Service) Login(email, password string) (model.User, string, error) {
	user, hash, err := s.repo.UserByEmail(email)
	if err != nil {
		return model.User{}, "", fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return model.User{}, "", fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials)
	}
	if user.Banned {
		return model.User{}, "", fmt.Errorf("service: %w", auctionerrors.ErrUserBanned)
	}

	token := utils.GenerateID()
	if err := s.repo.CreateSession(token, user.ID); err != nil {
		return model.User{}, "", fmt.Errorf("service: create session: %w", err)
	}
	return user, token, nil
}

// Logout drops the session token.
func (s *Service) Logout(token string) error {
	return s.repo.DeleteSession(token)
}

// WhoAmI resolves a session token and bumps the visit counter.
func (s *Service) WhoAmI(token string) (model.User, error) {
	user, err := s.repo.UserBySession(token)
	if err != nil {
		return model.User{}, err
	}
	if err := s.repo.IncrementVisits(user.ID); err != nil {
		utils.Warn("failed to bump visits", map[string]any{"user_id": user.ID, "error": err.Error()})
	}
	user.Visits++
	return user, nil
}

// Authenticate resolves a session token without side effects.
func (s *Service) Authenticate(token string) (model.User, error) {
	return s.repo.UserBySession(token)
}

// --- Auctions ---

// CreateAuction validates and stores a new auction owned by creator.
func (s *Service) CreateAuction(creator model.User, a model.Auction) (model.Auction, error) {
	if err := s.validateAuction(a, true); err != nil {
		return model.Auction{}, err
	}
	a.CreatorID = creator.ID
	a.CurrentPrice = 0

	created, err := s.repo.CreateAuction(a)
	if err != nil {
		return model.Auction{}, fmt.Errorf("service: create auction: %w", err)
	}
	utils.Info("auction created", map[string]any{"auction_id": created.ID, "creator_id": creator.ID})
	return created, nil
}

func (s *Service) validateAuction(a model.Auction, checkTimes bool) error {
	if len([]rune(strings.TrimSpace(a.Title))) < 5 {
		return invalid("Название должно содержать минимум 5 символов")
	}
	if a.StartPrice <= 0 {
		return invalid("Начальная цена должна быть больше 0")
	}
	if a.Step < 10 {
		return invalid("Минимальный шаг ставки - 10 рублей")
	}
	if checkTimes {
		if !a.EndTime.After(a.StartTime) {
			return invalid("Время окончания должно быть позже времени начала")
		}
		if a.StartTime.Before(s.clock()) {
			return invalid("Время начала не может быть в прошлом")
		}
		if a.EndTime.Sub(a.StartTime) < MinAuctionDuration {
			return invalid("Минимальная длительность аукциона - 3 минуты")
		}
	}
	return nil
}

func invalid(message string) error {
	return fmt.Errorf("service: %w", &auctionerrors.ValidationError{Message: message})
}

// UpdateAuction applies edits. Only the creator or an admin may edit, and
// only an admin may change the status.
func (s *Service) UpdateAuction(actor model.User, id int64, title, description string, startPrice, step float64, category, status string) (model.Auction, error) {
	auction, err := s.repo.AuctionByID(id)
	if err != nil {
		return model.Auction{}, err
	}
	if auction.CreatorID != actor.ID && actor.Role != "admin" {
		return model.Auction{}, fmt.Errorf("service: %w", auctionerrors.ErrForbidden)
	}

	auction.Title = title
	auction.Description = description
	auction.StartPrice = startPrice
	auction.Step = step
	if category != "" {
		auction.Category = category
	}
	if status != "" && actor.Role == "admin" {
		auction.Status = status
	}

	if err := s.validateAuction(auction, false); err != nil {
		return model.Auction{}, err
	}
	if err := s.repo.UpdateAuction(auction); err != nil {
		return model.Auction{}, err
	}
	return s.repo.AuctionByID(id)
}

// DeleteAuction removes an auction (creator or admin).
func (s *Service) DeleteAuction(actor model.User, id int64) error {
	auction, err := s.repo.AuctionByID(id)
	if err != nil {
		return err
	}
	if auction.CreatorID != actor.ID && actor.Role != "admin" {
		return fmt.Errorf("service: %w", auctionerrors.ErrForbidden)
	}
	return s.repo.DeleteAuction(id)
}

// Auction fetches one auction.
func (s *Service) Auction(id int64) (model.Auction, error) {
	return s.repo.AuctionByID(id)
}

// ActiveAuctions lists open auctions.
func (s *Service) ActiveAuctions() ([]model.Auction, error) {
	return s.repo.ActiveAuctions()
}

// CompletedAuctions lists closed auctions.
func (s *Service) CompletedAuctions() ([]model.Auction, error) {
	return s.repo.CompletedAuctions()
}

// MyCompletedAuctions lists the actor's own closed auctions.
func (s *Service) MyCompletedAuctions(actor model.User) ([]model.Auction, error) {
	return s.repo.CompletedAuctionsByCreator(actor.ID)
}

// --- Bids ---

// BidOutcome reports an accepted bid back to the client.
type BidOutcome struct {
	NewBalance float64
	NewPrice   float64
	BidsCount  int
}

// PlaceBid validates and records a bid with escrow accounting: the bidder
// is debited immediately and the previously winning bidder is refunded.
func (s *Service) PlaceBid(bidder model.User, auctionID int64, amount float64) (BidOutcome, error) {
	auction, err := s.repo.AuctionByID(auctionID)
	if err != nil {
		return BidOutcome{}, err
	}

	now := s.clock()
	if now.Before(auction.StartTime) {
		return BidOutcome{}, fmt.Errorf("service: %w", auctionerrors.ErrNotStarted)
	}
	if now.After(auction.EndTime) || auction.Status != model.StatusActive {
		return BidOutcome{}, fmt.Errorf("service: %w", auctionerrors.ErrAuctionClosed)
	}

	minBid, _ := decimal.NewFromFloat(auction.EffectivePrice()).Add(decimal.NewFromFloat(auction.Step)).Float64()
	if amount < minBid {
		return BidOutcome{}, fmt.Errorf("service: %w", &auctionerrors.BidTooLowError{Minimum: minBid})
	}
	if bidder.Balance < amount {
		return BidOutcome{}, fmt.Errorf("service: %w", auctionerrors.ErrInsufficientFunds)
	}

	// Refund whoever held the winning bid before this one.
	if prev, ok, err := s.repo.WinningBid(auctionID); err != nil {
		return BidOutcome{}, fmt.Errorf("service: check winning bid: %w", err)
	} else if ok {
		if err := s.repo.AdjustBalance(prev.UserID, prev.Amount); err != nil {
			return BidOutcome{}, fmt.Errorf("service: refund previous bidder: %w", err)
		}
	}
	if err := s.repo.AdjustBalance(bidder.ID, -amount); err != nil {
		return BidOutcome{}, fmt.Errorf("service: debit bidder: %w", err)
	}
	if _, err := s.repo.RecordBid(auctionID, bidder.ID, amount, now); err != nil {
		return BidOutcome{}, fmt.Errorf("service: record bid: %w", err)
	}

	updated, err := s.repo.AuctionByID(auctionID)
	if err != nil {
		return BidOutcome{}, err
	}
	refreshed, err := s.repo.UserByID(bidder.ID)
	if err != nil {
		return BidOutcome{}, err
	}

	utils.Info("bid accepted", map[string]any{
		"auction_id": auctionID,
		"user_id":    bidder.ID,
		"amount":     amount,
		"bids_count": updated.BidsCount,
	})
	return BidOutcome{NewBalance: refreshed.Balance, NewPrice: updated.CurrentPrice, BidsCount: updated.BidsCount}, nil
}

// AuctionBids lists an auction's bid history.
func (s *Service) AuctionBids(auctionID int64) ([]model.Bid, error) {
	if _, err := s.repo.AuctionByID(auctionID); err != nil {
		return nil, err
	}
	return s.repo.BidsByAuction(auctionID)
}

// FinishAuction closes an auction and assigns the winner from the winning
// bid (creator or admin).
func (s *Service) FinishAuction(actor model.User, auctionID int64) error {
	auction, err := s.repo.AuctionByID(auctionID)
	if err != nil {
		return err
	}
	if auction.CreatorID != actor.ID && actor.Role != "admin" {
		return fmt.Errorf("service: %w", auctionerrors.ErrForbidden)
	}

	if winning, ok, err := s.repo.WinningBid(auctionID); err != nil {
		return err
	} else if ok {
		auction.WinnerID = winning.UserID
		auction.CurrentPrice = winning.Amount
	}
	auction.Status = model.StatusFinished
	return s.repo.UpdateAuction(auction)
}

// --- Balance ---

// Balance returns the user's current balance.
func (s *Service) Balance(user model.User) (float64, error) {
	refreshed, err := s.repo.UserByID(user.ID)
	if err != nil {
		return 0, err
	}
	return refreshed.Balance, nil
}

// AddFixedBalance credits the fixed top-up amount and returns the new
// balance.
func (s *Service) AddFixedBalance(user model.User) (float64, error) {
	if err := s.repo.AdjustBalance(user.ID, FixedTopUp); err != nil {
		return 0, err
	}
	refreshed, err := s.repo.UserByID(user.ID)
	if err != nil {
		return 0, err
	}
	return refreshed.Balance, nil
}

// --- Users ---

// UserProfile fetches a user visible to the actor (self or admin).
func (s *Service) UserProfile(actor model.User, id int64) (model.User, error) {
	if actor.ID != id && actor.Role != "admin" {
		return model.User{}, fmt.Errorf("service: %w", auctionerrors.ErrForbidden)
	}
	return s.repo.UserByID(id)
}

// UpdateProfile saves profile edits (self or admin).
func (s *Service) UpdateProfile(actor model.User, id int64, fullName, email, birthdate string) (model.User, error) {
	if actor.ID != id && actor.Role != "admin" {
		return model.User{}, fmt.Errorf("service: %w", auctionerrors.ErrForbidden)
	}
	user, err := s.repo.UserByID(id)
	if err != nil {
		return model.User{}, err
	}
	user.FullName = fullName
	user.Email = email
	if birthdate != "" {
		user.Birthdate = birthdate
	}
	if err := s.repo.UpdateUser(user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// SetAvatar stores the avatar URL on the user record.
func (s *Service) SetAvatar(actor model.User, id int64, avatarURL string) (model.User, error) {
	if actor.ID != id && actor.Role != "admin" {
		return model.User{}, fmt.Errorf("service: %w", auctionerrors.ErrForbidden)
	}
	user, err := s.repo.UserByID(id)
	if err != nil {
		return model.User{}, err
	}
	user.AvatarURL = avatarURL
	if err := s.repo.UpdateUser(user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// UserBids lists a user's bids (self or admin).
func (s *Service) UserBids(actor model.User, id int64) ([]model.Bid, error) {
	if actor.ID != id && actor.Role != "admin" {
		return nil, fmt.Errorf("service: %w", auctionerrors.ErrForbidden)
	}
	return s.repo.BidsByUser(id)
}

// WonLots lists auctions the user has won (self or admin).
func (s *Service) WonLots(actor model.User, id int64) ([]model.Auction, error) {
	if actor.ID != id && actor.Role != "admin" {
		return nil, fmt.Errorf("service: %w", auctionerrors.ErrForbidden)
	}
	return s.repo.WonAuctions(id)
}

// --- Admin ---

func requireAdmin(actor model.User) error {
	if actor.Role != "admin" {
		return fmt.Errorf("service: %w", auctionerrors.ErrForbidden)
	}
	return nil
}

// AllUsers lists every user (admin).
func (s *Service) AllUsers(actor model.User) ([]model.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.repo.AllUsers()
}

// CreateUser creates an account from the admin panel.
func (s *Service) CreateUser(actor model.User, fullName, email, password, role, avatarURL string) (model.User, error) {
	if err := requireAdmin(actor); err != nil {
		return model.User{}, err
	}
	if role == "" {
		role = "user"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("service: hash password: %w", err)
	}
	return s.repo.CreateUser(model.User{FullName: fullName, Email: email, Role: role, AvatarURL: avatarURL}, string(hash))
}

// AdminUpdateUser edits a user record from the admin panel.
func (s *Service) AdminUpdateUser(actor model.User, id int64, fullName, email, role string, balance float64) (model.User, error) {
	if err := requireAdmin(actor); err != nil {
		return model.User{}, err
	}
	user, err := s.repo.UserByID(id)
	if err != nil {
		return model.User{}, err
	}
	user.FullName = fullName
	user.Email = email
	user.Role = role
	user.Balance = balance
	if err := s.repo.UpdateUser(user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// DeleteUser removes a user (admin).
func (s *Service) DeleteUser(actor model.User, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.repo.DeleteUser(id)
}

// ToggleBan flips a user's ban flag (admin).
func (s *Service) ToggleBan(actor model.User, id int64) (bool, error) {
	if err := requireAdmin(actor); err != nil {
		return false, err
	}
	user, err := s.repo.UserByID(id)
	if err != nil {
		return false, err
	}
	banned := !user.Banned
	if err := s.repo.SetBanned(id, banned); err != nil {
		return false, err
	}
	return banned, nil
}

// --- News ---

func requireEditor(actor model.User) error {
	if actor.Role != "admin" && actor.Role != "moder" {
		return fmt.Errorf("service: %w", auctionerrors.ErrForbidden)
	}
	return nil
}

// NewsList lists posts newest first.
func (s *Service) NewsList() ([]model.News, error) {
	return s.repo.AllNews()
}

// NewsInfo fetches one post.
func (s *Service) NewsInfo(id int64) (model.News, error) {
	return s.repo.NewsByID(id)
}

// CreateNews publishes a post (admin or moderator).
func (s *Service) CreateNews(actor model.User, title, content string) (model.News, error) {
	if err := requireEditor(actor); err != nil {
		return model.News{}, err
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return model.News{}, invalid("Заполните заголовок и текст новости")
	}
	return s.repo.CreateNews(model.News{Title: title, Content: content})
}

// UpdateNews edits a post (admin or moderator).
func (s *Service) UpdateNews(actor model.User, id int64, title, content string) (model.News, error) {
	if err := requireEditor(actor); err != nil {
		return model.News{}, err
	}
	if err := s.repo.UpdateNews(model.News{ID: id, Title: title, Content: content}); err != nil {
		return model.News{}, err
	}
	return s.repo.NewsByID(id)
}

// DeleteNews removes a post (admin or moderator).
func (s *Service) DeleteNews(actor model.User, id int64) error {
	if err := requireEditor(actor); err != nil {
		return err
	}
	return s.repo.DeleteNews(id)
}
