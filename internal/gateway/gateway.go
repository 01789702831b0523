// Package gateway is the REST client of the auction platform. Every call
// is fire-once request/response: a failure surfaces to the caller and is
// never retried here.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"auction-client/internal/clienterrors"
	model "auction-client/internal/models"
)

// Client talks to the auction backend. The cookie jar carries the server
// session across calls, the way a browser would.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the backend at baseURL.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("gateway: create cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
	}, nil
}

// errorBody is the JSON error shape all mutating endpoints return.
type errorBody struct {
	Error string `json:"error"`
}

// do performs one JSON request. A non-2xx response with an {error} body
// surfaces that string verbatim.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("gateway: build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// doMultipart performs one multipart/form-data request with optional file
// attachment, used by the create-auction and avatar endpoints.
func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, fileField, fileName string, file io.Reader, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("gateway: write form field %s: %w", key, err)
		}
	}
	if file != nil {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			return fmt.Errorf("gateway: attach %s: %w", fileName, err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return fmt.Errorf("gateway: copy %s: %w", fileName, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("gateway: finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("gateway: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", clienterrors.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gateway: decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

func (c *Client) mapError(resp *http.Response) error {
	var body errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(data, &body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return clienterrors.ErrUnauthorized
	case http.StatusForbidden:
		return clienterrors.ErrForbidden
	case http.StatusNotFound:
		return clienterrors.ErrNotFound
	}
	if body.Error != "" {
		return fmt.Errorf("%w: %s", clienterrors.ErrServerRejected, body.Error)
	}
	return fmt.Errorf("%w: status %d", clienterrors.ErrServerRejected, resp.StatusCode)
}

// --- Auctions ---

// Auction fetches one auction by id.
func (c *Client) Auction(ctx context.Context, id int64) (model.Auction, error) {
	var auction model.Auction
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/auctions/%d", id), nil, &auction)
	return auction, err
}

// ActiveAuctions lists auctions currently open for bidding.
func (c *Client) ActiveAuctions(ctx context.Context) ([]model.Auction, error) {
	var auctions []model.Auction
	err := c.do(ctx, http.MethodGet, "/api/auctions/active", nil, &auctions)
	return auctions, err
}

// CompletedAuctions lists finished auctions.
func (c *Client) CompletedAuctions(ctx context.Context) ([]model.Auction, error) {
	var auctions []model.Auction
	err := c.do(ctx, http.MethodGet, "/api/auctions/completed", nil, &auctions)
	return auctions, err
}

// MyCompletedAuctions lists the current user's finished auctions.
func (c *Client) MyCompletedAuctions(ctx context.Context) ([]model.Auction, error) {
	var auctions []model.Auction
	err := c.do(ctx, http.MethodGet, "/api/auctions/my/completed", nil, &auctions)
	return auctions, err
}

// AuctionDraft carries the create-auction form fields.
type AuctionDraft struct {
	Title       string
	Description string
	StartPrice  float64
	Step        float64
	StartTime   time.Time
	EndTime     time.Time
	Category    string
}

// CreateAuction submits the multipart create form. image may be nil.
func (c *Client) CreateAuction(ctx context.Context, draft AuctionDraft, imageName string, image io.Reader) (model.Auction, error) {
	fields := map[string]string{
		"title":       draft.Title,
		"description": draft.Description,
		"startPrice":  formatAmount(draft.StartPrice),
		"step":        formatAmount(draft.Step),
		"startTime":   draft.StartTime.Format(time.RFC3339),
		"endTime":     draft.EndTime.Format(time.RFC3339),
		"category":    draft.Category,
	}
	var auction model.Auction
	err := c.doMultipart(ctx, http.MethodPost, "/api/auctions/create", fields, "image", imageName, image, &auction)
	return auction, err
}

// AuctionUpdate carries the edit-auction form fields. Status is honored by
// the server for admins only.
type AuctionUpdate struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StartPrice  float64 `json:"startPrice"`
	Step        float64 `json:"step"`
	Category    string  `json:"category,omitempty"`
	Status      string  `json:"status,omitempty"`
}

// UpdateAuction saves edits to an auction.
func (c *Client) UpdateAuction(ctx context.Context, id int64, updates AuctionUpdate) (model.Auction, error) {
	var auction model.Auction
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/auctions/%d", id), updates, &auction)
	return auction, err
}

// DeleteAuction removes an auction (owner or admin).
func (c *Client) DeleteAuction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/auctions/%d", id), nil, nil)
}

// --- Bids ---

// AuctionBids lists the bid history of an auction, newest first, each
// annotated with isWinning.
func (c *Client) AuctionBids(ctx context.Context, auctionID int64) ([]model.Bid, error) {
	var bids []model.Bid
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/bids/auction/%d", auctionID), nil, &bids)
	return bids, err
}

// BidResult is the server's response to a placed bid.
type BidResult struct {
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
	NewBalance float64 `json:"newBalance"`
	NewPrice   float64 `json:"newPrice"`
	BidsCount  int     `json:"bidsCount"`
}

// PlaceBid submits a bid on an auction.
func (c *Client) PlaceBid(ctx context.Context, auctionID int64, amount float64) (BidResult, error) {
	payload := struct {
		AuctionID int64   `json:"auctionId"`
		Amount    float64 `json:"amount"`
	}{AuctionID: auctionID, Amount: amount}

	var result BidResult
	err := c.do(ctx, http.MethodPost, "/api/bids", payload, &result)
	return result, err
}

// FinishAuction closes an auction and assigns the winner (owner/admin).
func (c *Client) FinishAuction(ctx context.Context, auctionID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/bids/finish-auction/%d", auctionID), nil, nil)
}

// --- Balance ---

// Balance fetches the current user's balance.
func (c *Client) Balance(ctx context.Context) (model.Balance, error) {
	var balance model.Balance
	err := c.do(ctx, http.MethodGet, "/api/balance", nil, &balance)
	return balance, err
}

// TopUpResult is the server's response to a balance top-up.
type TopUpResult struct {
	NewBalance float64 `json:"newBalance"`
	Message    string  `json:"message"`
}

// AddFixedBalance tops up the balance by the server's fixed amount.
func (c *Client) AddFixedBalance(ctx context.Context) (TopUpResult, error) {
	var result TopUpResult
	err := c.do(ctx, http.MethodPost, "/api/balance/add-fixed", nil, &result)
	return result, err
}

// --- Users ---

// UserProfile fetches a user's profile.
func (c *Client) UserProfile(ctx context.Context, id int64) (model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, &user)
	return user, err
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Birthdate string `json:"birthdate,omitempty"`
}

// UpdateProfile saves profile edits.
func (c *Client) UpdateProfile(ctx context.Context, id int64, updates ProfileUpdate) (model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", id), updates, &user)
	return user, err
}

// UploadAvatar replaces the user's avatar image.
func (c *Client) UploadAvatar(ctx context.Context, id int64, fileName string, avatar io.Reader) (model.User, error) {
	var user model.User
	err := c.doMultipart(ctx, http.MethodPost, fmt.Sprintf("/api/users/%d/avatar", id), nil, "avatar", fileName, avatar, &user)
	return user, err
}

// UserBids lists the user's bids across auctions (user cabinet).
func (c *Client) UserBids(ctx context.Context, id int64) ([]model.Bid, error) {
	var bids []model.Bid
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d/bids", id), nil, &bids)
	return bids, err
}

// WonLots lists finished auctions the user has won.
func (c *Client) WonLots(ctx context.Context, id int64) ([]model.Auction, error) {
	var auctions []model.Auction
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d/won-lots", id), nil, &auctions)
	return auctions, err
}

// --- Admin ---

// AllUsers lists every user (admin panel).
func (c *Client) AllUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := c.do(ctx, http.MethodGet, "/api/users/all", nil, &users)
	return users, err
}

// NewUser carries the admin create-user form fields.
type NewUser struct {
	FullName string
	Email    string
	Password string
	Role     string
}

// CreateUserWithAvatar creates a user from the admin panel, with an
// optional avatar attachment.
func (c *Client) CreateUserWithAvatar(ctx context.Context, user NewUser, avatarName string, avatar io.Reader) (model.User, error) {
	fields := map[string]string{
		"fullName": user.FullName,
		"email":    user.Email,
		"password": user.Password,
		"role":     user.Role,
	}
	var created model.User
	err := c.doMultipart(ctx, http.MethodPost, "/api/users/create-with-avatar", fields, "avatar", avatarName, avatar, &created)
	return created, err
}

// AdminUserUpdate carries the admin edit-user fields.
type AdminUserUpdate struct {
	FullName string  `json:"fullName"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	Balance  float64 `json:"balance"`
}

// AdminUpdateUser edits a user from the admin panel.
func (c *Client) AdminUpdateUser(ctx context.Context, id int64, updates AdminUserUpdate) (model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d/admin-update", id), updates, &user)
	return user, err
}

// DeleteUser removes a user (admin).
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil, nil)
}

// BanUser toggles a user's ban flag (admin).
func (c *Client) BanUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/users/%d/ban", id), nil, nil)
}

// --- News ---

// NewsList fetches all news posts, newest first.
func (c *Client) NewsList(ctx context.Context) ([]model.News, error) {
	var news []model.News
	err := c.do(ctx, http.MethodGet, "/api/news", nil, &news)
	return news, err
}

// NewsInfo fetches one news post by id.
func (c *Client) NewsInfo(ctx context.Context, id int64) (model.News, error) {
	var news model.News
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/news/getInfo?id=%d", id), nil, &news)
	return news, err
}

// NewsDraft carries the create/update news fields.
type NewsDraft struct {
	ID      int64  `json:"id,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateNews publishes a news post.
func (c *Client) CreateNews(ctx context.Context, draft NewsDraft) (model.News, error) {
	var news model.News
	err := c.do(ctx, http.MethodPost, "/api/news", draft, &news)
	return news, err
}

// UpdateNews edits a news post.
func (c *Client) UpdateNews(ctx context.Context, draft NewsDraft) (model.News, error) {
	var news model.News
	err := c.do(ctx, http.MethodPost, "/api/news/update", draft, &news)
	return news, err
}

// DeleteNews removes a news post.
func (c *Client) DeleteNews(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/news/%d", id), nil, nil)
}

// --- Auth ---

// Credentials is the login form payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and returns the fresh session snapshot. The session
// cookie lands in the client's jar.
func (c *Client) Login(ctx context.Context, creds Credentials) (model.Session, error) {
	var sess model.Session
	err := c.do(ctx, http.MethodPost, "/auth/login", creds, &sess)
	return sess, err
}

// Registration is the register form payload.
type Registration struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and returns the session snapshot.
func (c *Client) Register(ctx context.Context, reg Registration) (model.Session, error) {
	var sess model.Session
	err := c.do(ctx, http.MethodPost, "/auth/register", reg, &sess)
	return sess, err
}

// Logout terminates the server session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// WhoAmI fetches the current session state. Callers treat any failure as
// guest rather than an error.
func (c *Client) WhoAmI(ctx context.Context) (model.Session, error) {
	var sess model.Session
	err := c.do(ctx, http.MethodGet, "/auth/whoAmI", nil, &sess)
	return sess, err
}

// ServerTime fetches the server clock display string.
func (c *Client) ServerTime(ctx context.Context) (model.ServerTime, error) {
	var st model.ServerTime
	err := c.do(ctx, http.MethodGet, "/api/time", nil, &st)
	return st, err
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%g", v)
}
