// Package repository is the sqlite persistence layer of the development
// stub backend.
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-client/internal/devserver/auctionerrors"
	model "auction-client/internal/models"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection.
type DB struct {
	conn *sql.DB
}

// NewDB opens a database connection and runs migrations.
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, err
	}
	return db, nil
}

// Close releases the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			full_name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			balance REAL NOT NULL DEFAULT 0,
			avatar_url TEXT NOT NULL DEFAULT '',
			birthdate TEXT NOT NULL DEFAULT '',
			visits INTEGER NOT NULL DEFAULT 0,
			banned INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS auctions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			start_price REAL NOT NULL,
			current_price REAL NOT NULL DEFAULT 0,
			step REAL NOT NULL,
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'ACTIVE',
			bids_count INTEGER NOT NULL DEFAULT 0,
			creator_id INTEGER REFERENCES users(id),
			winner_id INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS bids (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			auction_id INTEGER NOT NULL REFERENCES auctions(id) ON DELETE CASCADE,
			user_id INTEGER NOT NULL REFERENCES users(id),
			amount REAL NOT NULL,
			winning INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS news (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// --- Users ---

// CreateUser inserts a user and returns it with the assigned id.
func (db *DB) CreateUser(u model.User, passwordHash string) (model.User, error) {
	res, err := db.conn.Exec(
		`INSERT INTO users (full_name, email, password_hash, role, balance, avatar_url, birthdate) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.FullName, u.Email, passwordHash, u.Role, u.Balance, u.AvatarURL, u.Birthdate,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return model.User{}, fmt.Errorf("create user %s: %w", u.Email, auctionerrors.ErrEmailTaken)
		}
		return model.User{}, err
	}
	u.ID, err = res.LastInsertId()
	return u, err
}

const userColumns = `id, full_name, email, role, balance, avatar_url, birthdate, visits, banned, created_at`

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	var banned int
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Role, &u.Balance, &u.AvatarURL, &u.Birthdate, &u.Visits, &banned, &u.CreatedAt)
	u.Banned = banned != 0
	return u, err
}

// UserByID fetches one user.
func (db *DB) UserByID(id int64) (model.User, error) {
	row := db.conn.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("user %d: %w", id, auctionerrors.ErrUserNotFound)
	}
	return u, err
}

// UserByEmail fetches one user together with the stored password hash.
func (db *DB) UserByEmail(email string) (model.User, string, error) {
	row := db.conn.QueryRow(`SELECT `+userColumns+`, password_hash FROM users WHERE email = ?`, email)
	var u model.User
	var banned int
	var hash string
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Role, &u.Balance, &u.AvatarURL, &u.Birthdate, &u.Visits, &banned, &u.CreatedAt, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, "", fmt.Errorf("user %s: %w", email, auctionerrors.ErrUserNotFound)
	}
	u.Banned = banned != 0
	return u, hash, err
}

// AllUsers lists every user for the admin panel.
func (db *DB) AllUsers() ([]model.User, error) {
	rows, err := db.conn.Query(`SELECT ` + userColumns + ` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUser saves profile fields.
func (db *DB) UpdateUser(u model.User) error {
	res, err := db.conn.Exec(
		`UPDATE users SET full_name = ?, email = ?, role = ?, balance = ?, avatar_url = ?, birthdate = ? WHERE id = ?`,
		u.FullName, u.Email, u.Role, u.Balance, u.AvatarURL, u.Birthdate, u.ID,
	)
	if err != nil {
		return err
	}
	return db.requireRow(res, auctionerrors.ErrUserNotFound)
}

// AdjustBalance adds delta to a user's balance.
func (db *DB) AdjustBalance(userID int64, delta float64) error {
	res, err := db.conn.Exec(`UPDATE users SET balance = balance + ? WHERE id = ?`, delta, userID)
	if err != nil {
		return err
	}
	return db.requireRow(res, auctionerrors.ErrUserNotFound)
}

// SetBanned toggles a user's ban flag.
func (db *DB) SetBanned(userID int64, banned bool) error {
	res, err := db.conn.Exec(`UPDATE users SET banned = ? WHERE id = ?`, boolToInt(banned), userID)
	if err != nil {
		return err
	}
	return db.requireRow(res, auctionerrors.ErrUserNotFound)
}

// IncrementVisits bumps the visit counter checked on whoAmI.
func (db *DB) IncrementVisits(userID int64) error {
	_, err := db.conn.Exec(`UPDATE users SET visits = visits + 1 WHERE id = ?`, userID)
	return err
}

// DeleteUser removes a user.
func (db *DB) DeleteUser(id int64) error {
	res, err := db.conn.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return db.requireRow(res, auctionerrors.ErrUserNotFound)
}

// --- Auctions ---

const auctionColumns = `a.id, a.title, a.description, a.start_price, a.current_price, a.step,
	a.start_time, a.end_time, a.image_url, a.category, a.status, a.bids_count,
	a.creator_id, COALESCE(u.full_name, ''), COALESCE(a.winner_id, 0), COALESCE(w.full_name, ''), a.created_at`

const auctionJoins = ` FROM auctions a
	LEFT JOIN users u ON u.id = a.creator_id
	LEFT JOIN users w ON w.id = a.winner_id`

func scanAuction(row interface{ Scan(...any) error }) (model.Auction, error) {
	var a model.Auction
	err := row.Scan(&a.ID, &a.Title, &a.Description, &a.StartPrice, &a.CurrentPrice, &a.Step,
		&a.StartTime, &a.EndTime, &a.ImageURL, &a.Category, &a.Status, &a.BidsCount,
		&a.CreatorID, &a.CreatorName, &a.WinnerID, &a.WinnerName, &a.CreatedAt)
	return a, err
}

// CreateAuction inserts an auction and returns it with the assigned id.
func (db *DB) CreateAuction(a model.Auction) (model.Auction, error) {
	if a.Status == "" {
		a.Status = model.StatusActive
	}
	res, err := db.conn.Exec(
		`INSERT INTO auctions (title, description, start_price, current_price, step, start_time, end_time, image_url, category, status, creator_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Title, a.Description, a.StartPrice, a.CurrentPrice, a.Step,
		a.StartTime.UTC(), a.EndTime.UTC(), a.ImageURL, a.Category, a.Status, a.CreatorID,
	)
	if err != nil {
		return model.Auction{}, err
	}
	a.ID, err = res.LastInsertId()
	return a, err
}

// AuctionByID fetches one auction with creator and winner names resolved.
func (db *DB) AuctionByID(id int64) (model.Auction, error) {
	row := db.conn.QueryRow(`SELECT `+auctionColumns+auctionJoins+` WHERE a.id = ?`, id)
	a, err := scanAuction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Auction{}, fmt.Errorf("auction %d: %w", id, auctionerrors.ErrAuctionNotFound)
	}
	return a, err
}

// ActiveAuctions lists auctions whose status is ACTIVE, newest end first.
func (db *DB) ActiveAuctions() ([]model.Auction, error) {
	return db.queryAuctions(`SELECT `+auctionColumns+auctionJoins+` WHERE a.status = ? ORDER BY a.end_time`, model.StatusActive)
}

// CompletedAuctions lists finished and cancelled auctions.
func (db *DB) CompletedAuctions() ([]model.Auction, error) {
	return db.queryAuctions(
		`SELECT `+auctionColumns+auctionJoins+` WHERE a.status IN (?, ?) ORDER BY a.end_time DESC`,
		model.StatusFinished, model.StatusCancelled,
	)
}

// CompletedAuctionsByCreator lists a user's own finished auctions.
func (db *DB) CompletedAuctionsByCreator(creatorID int64) ([]model.Auction, error) {
	return db.queryAuctions(
		`SELECT `+auctionColumns+auctionJoins+` WHERE a.creator_id = ? AND a.status != ? ORDER BY a.end_time DESC`,
		creatorID, model.StatusActive,
	)
}

// WonAuctions lists finished auctions won by the user.
func (db *DB) WonAuctions(userID int64) ([]model.Auction, error) {
	return db.queryAuctions(
		`SELECT `+auctionColumns+auctionJoins+` WHERE a.winner_id = ? AND a.status = ? ORDER BY a.end_time DESC`,
		userID, model.StatusFinished,
	)
}

func (db *DB) queryAuctions(query string, args ...any) ([]model.Auction, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var auctions []model.Auction
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, err
		}
		auctions = append(auctions, a)
	}
	return auctions, rows.Err()
}

// UpdateAuction saves editable auction fields.
func (db *DB) UpdateAuction(a model.Auction) error {
	res, err := db.conn.Exec(
		`UPDATE auctions SET title = ?, description = ?, start_price = ?, step = ?, category = ?, status = ?,
		 current_price = ?, bids_count = ?, winner_id = ? WHERE id = ?`,
		a.Title, a.Description, a.StartPrice, a.Step, a.Category, a.Status,
		a.CurrentPrice, a.BidsCount, nullableID(a.WinnerID), a.ID,
	)
	if err != nil {
		return err
	}
	return db.requireRow(res, auctionerrors.ErrAuctionNotFound)
}

// DeleteAuction removes an auction and its bids.
func (db *DB) DeleteAuction(id int64) error {
	res, err := db.conn.Exec(`DELETE FROM auctions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return db.requireRow(res, auctionerrors.ErrAuctionNotFound)
}

// --- Bids ---

// RecordBid inserts a bid flagged winning, clears the previous winning
// flag, and updates the auction's price and counter, all in one
// transaction.
func (db *DB) RecordBid(auctionID, userID int64, amount float64, createdAt time.Time) (model.Bid, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return model.Bid{}, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE bids SET winning = 0 WHERE auction_id = ? AND winning = 1`, auctionID); err != nil {
		return model.Bid{}, err
	}
	res, err := tx.Exec(
		`INSERT INTO bids (auction_id, user_id, amount, winning, created_at) VALUES (?, ?, ?, 1, ?)`,
		auctionID, userID, amount, createdAt.UTC(),
	)
	if err != nil {
		return model.Bid{}, err
	}
	bidID, err := res.LastInsertId()
	if err != nil {
		return model.Bid{}, err
	}
	if _, err := tx.Exec(
		`UPDATE auctions SET current_price = ?, bids_count = bids_count + 1 WHERE id = ?`,
		amount, auctionID,
	); err != nil {
		return model.Bid{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Bid{}, err
	}

	return model.Bid{ID: bidID, AuctionID: auctionID, UserID: userID, Amount: amount, CreatedAt: createdAt, IsWinning: true}, nil
}

const bidColumns = `b.id, b.auction_id, b.user_id, b.amount, b.winning, b.created_at, COALESCE(u.full_name, ''), COALESCE(a.title, '')`

const bidJoins = ` FROM bids b
	LEFT JOIN users u ON u.id = b.user_id
	LEFT JOIN auctions a ON a.id = b.auction_id`

func (db *DB) queryBids(query string, args ...any) ([]model.Bid, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []model.Bid
	for rows.Next() {
		var b model.Bid
		var winning int
		if err := rows.Scan(&b.ID, &b.AuctionID, &b.UserID, &b.Amount, &winning, &b.CreatedAt, &b.UserName, &b.AuctionTitle); err != nil {
			return nil, err
		}
		b.IsWinning = winning != 0
		bids = append(bids, b)
	}
	return bids, rows.Err()
}

// BidsByAuction lists an auction's bids, newest first.
func (db *DB) BidsByAuction(auctionID int64) ([]model.Bid, error) {
	return db.queryBids(`SELECT `+bidColumns+bidJoins+` WHERE b.auction_id = ? ORDER BY b.created_at DESC, b.id DESC`, auctionID)
}

// BidsByUser lists a user's bids across auctions, newest first.
func (db *DB) BidsByUser(userID int64) ([]model.Bid, error) {
	return db.queryBids(`SELECT `+bidColumns+bidJoins+` WHERE b.user_id = ? ORDER BY b.created_at DESC, b.id DESC`, userID)
}

// WinningBid returns the currently winning bid of an auction, if any.
func (db *DB) WinningBid(auctionID int64) (model.Bid, bool, error) {
	bids, err := db.queryBids(`SELECT `+bidColumns+bidJoins+` WHERE b.auction_id = ? AND b.winning = 1 ORDER BY b.id DESC LIMIT 1`, auctionID)
	if err != nil {
		return model.Bid{}, false, err
	}
	if len(bids) == 0 {
		return model.Bid{}, false, nil
	}
	return bids[0], true, nil
}

// --- News ---

// CreateNews inserts a news post.
func (db *DB) CreateNews(n model.News) (model.News, error) {
	res, err := db.conn.Exec(`INSERT INTO news (title, content, image_url) VALUES (?, ?, ?)`, n.Title, n.Content, n.ImageURL)
	if err != nil {
		return model.News{}, err
	}
	n.ID, err = res.LastInsertId()
	n.CreatedAt = time.Now().UTC()
	return n, err
}

// NewsByID fetches one news post.
func (db *DB) NewsByID(id int64) (model.News, error) {
	row := db.conn.QueryRow(`SELECT id, title, content, image_url, created_at FROM news WHERE id = ?`, id)
	var n model.News
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.ImageURL, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.News{}, fmt.Errorf("news %d: %w", id, auctionerrors.ErrNewsNotFound)
	}
	return n, err
}

// AllNews lists posts newest first.
func (db *DB) AllNews() ([]model.News, error) {
	rows, err := db.conn.Query(`SELECT id, title, content, image_url, created_at FROM news ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var news []model.News
	for rows.Next() {
		var n model.News
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.ImageURL, &n.CreatedAt); err != nil {
			return nil, err
		}
		news = append(news, n)
	}
	return news, rows.Err()
}

// UpdateNews saves edits to a post.
func (db *DB) UpdateNews(n model.News) error {
	res, err := db.conn.Exec(`UPDATE news SET title = ?, content = ? WHERE id = ?`, n.Title, n.Content, n.ID)
	if err != nil {
		return err
	}
	return db.requireRow(res, auctionerrors.ErrNewsNotFound)
}

// DeleteNews removes a post.
func (db *DB) DeleteNews(id int64) error {
	res, err := db.conn.Exec(`DELETE FROM news WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return db.requireRow(res, auctionerrors.ErrNewsNotFound)
}

// --- Sessions ---

// CreateSession records a session token for a user.
func (db *DB) CreateSession(token string, userID int64) error {
	_, err := db.conn.Exec(`INSERT INTO sessions (token, user_id) VALUES (?, ?)`, token, userID)
	return err
}

// UserBySession resolves a session token to its user.
func (db *DB) UserBySession(token string) (model.User, error) {
	row := db.conn.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = (SELECT user_id FROM sessions WHERE token = ?)`, token)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, auctionerrors.ErrUnauthenticated
	}
	return u, err
}

// DeleteSession drops a session token.
func (db *DB) DeleteSession(token string) error {
	_, err := db.conn.Exec(`DELETE FROM sessions WHERE token = ?`, token)
	return err
}

func (db *DB) requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
