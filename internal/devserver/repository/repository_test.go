package repository

import (
	"path/filepath"
	"testing"
	"time"

	"auction-client/internal/devserver/auctionerrors"
	model "auction-client/internal/models"

	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "repo-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedAuction(t *testing.T, db *DB, title string) model.Auction {
	t.Helper()
	now := time.Now()
	auction, err := db.CreateAuction(model.Auction{
		Title:      title,
		StartPrice: 100,
		Step:       10,
		StartTime:  now.Add(-time.Hour),
		EndTime:    now.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	return auction
}

// Test users
func TestDB_Users(t *testing.T) {
	db := newTestDB(t)

	user, err := db.CreateUser(model.User{FullName: "Иван", Email: "ivan@test.local", Role: "user", Balance: 500}, "hash1")
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	// Duplicate email maps to the sentinel.
	_, err = db.CreateUser(model.User{FullName: "Другой", Email: "ivan@test.local", Role: "user"}, "hash2")
	require.ErrorIs(t, err, auctionerrors.ErrEmailTaken)

	fetched, hash, err := db.UserByEmail("ivan@test.local")
	require.NoError(t, err)
	require.Equal(t, user.ID, fetched.ID)
	require.Equal(t, "hash1", hash)

	require.NoError(t, db.AdjustBalance(user.ID, -200))
	require.NoError(t, db.AdjustBalance(user.ID, 50))
	fetched, err = db.UserByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, 350.0, fetched.Balance)

	_, err = db.UserByID(999)
	require.ErrorIs(t, err, auctionerrors.ErrUserNotFound)
}

// Test RecordBid transaction behavior
func TestDB_RecordBid(t *testing.T) {
	db := newTestDB(t)
	auction := seedAuction(t, db, "Лот с историей")

	first, err := db.CreateUser(model.User{FullName: "Первый", Email: "first@test.local", Role: "user"}, "h")
	require.NoError(t, err)
	second, err := db.CreateUser(model.User{FullName: "Второй", Email: "second@test.local", Role: "user"}, "h")
	require.NoError(t, err)

	now := time.Now()
	_, err = db.RecordBid(auction.ID, first.ID, 110, now)
	require.NoError(t, err)
	_, err = db.RecordBid(auction.ID, second.ID, 120, now.Add(time.Second))
	require.NoError(t, err)

	// Price and counter moved with the bids.
	updated, err := db.AuctionByID(auction.ID)
	require.NoError(t, err)
	require.Equal(t, 120.0, updated.CurrentPrice)
	require.Equal(t, 2, updated.BidsCount)

	// Exactly one bid is winning, the latest one.
	winning, ok, err := db.WinningBid(auction.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, second.ID, winning.UserID)

	bids, err := db.BidsByAuction(auction.ID)
	require.NoError(t, err)
	require.Len(t, bids, 2)
	require.Equal(t, 120.0, bids[0].Amount) // newest first
	require.True(t, bids[0].IsWinning)
	require.False(t, bids[1].IsWinning)
	require.Equal(t, "Второй", bids[0].UserName)
}

func TestDB_AuctionLists(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()

	seedAuction(t, db, "Открытый лот")
	_, err := db.CreateAuction(model.Auction{
		Title: "Закрытый лот", StartPrice: 100, Step: 10,
		StartTime: now.Add(-48 * time.Hour), EndTime: now.Add(-time.Hour),
		Status: model.StatusFinished,
	})
	require.NoError(t, err)

	active, err := db.ActiveAuctions()
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "Открытый лот", active[0].Title)

	completed, err := db.CompletedAuctions()
	require.NoError(t, err)
	require.Len(t, completed, 1)
	require.Equal(t, "Закрытый лот", completed[0].Title)
}

// Test sessions
func TestDB_Sessions(t *testing.T) {
	db := newTestDB(t)

	user, err := db.CreateUser(model.User{FullName: "Иван", Email: "ivan@test.local", Role: "user"}, "h")
	require.NoError(t, err)

	require.NoError(t, db.CreateSession("token-1", user.ID))

	resolved, err := db.UserBySession("token-1")
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)

	_, err = db.UserBySession("missing")
	require.Error(t, err)

	require.NoError(t, db.DeleteSession("token-1"))
	_, err = db.UserBySession("token-1")
	require.Error(t, err)
}
