package page

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"auction-client/internal/auctionstatus"
	"auction-client/internal/bidform"
	"auction-client/internal/clienterrors"
	"auction-client/internal/countdown"
	"auction-client/internal/gateway"
	model "auction-client/internal/models"
	"auction-client/internal/session"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

// fakeDisplay records render calls. The post-bid refreshes run on
// goroutines, hence the mutex.
type fakeDisplay struct {
	mu            sync.Mutex
	auctions      []model.Auction
	statuses      []auctionstatus.Status
	bids          [][]model.Bid
	forms         []bidform.FormState
	snapshots     []countdown.Snapshot
	balances      []float64
	notifications []string
}

func (d *fakeDisplay) RenderAuction(a model.Auction, s auctionstatus.Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.auctions = append(d.auctions, a)
	d.statuses = append(d.statuses, s)
}

func (d *fakeDisplay) RenderBids(bids []model.Bid) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bids = append(d.bids, bids)
}

func (d *fakeDisplay) RenderForm(state bidform.FormState) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.forms = append(d.forms, state)
}

func (d *fakeDisplay) RenderRemaining(snap countdown.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.snapshots = append(d.snapshots, snap)
}

func (d *fakeDisplay) RenderBalance(balance float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.balances = append(d.balances, balance)
}

func (d *fakeDisplay) Notify(level, message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notifications = append(d.notifications, level+": "+message)
}

func (d *fakeDisplay) lastForm(t *testing.T) bidform.FormState {
	d.mu.Lock()
	defer d.mu.Unlock()
	require.NotEmpty(t, d.forms)
	return d.forms[len(d.forms)-1]
}

func (d *fakeDisplay) lastAuction(t *testing.T) model.Auction {
	d.mu.Lock()
	defer d.mu.Unlock()
	require.NotEmpty(t, d.auctions)
	return d.auctions[len(d.auctions)-1]
}

func (d *fakeDisplay) allNotifications() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.notifications...)
}

func testAuction(now time.Time) model.Auction {
	return model.Auction{
		ID:           42,
		Title:        "Картина",
		Status:       model.StatusActive,
		StartPrice:   50,
		CurrentPrice: 100,
		Step:         10,
		BidsCount:    3,
		StartTime:    now.Add(-time.Hour),
		EndTime:      now.Add(time.Hour),
	}
}

func newTestPage(t *testing.T, api API, authenticated bool, balance float64) (*DetailPage, *fakeDisplay, *session.Store) {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if authenticated {
		require.NoError(t, store.Save(model.Session{Authenticated: true, ID: 1, FullName: "Иван", Balance: balance}))
	}
	display := &fakeDisplay{}
	page := NewDetailPage(api, display, store)
	t.Cleanup(page.Close)
	return page, display, store
}

// Tests Load
func TestDetailPage_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Now()
	auction := testAuction(now)
	bids := []model.Bid{{ID: 1, UserName: "Петр", Amount: 100, IsWinning: true}}

	mockAPI := NewMockAPI(ctrl)
	mockAPI.EXPECT().Auction(gomock.Any(), int64(42)).Return(auction, nil)
	mockAPI.EXPECT().AuctionBids(gomock.Any(), int64(42)).Return(bids, nil)
	mockAPI.EXPECT().Balance(gomock.Any()).Return(model.Balance{Balance: 500}, nil)

	page, display, store := newTestPage(t, mockAPI, true, 200)

	require.NoError(t, page.Load(context.Background(), 42))

	require.Equal(t, auction.ID, display.lastAuction(t).ID)

	form := display.lastForm(t)
	require.True(t, form.Visible)
	require.Equal(t, 110.0, form.MinimumBid)

	display.mu.Lock()
	require.Equal(t, [][]model.Bid{bids}, display.bids)
	require.Equal(t, []float64{500}, display.balances)
	require.NotEmpty(t, display.snapshots, "countdown must tick once on load")
	display.mu.Unlock()

	// The refreshed balance overwrites the cached snapshot.
	require.Equal(t, 500.0, store.Load().Balance)
}

func TestDetailPage_LoadFailureNotifies(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAPI := NewMockAPI(ctrl)
	mockAPI.EXPECT().Auction(gomock.Any(), int64(42)).Return(model.Auction{}, clienterrors.ErrUnavailable)

	page, display, _ := newTestPage(t, mockAPI, true, 200)

	err := page.Load(context.Background(), 42)
	require.ErrorIs(t, err, clienterrors.ErrUnavailable)
	require.Contains(t, display.allNotifications(), "danger: Не удалось загрузить данные аукциона")
}

// Tests PlaceBid
func TestDetailPage_PlaceBid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Now()
	auction := testAuction(now)
	refreshed := auction
	refreshed.CurrentPrice = 110
	refreshed.BidsCount = 4

	mockAPI := NewMockAPI(ctrl)
	// Load.
	mockAPI.EXPECT().Auction(gomock.Any(), int64(42)).Return(auction, nil)
	mockAPI.EXPECT().AuctionBids(gomock.Any(), int64(42)).Return(nil, clienterrors.ErrNotFound)
	mockAPI.EXPECT().Balance(gomock.Any()).Return(model.Balance{Balance: 200}, nil)
	// Bid and the three independent refreshes.
	mockAPI.EXPECT().PlaceBid(gomock.Any(), int64(42), 110.0).Return(gateway.BidResult{Success: true, NewBalance: 90}, nil)
	mockAPI.EXPECT().Auction(gomock.Any(), int64(42)).Return(refreshed, nil)
	mockAPI.EXPECT().AuctionBids(gomock.Any(), int64(42)).Return([]model.Bid{{Amount: 110, IsWinning: true}}, nil)
	mockAPI.EXPECT().Balance(gomock.Any()).Return(model.Balance{Balance: 90}, nil)

	page, display, store := newTestPage(t, mockAPI, true, 200)
	require.NoError(t, page.Load(context.Background(), 42))

	confirmed := 0.0
	page.Confirm = func(amount float64) bool { confirmed = amount; return true }

	require.NoError(t, page.PlaceBid(context.Background(), 110))
	require.Equal(t, 110.0, confirmed)

	require.Contains(t, display.allNotifications(), "success: Ставка успешно размещена!")

	// The re-fetched auction reflects the accepted bid.
	last := display.lastAuction(t)
	require.Equal(t, 110.0, last.CurrentPrice)
	require.Equal(t, 4, last.BidsCount)

	// The balance cache was overwritten with the post-bid value.
	require.Equal(t, 90.0, store.Load().Balance)
}

func TestDetailPage_PlaceBidValidationStopsBeforeNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Now()
	mockAPI := NewMockAPI(ctrl)
	mockAPI.EXPECT().Auction(gomock.Any(), int64(42)).Return(testAuction(now), nil)
	mockAPI.EXPECT().AuctionBids(gomock.Any(), int64(42)).Return(nil, nil)
	mockAPI.EXPECT().Balance(gomock.Any()).Return(model.Balance{Balance: 200}, nil)
	// No PlaceBid expectation: the invalid amount must never reach the wire.

	page, display, _ := newTestPage(t, mockAPI, true, 200)
	require.NoError(t, page.Load(context.Background(), 42))

	err := page.PlaceBid(context.Background(), 90)
	require.ErrorIs(t, err, clienterrors.ErrBelowMinimum)

	notifications := display.allNotifications()
	require.NotEmpty(t, notifications)
	require.Contains(t, notifications[len(notifications)-1], "110,00 ₽")
}

func TestDetailPage_PlaceBidCancelledInConfirmation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Now()
	mockAPI := NewMockAPI(ctrl)
	mockAPI.EXPECT().Auction(gomock.Any(), int64(42)).Return(testAuction(now), nil)
	mockAPI.EXPECT().AuctionBids(gomock.Any(), int64(42)).Return(nil, nil)
	mockAPI.EXPECT().Balance(gomock.Any()).Return(model.Balance{Balance: 200}, nil)

	page, _, _ := newTestPage(t, mockAPI, true, 200)
	require.NoError(t, page.Load(context.Background(), 42))

	page.Confirm = func(float64) bool { return false }
	require.NoError(t, page.PlaceBid(context.Background(), 110))
}

// A server rejection surfaces its message verbatim and keeps the form
// usable for a retry.
func TestDetailPage_PlaceBidServerRejection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Now()
	serverErr := fmt.Errorf("%w: Аукцион завершен", clienterrors.ErrServerRejected)

	mockAPI := NewMockAPI(ctrl)
	mockAPI.EXPECT().Auction(gomock.Any(), int64(42)).Return(testAuction(now), nil)
	mockAPI.EXPECT().AuctionBids(gomock.Any(), int64(42)).Return(nil, nil)
	mockAPI.EXPECT().Balance(gomock.Any()).Return(model.Balance{Balance: 200}, nil)
	mockAPI.EXPECT().PlaceBid(gomock.Any(), int64(42), 110.0).Return(gateway.BidResult{}, serverErr)

	page, display, _ := newTestPage(t, mockAPI, true, 200)
	require.NoError(t, page.Load(context.Background(), 42))

	err := page.PlaceBid(context.Background(), 110)
	require.ErrorIs(t, err, clienterrors.ErrServerRejected)

	notifications := display.allNotifications()
	require.Contains(t, notifications[len(notifications)-1], "Аукцион завершен")
}

// Tests RefreshSession
func TestDetailPage_RefreshSessionDegradesToGuest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Now()
	mockAPI := NewMockAPI(ctrl)
	mockAPI.EXPECT().Auction(gomock.Any(), int64(42)).Return(testAuction(now), nil)
	mockAPI.EXPECT().AuctionBids(gomock.Any(), int64(42)).Return(nil, nil)
	mockAPI.EXPECT().Balance(gomock.Any()).Return(model.Balance{Balance: 200}, nil)
	mockAPI.EXPECT().WhoAmI(gomock.Any()).Return(model.Session{}, errors.New("boom"))

	page, display, store := newTestPage(t, mockAPI, true, 200)
	require.NoError(t, page.Load(context.Background(), 42))

	page.RefreshSession(context.Background())

	require.Equal(t, model.Guest(), store.Load())
	require.Equal(t, bidform.NoticeLoginRequired, display.lastForm(t).Notice)

	// whoAmI failure is background housekeeping, never a user-facing error.
	for _, n := range display.allNotifications() {
		require.NotContains(t, n, "boom")
	}
}

func TestDetailPage_GuestSeesLoginPrompt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Now()
	mockAPI := NewMockAPI(ctrl)
	mockAPI.EXPECT().Auction(gomock.Any(), int64(42)).Return(testAuction(now), nil)
	mockAPI.EXPECT().AuctionBids(gomock.Any(), int64(42)).Return(nil, nil)
	// No Balance expectation: guests have no balance to fetch.

	page, display, _ := newTestPage(t, mockAPI, false, 0)
	require.NoError(t, page.Load(context.Background(), 42))

	form := display.lastForm(t)
	require.False(t, form.Visible)
	require.Equal(t, bidform.NoticeLoginRequired, form.Notice)
}
