// Package page holds the page-level controllers. Each controller owns its
// view state outright and drives rendering through narrow interfaces, so
// the decision logic stays testable without any UI attached.
package page

import (
	"context"
	"sync"
	"time"

	"auction-client/internal/auctionstatus"
	"auction-client/internal/bidform"
	"auction-client/internal/countdown"
	"auction-client/internal/gateway"
	model "auction-client/internal/models"
	"auction-client/internal/session"
	"auction-client/utils"
)

//go:generate mockgen -destination=mock_api.go -package=page auction-client/internal/page API,ListAPI

// API is the slice of the gateway the auction detail page consumes.
type API interface {
	Auction(ctx context.Context, id int64) (model.Auction, error)
	AuctionBids(ctx context.Context, auctionID int64) ([]model.Bid, error)
	PlaceBid(ctx context.Context, auctionID int64, amount float64) (gateway.BidResult, error)
	Balance(ctx context.Context) (model.Balance, error)
	WhoAmI(ctx context.Context) (model.Session, error)
}

// Notification levels, matching the platform's alert flavors.
const (
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelDanger  = "danger"
	LevelInfo    = "info"
)

// Display renders the auction detail view. Implementations must tolerate
// calls in any order: the post-bid refreshes complete independently.
type Display interface {
	RenderAuction(a model.Auction, status auctionstatus.Status)
	RenderBids(bids []model.Bid)
	RenderForm(state bidform.FormState)
	RenderRemaining(snap countdown.Snapshot)
	RenderBalance(balance float64)
	Notify(level, message string)
}

// DetailPage is the controller of one auction detail view. It is the
// single owner of the view state; the ticker and in-flight responses
// mutate it only through the mutex.
type DetailPage struct {
	api      API
	display  Display
	sessions *session.Store
	ticker   *countdown.Ticker
	clock    func() time.Time

	// Confirm is the two-phase confirmation step before a bid is
	// submitted. The default accepts; a UI wires its dialog here.
	Confirm func(amount float64) bool

	mu        sync.Mutex
	auctionID int64
	auction   *model.Auction
	session   model.Session
}

// NewDetailPage creates a detail page controller.
func NewDetailPage(api API, display Display, sessions *session.Store) *DetailPage {
	p := &DetailPage{
		api:      api,
		display:  display,
		sessions: sessions,
		clock:    time.Now,
		Confirm:  func(float64) bool { return true },
	}
	p.ticker = countdown.NewTicker(p)
	return p
}

// SetClock replaces the wall clock. Intended for tests.
func (p *DetailPage) SetClock(clock func() time.Time) {
	p.clock = clock
}

// Load fetches the auction, its bid history and the user's balance, then
// starts the countdown. The bid history and balance failures degrade
// silently; only the auction fetch is fatal to the view.
func (p *DetailPage) Load(ctx context.Context, auctionID int64) error {
	p.mu.Lock()
	p.auctionID = auctionID
	p.session = p.sessions.Load()
	p.mu.Unlock()

	if err := p.refreshAuction(ctx); err != nil {
		p.display.Notify(LevelDanger, "Не удалось загрузить данные аукциона")
		return err
	}
	p.refreshBids(ctx)
	p.refreshBalance(ctx)

	p.ticker.Start(p.currentAuction)
	return nil
}

// RefreshSession re-checks authentication with the server. Any failure
// degrades to guest without surfacing an error, then the form is
// reconfigured against the new session.
func (p *DetailPage) RefreshSession(ctx context.Context) {
	sess, err := p.api.WhoAmI(ctx)
	if err != nil || !sess.Authenticated {
		utils.Warn("whoAmI failed, treating as guest", map[string]any{"error": errString(err)})
		sess = model.Guest()
	}
	if err := p.sessions.Save(sess); err != nil {
		utils.Warn("failed to persist session snapshot", map[string]any{"error": err.Error()})
	}

	p.mu.Lock()
	p.session = sess
	auction := p.auction
	p.mu.Unlock()

	if auction != nil {
		p.display.RenderForm(bidform.Configure(*auction, sess, p.clock()))
	}
}

// PlaceBid runs the full bid flow: advisory validation, confirmation,
// submission, then three independent refreshes (auction, bids, balance).
// Each refresh renders as it arrives; no ordering is assumed between them.
func (p *DetailPage) PlaceBid(ctx context.Context, amount float64) error {
	p.mu.Lock()
	auction := p.auction
	sess := p.session
	p.mu.Unlock()

	if auction == nil {
		p.display.Notify(LevelDanger, "Аукцион не найден")
		return nil
	}

	if err := bidform.ValidateProposedBid(amount, *auction, sess); err != nil {
		p.display.Notify(LevelWarning, err.Error())
		return err
	}

	if !p.Confirm(amount) {
		return nil
	}

	if _, err := p.api.PlaceBid(ctx, auction.ID, amount); err != nil {
		// The gateway already carries the server's verbatim error text.
		p.display.Notify(LevelDanger, err.Error())
		return err
	}

	p.display.Notify(LevelSuccess, "Ставка успешно размещена!")
	utils.Info("bid placed", map[string]any{"auction_id": auction.ID, "amount": amount})

	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); _ = p.refreshAuction(ctx) }()
	go func() { defer wg.Done(); p.refreshBids(ctx) }()
	go func() { defer wg.Done(); p.refreshBalance(ctx) }()
	wg.Wait()

	p.ticker.Start(p.currentAuction)
	return nil
}

// Close tears the view down. No ticker callback fires afterwards.
func (p *DetailPage) Close() {
	p.ticker.Stop()
}

// RenderRemaining implements countdown.View.
func (p *DetailPage) RenderRemaining(snap countdown.Snapshot) {
	p.display.RenderRemaining(snap)
}

// AuctionExpired implements countdown.View: the one-time transition when
// the countdown crosses zero while the view is open.
func (p *DetailPage) AuctionExpired() {
	p.display.RenderForm(bidform.FormState{Notice: bidform.NoticeEnded})
}

func (p *DetailPage) refreshAuction(ctx context.Context) error {
	p.mu.Lock()
	id := p.auctionID
	p.mu.Unlock()

	auction, err := p.api.Auction(ctx, id)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.auction = &auction
	sess := p.session
	p.mu.Unlock()

	now := p.clock()
	p.display.RenderAuction(auction, auctionstatus.Derive(auction, now))
	p.display.RenderForm(bidform.Configure(auction, sess, now))
	return nil
}

func (p *DetailPage) refreshBids(ctx context.Context) {
	p.mu.Lock()
	id := p.auctionID
	p.mu.Unlock()

	bids, err := p.api.AuctionBids(ctx, id)
	if err != nil {
		return
	}
	p.display.RenderBids(bids)
}

func (p *DetailPage) refreshBalance(ctx context.Context) {
	p.mu.Lock()
	sess := p.session
	p.mu.Unlock()
	if !sess.Authenticated {
		return
	}

	balance, err := p.api.Balance(ctx)
	if err != nil {
		// Fall back to the cached value.
		p.display.RenderBalance(sess.Balance)
		return
	}

	p.mu.Lock()
	p.session.Balance = balance.Balance
	sess = p.session
	p.mu.Unlock()

	if err := p.sessions.Save(sess); err != nil {
		utils.Warn("failed to persist balance snapshot", map[string]any{"error": err.Error()})
	}
	p.display.RenderBalance(balance.Balance)
}

// currentAuction is the ticker's supplier: ok is false while the auction
// is not loaded, making the tick a silent no-op.
func (p *DetailPage) currentAuction() (model.Auction, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.auction == nil {
		return model.Auction{}, false
	}
	return *p.auction, true
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
