package page

import (
	"context"
	"sync"

	model "auction-client/internal/models"
)

// ListAPI is the slice of the gateway the auction list page consumes.
type ListAPI interface {
	ActiveAuctions(ctx context.Context) ([]model.Auction, error)
	CompletedAuctions(ctx context.Context) ([]model.Auction, error)
}

// ListDisplay renders the auction list view.
type ListDisplay interface {
	RenderAuctions(auctions []model.Auction)
	// RenderLoadError shows the failure notice with the manual reload
	// affordance; the client never retries on its own.
	RenderLoadError(message string)
}

// FilterAll shows every cached auction.
const FilterAll = "all"

// ListPage is the controller of the auction list view: it caches the last
// fetched list and applies the category filter locally.
type ListPage struct {
	api     ListAPI
	display ListDisplay

	mu       sync.Mutex
	auctions []model.Auction
	filter   string
}

// NewListPage creates a list page controller.
func NewListPage(api ListAPI, display ListDisplay) *ListPage {
	return &ListPage{api: api, display: display, filter: FilterAll}
}

// Load fetches the active auctions and renders them through the current
// filter. A failed fetch keeps the previous cache and shows the reload
// notice.
func (p *ListPage) Load(ctx context.Context) error {
	auctions, err := p.api.ActiveAuctions(ctx)
	if err != nil {
		p.display.RenderLoadError("Ошибка загрузки аукционов")
		return err
	}
	p.setAuctions(auctions)
	return nil
}

// LoadCompleted fetches the finished auctions instead.
func (p *ListPage) LoadCompleted(ctx context.Context) error {
	auctions, err := p.api.CompletedAuctions(ctx)
	if err != nil {
		p.display.RenderLoadError("Ошибка загрузки завершенных аукционов")
		return err
	}
	p.setAuctions(auctions)
	return nil
}

// Filter switches the category filter and re-renders from the cache, no
// network round trip involved.
func (p *ListPage) Filter(category string) {
	p.mu.Lock()
	p.filter = category
	p.mu.Unlock()
	p.render()
}

func (p *ListPage) setAuctions(auctions []model.Auction) {
	p.mu.Lock()
	p.auctions = auctions
	p.mu.Unlock()
	p.render()
}

func (p *ListPage) render() {
	p.mu.Lock()
	filter := p.filter
	filtered := make([]model.Auction, 0, len(p.auctions))
	for _, a := range p.auctions {
		if filter == FilterAll || filter == "" || a.Category == filter {
			filtered = append(filtered, a)
		}
	}
	p.mu.Unlock()
	p.display.RenderAuctions(filtered)
}
