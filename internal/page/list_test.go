package page

import (
	"context"
	"sync"
	"testing"

	"auction-client/internal/clienterrors"
	model "auction-client/internal/models"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

type fakeListDisplay struct {
	mu       sync.Mutex
	rendered [][]model.Auction
	errors   []string
}

func (d *fakeListDisplay) RenderAuctions(auctions []model.Auction) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rendered = append(d.rendered, auctions)
}

func (d *fakeListDisplay) RenderLoadError(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errors = append(d.errors, message)
}

func (d *fakeListDisplay) last(t *testing.T) []model.Auction {
	d.mu.Lock()
	defer d.mu.Unlock()
	require.NotEmpty(t, d.rendered)
	return d.rendered[len(d.rendered)-1]
}

func TestListPage_LoadAndFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auctions := []model.Auction{
		{ID: 1, Title: "Ваза", Category: "art"},
		{ID: 2, Title: "Ноутбук", Category: "electronics"},
		{ID: 3, Title: "Картина", Category: "art"},
	}

	mockAPI := NewMockListAPI(ctrl)
	mockAPI.EXPECT().ActiveAuctions(gomock.Any()).Return(auctions, nil)

	display := &fakeListDisplay{}
	page := NewListPage(mockAPI, display)

	require.NoError(t, page.Load(context.Background()))
	require.Len(t, display.last(t), 3)

	// Filtering re-renders from the cache, no extra fetch.
	page.Filter("art")
	filtered := display.last(t)
	require.Len(t, filtered, 2)
	require.Equal(t, int64(1), filtered[0].ID)
	require.Equal(t, int64(3), filtered[1].ID)

	page.Filter(FilterAll)
	require.Len(t, display.last(t), 3)
}

func TestListPage_LoadErrorShowsReloadNotice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAPI := NewMockListAPI(ctrl)
	mockAPI.EXPECT().ActiveAuctions(gomock.Any()).Return(nil, clienterrors.ErrUnavailable)

	display := &fakeListDisplay{}
	page := NewListPage(mockAPI, display)

	require.ErrorIs(t, page.Load(context.Background()), clienterrors.ErrUnavailable)

	display.mu.Lock()
	defer display.mu.Unlock()
	require.Equal(t, []string{"Ошибка загрузки аукционов"}, display.errors)
	require.Empty(t, display.rendered, "a failed load must keep the previous view")
}

func TestListPage_LoadCompleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAPI := NewMockListAPI(ctrl)
	mockAPI.EXPECT().CompletedAuctions(gomock.Any()).Return([]model.Auction{{ID: 9, Status: model.StatusFinished}}, nil)

	display := &fakeListDisplay{}
	page := NewListPage(mockAPI, display)

	require.NoError(t, page.LoadCompleted(context.Background()))
	require.Len(t, display.last(t), 1)
}
