package view

import (
	"testing"
	"time"

	"auction-client/internal/countdown"
	model "auction-client/internal/models"

	"github.com/stretchr/testify/require"
)

// Tests FormatPrice
func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		expected string
	}{
		{"plain", 100, "100,00"},
		{"fraction", 99.5, "99,50"},
		{"thousands", 12345.67, "12 345,67"},
		{"millions", 1234567.8, "1 234 567,80"},
		{"zero", 0, "0,00"},
		{"negative", -1500, "-1 500,00"},
		{"float_noise_rounded", 110.00000001, "110,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, FormatPrice(tt.price))
		})
	}
}

func TestRoleDisplayName(t *testing.T) {
	require.Equal(t, "Администратор", RoleDisplayName("admin"))
	require.Equal(t, "Модератор", RoleDisplayName("moder"))
	require.Equal(t, "Пользователь", RoleDisplayName("user"))
	require.Equal(t, "Гость", RoleDisplayName(""))
	require.Equal(t, "Гость", RoleDisplayName("unknown"))
}

func TestAuctionDetail(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	auction := model.Auction{
		Title:        "Старинная ваза",
		Status:       model.StatusActive,
		StartPrice:   1000,
		CurrentPrice: 2500,
		Step:         100,
		BidsCount:    5,
		CreatorName:  "Мария",
		StartTime:    now.Add(-time.Hour),
		EndTime:      now.Add(time.Hour),
	}

	out := AuctionDetail(auction, now)
	require.Contains(t, out, "Старинная ваза [Активен]")
	require.Contains(t, out, "Текущая цена: 2 500,00 ₽")
	require.Contains(t, out, "Шаг ставки: 100,00 ₽")
	require.Contains(t, out, "Продавец: Мария")

	// Optional fields fall back to placeholders.
	auction.Description = ""
	auction.CreatorName = ""
	out = AuctionDetail(auction, now)
	require.Contains(t, out, "Описание отсутствует")
	require.Contains(t, out, "Продавец: Неизвестно")
}

func TestBidHistory(t *testing.T) {
	require.Equal(t, "Ставок пока нет", BidHistory(nil))

	created := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	bids := []model.Bid{
		{UserName: "Иван", Amount: 2500, CreatedAt: created, IsWinning: true},
		{UserName: "", Amount: 2400, CreatedAt: created.Add(-time.Minute)},
	}

	out := BidHistory(bids)
	require.Contains(t, out, "Иван [Лидирует] — 2 500,00 ₽")
	require.Contains(t, out, "Аноним — 2 400,00 ₽")
}

func TestRemainingStyle(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	require.Equal(t, "text-danger", RemainingStyle(countdown.Compute(now.Add(30*time.Minute), now)))
	require.Equal(t, "text-warning", RemainingStyle(countdown.Compute(now.Add(5*time.Hour), now)))
	require.Equal(t, "text-success", RemainingStyle(countdown.Compute(now.Add(48*time.Hour), now)))
	require.Equal(t, "text-danger", RemainingStyle(countdown.Compute(now.Add(-time.Second), now)))
}
