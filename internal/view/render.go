// Package view projects auction data into display text. Rendering is pure:
// all state decisions come from the auctionstatus and countdown packages.
package view

import (
	"fmt"
	"strings"
	"time"

	"auction-client/internal/auctionstatus"
	"auction-client/internal/countdown"
	model "auction-client/internal/models"

	"github.com/shopspring/decimal"
)

// FormatPrice renders a price with thousands grouping and two decimals,
// the way the platform shows money everywhere: "12 345,67".
func FormatPrice(price float64) string {
	fixed := decimal.NewFromFloat(price).StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	whole, frac, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(' ')
		}
		grouped.WriteRune(digit)
	}

	return sign + grouped.String() + "," + frac
}

// FormatPriceRub appends the ruble sign.
func FormatPriceRub(price float64) string {
	return FormatPrice(price) + " ₽"
}

// FormatTime renders a timestamp the way the pages show dates.
func FormatTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// RoleDisplayName maps a role code to its readable name.
func RoleDisplayName(role string) string {
	switch role {
	case "admin":
		return "Администратор"
	case "moder":
		return "Модератор"
	case "user":
		return "Пользователь"
	default:
		return "Гость"
	}
}

// AuctionDetail renders the detail block of an auction at time now.
func AuctionDetail(a model.Auction, now time.Time) string {
	status := auctionstatus.Derive(a, now)

	description := a.Description
	if description == "" {
		description = "Описание отсутствует"
	}
	creator := a.CreatorName
	if creator == "" {
		creator = "Неизвестно"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]\n", a.Title, status.Label)
	fmt.Fprintf(&b, "%s\n", description)
	fmt.Fprintf(&b, "Текущая цена: %s\n", FormatPriceRub(a.EffectivePrice()))
	fmt.Fprintf(&b, "Начальная цена: %s\n", FormatPriceRub(a.StartPrice))
	fmt.Fprintf(&b, "Шаг ставки: %s\n", FormatPriceRub(a.Step))
	fmt.Fprintf(&b, "Ставок: %d\n", a.BidsCount)
	fmt.Fprintf(&b, "Продавец: %s\n", creator)
	fmt.Fprintf(&b, "Начало: %s\n", FormatTime(a.StartTime))
	fmt.Fprintf(&b, "Окончание: %s", FormatTime(a.EndTime))
	return b.String()
}

// AuctionCard renders one row of the auction list.
func AuctionCard(a model.Auction, now time.Time) string {
	status := auctionstatus.Derive(a, now)
	return fmt.Sprintf("#%d %s — %s [%s]", a.ID, a.Title, FormatPriceRub(a.EffectivePrice()), status.Label)
}

// BidHistory renders the bid list of the detail page, newest first as the
// server returns them. The winning bid carries the leader marker.
func BidHistory(bids []model.Bid) string {
	if len(bids) == 0 {
		return "Ставок пока нет"
	}

	lines := make([]string, 0, len(bids))
	for _, bid := range bids {
		name := bid.UserName
		if name == "" {
			name = "Аноним"
		}
		marker := ""
		if bid.IsWinning {
			marker = " [Лидирует]"
		}
		lines = append(lines, fmt.Sprintf("%s%s — %s (%s)", name, marker, FormatPriceRub(bid.Amount), FormatTime(bid.CreatedAt)))
	}
	return strings.Join(lines, "\n")
}

// RemainingStyle maps a countdown snapshot to the style class of the
// remaining-time text: red under an hour or after expiry, yellow under a
// day, green otherwise.
func RemainingStyle(snap countdown.Snapshot) string {
	if snap.Expired {
		return "text-danger"
	}
	switch snap.Urgency {
	case countdown.UrgencyUrgent:
		return "text-danger"
	case countdown.UrgencyWarning:
		return "text-warning"
	default:
		return "text-success"
	}
}
