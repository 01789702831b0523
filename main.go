// Command auction-client is a terminal viewer for the auction platform: it
// loads the cached session, fetches an auction with its bid history, keeps
// the remaining-time line ticking and optionally places a bid.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"auction-client/internal/auctionstatus"
	"auction-client/internal/bidform"
	"auction-client/internal/countdown"
	"auction-client/internal/gateway"
	model "auction-client/internal/models"
	"auction-client/internal/page"
	"auction-client/internal/session"
	"auction-client/internal/view"
)

func main() {
	var (
		baseURL   = flag.String("server", "http://localhost:8080", "auction server base URL")
		auctionID = flag.Int64("auction", 0, "auction id to open")
		bidAmount = flag.Float64("bid", 0, "place a bid of this amount and exit")
		watch     = flag.Bool("watch", false, "keep the countdown running until interrupted")
	)
	flag.Parse()

	if *auctionID <= 0 {
		fmt.Fprintln(os.Stderr, "usage: auction-client -auction <id> [-server URL] [-bid AMOUNT] [-watch]")
		os.Exit(2)
	}

	client, err := gateway.New(*baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid server URL: %v\n", err)
		os.Exit(1)
	}

	sessions := session.NewStore(sessionPath())
	display := &terminalDisplay{out: os.Stdout}

	p := page.NewDetailPage(client, display, sessions)
	p.Confirm = confirmBid
	defer p.Close()

	ctx := context.Background()
	p.RefreshSession(ctx)
	if err := p.Load(ctx, *auctionID); err != nil {
		os.Exit(1)
	}

	if *bidAmount > 0 {
		if err := p.PlaceBid(ctx, *bidAmount); err != nil {
			os.Exit(1)
		}
	}

	if *watch {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
	}
}

// sessionPath returns the session snapshot location under the user config dir.
func sessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "auction-client", "session.json")
}

// confirmBid asks for confirmation on stdin before a bid is submitted.
func confirmBid(amount float64) bool {
	fmt.Printf("Подтвердите ставку %s [y/N]: ", view.FormatPriceRub(amount))
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes" || answer == "д" || answer == "да"
}

// terminalDisplay renders the detail page to the terminal.
type terminalDisplay struct {
	out *os.File
}

func (d *terminalDisplay) RenderAuction(a model.Auction, status auctionstatus.Status) {
	fmt.Fprintln(d.out, view.AuctionDetail(a, time.Now()))
	fmt.Fprintf(d.out, "Статус: %s\n", status.Label)
}

func (d *terminalDisplay) RenderBids(bids []model.Bid) {
	fmt.Fprintln(d.out, "История ставок:")
	fmt.Fprintln(d.out, view.BidHistory(bids))
}

func (d *terminalDisplay) RenderForm(state bidform.FormState) {
	switch state.Notice {
	case bidform.NoticeNotStarted:
		fmt.Fprintln(d.out, "Аукцион еще не начался")
	case bidform.NoticeEnded:
		fmt.Fprintln(d.out, "Аукцион завершен")
	case bidform.NoticeLoginRequired:
		fmt.Fprintln(d.out, "Войдите, чтобы сделать ставку")
	default:
		if state.Visible {
			fmt.Fprintf(d.out, "Минимальная ставка: %s\n", view.FormatPriceRub(state.MinimumBid))
		}
	}
}

func (d *terminalDisplay) RenderRemaining(snap countdown.Snapshot) {
	fmt.Fprintf(d.out, "Осталось: %s\n", snap.Text)
}

func (d *terminalDisplay) RenderBalance(balance float64) {
	fmt.Fprintf(d.out, "Баланс: %s\n", view.FormatPriceRub(balance))
}

func (d *terminalDisplay) Notify(level, message string) {
	fmt.Fprintf(d.out, "[%s] %s\n", level, message)
}
