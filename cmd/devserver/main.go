// Command devserver runs the development stub backend: the full auction
// REST contract over gin with sqlite persistence, seeded with sample data.
package main

import (
	"fmt"
	"os"
	"time"

	"auction-client/internal/devserver/repository"
	"auction-client/internal/devserver/server"
	"auction-client/internal/devserver/service"
	model "auction-client/internal/models"
	"auction-client/utils"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dbPath := envOr("AUCTION_DB", "auction-dev.db")
	uploadDir := envOr("AUCTION_UPLOADS", "uploads")

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		utils.Fatal("failed to create upload dir", map[string]any{"dir": uploadDir, "error": err.Error()})
	}

	repo, err := repository.NewDB(dbPath)
	if err != nil {
		utils.Fatal("failed to open database", map[string]any{"path": dbPath, "error": err.Error()})
	}
	defer repo.Close()

	seed(repo)

	svc := service.New(repo)
	router := server.SetupRouter(svc, uploadDir)

	port := getPort()
	fmt.Printf("Starting auction dev server on %s...\n", port)
	if err := router.Run(port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// seed adds sample users and auctions so the pages have something to show.
// Re-seeding an existing database is skipped.
func seed(repo *repository.DB) {
	if users, err := repo.AllUsers(); err == nil && len(users) > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		utils.Fatal("failed to hash seed password", map[string]any{"error": err.Error()})
	}
	admin, err := repo.CreateUser(model.User{FullName: "Администратор", Email: "admin@auction.local", Role: "admin", Balance: 100000}, string(hash))
	if err != nil {
		utils.Fatal("failed to seed admin", map[string]any{"error": err.Error()})
	}

	now := time.Now()
	auctions := []model.Auction{
		{
			Title:      "Антикварные часы",
			StartPrice: 5000, Step: 100,
			StartTime: now.Add(-time.Hour), EndTime: now.Add(24 * time.Hour),
			Category: "electronics", Status: model.StatusActive, CreatorID: admin.ID,
		},
		{
			Title:      "Картина маслом",
			StartPrice: 12000, Step: 500,
			StartTime: now.Add(time.Hour), EndTime: now.Add(48 * time.Hour),
			Category: "art", Status: model.StatusActive, CreatorID: admin.ID,
		},
		{
			Title:      "Коллекция монет",
			StartPrice: 3000, Step: 50,
			StartTime: now.Add(-48 * time.Hour), EndTime: now.Add(-time.Hour),
			Category: "other", Status: model.StatusFinished, CreatorID: admin.ID,
		},
	}
	for _, a := range auctions {
		if _, err := repo.CreateAuction(a); err != nil {
			utils.Warn("failed to seed auction", map[string]any{"title": a.Title, "error": err.Error()})
		}
	}

	utils.Info("database seeded", map[string]any{"auctions": len(auctions)})
}

// getPort returns the server port from env or defaults to ":8080"
func getPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return fmt.Sprintf(":%s", p)
	}
	return ":8080"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
