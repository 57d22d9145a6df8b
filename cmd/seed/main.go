package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rajansharma08/lyftr-webhook-api/internal/config"
	"github.com/rajansharma08/lyftr-webhook-api/internal/db/gormdb"
	domain "github.com/rajansharma08/lyftr-webhook-api/internal/domain/message"
	mesgRepo "github.com/rajansharma08/lyftr-webhook-api/internal/repository/gorm/message"
)

func main() {
	ctx := context.Background()

	// Load application configuration (DB etc.) from env/.env.
	cfg := config.New()

	dsn := cfg.DB.Path
	if cfg.DB.Driver == "postgres" {
		dsn = cfg.PostgresDSN()
	}

	gormAdapter, err := gormdb.New(cfg.DB.Driver, dsn)
	if err != nil {
		log.Fatalf("[Seed] Failed to connect to database: %v", err)
	}

	log.Printf("[Seed] Connected to %s database", cfg.DB.Driver)

	repo := mesgRepo.NewRepository(gormAdapter)

	// 1) Make sure the messages table and its indexes exist.
	if err := repo.Init(ctx); err != nil {
		log.Fatalf("[Seed] Schema init failed: %v", err)
	}
	log.Println("[Seed] Messages table is up to date.")

	// 2) Primitive seeding: insert N random messages through the same
	// idempotent path the webhook uses.
	const seedCount = 50

	log.Printf("[Seed] Inserting %d random messages...", seedCount)

	created := 0
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < seedCount; i++ {
		text := randomText(i + 1)
		msg := &domain.Message{
			MessageID: uuid.NewString(),
			From:      randomPhone(),
			To:        randomPhone(),
			TS:        base.Add(time.Duration(i) * time.Minute).Format(time.RFC3339),
			Text:      &text,
		}

		outcome, err := repo.Insert(ctx, msg)
		if err != nil {
			log.Fatalf("[Seed] Failed to insert message #%d: %v", i+1, err)
		}
		if outcome == domain.Created {
			created++
		}
	}

	log.Printf("[Seed] Done. Inserted %d new messages into table 'messages'.", created)
}

// randomPhone generates a simple fake phone number in E.164 format.
// Example output: +919123456789
func randomPhone() string {
	base := "+919"
	n := rand.Intn(900000000) + 100000000 // 9 digits
	return fmt.Sprintf("%s%d", base, n)
}

// randomText generates a simple message body for seeding.
func randomText(i int) string {
	return fmt.Sprintf("Seed message #%d", i)
}
