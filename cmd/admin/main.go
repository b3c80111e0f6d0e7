// Command admin runs budget alert digests outside the scheduler, for manual
// operations and debugging. With -dry-run it prints the digest instead of
// sending a push notification.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/domain/budget"
	"fintrack/internal/domain/metrics"
	"fintrack/internal/infrastructure/firebase"
	"fintrack/internal/infrastructure/postgres"
	"fintrack/internal/scheduler"
	"fintrack/internal/shared/config"
)

// stdoutMessenger satisfies scheduler.Messenger for dry runs.
type stdoutMessenger struct{}

func (stdoutMessenger) Send(_ context.Context, token, title, body string) error {
	fmt.Printf("would send to %s: %s / %s\n", token, title, body)
	return nil
}

func main() {
	userID := flag.Int64("user", 0, "run the digest for a single user ID")
	all := flag.Bool("all", false, "run the digest for every registered user")
	dryRun := flag.Bool("dry-run", false, "print digests instead of sending push notifications")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	if *userID == 0 && !*all {
		log.Fatal("Specify -user <id> or -all")
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	userRepo := postgres.NewUserRepository(db)
	budgetRepo := postgres.NewBudgetRepository(db)
	reader := postgres.NewLedgerReader(db)
	evaluator := budget.NewEvaluator(budgetRepo, metrics.NewAggregator(reader), reader)

	var messenger scheduler.Messenger
	if *dryRun {
		messenger = stdoutMessenger{}
	} else {
		if cfg.Firebase.CredentialsFile == "" {
			log.Fatal("FIREBASE_CREDENTIALS_FILE is required unless -dry-run is set")
		}
		fcm, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, nil)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase client: %v", err)
		}
		messenger = fcm
	}

	ids := []int64{*userID}
	if *all {
		ids, err = userRepo.ListIDs(ctx)
		if err != nil {
			log.Fatalf("Failed to list users: %v", err)
		}
	}

	var failures int
	for _, id := range ids {
		job := scheduler.NewAlertDigestJob(id, evaluator, userRepo, messenger)
		if err := job.Execute(ctx); err != nil {
			failures++
			log.Printf("Digest for user %d failed: %v", id, err)
		}
	}

	log.Printf("Digest run complete: %d users, %d failures", len(ids), failures)
	if failures > 0 {
		log.Fatal("Some digests failed")
	}
}
