package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travelapp/internal/config"
	"travelapp/internal/database"
	"travelapp/internal/repository"
	"travelapp/internal/seed"
)

func main() {
	clearFirst := flag.Bool("clear", false, "delete existing users, listings, bookings and reviews before seeding (superusers are kept)")
	flag.Parse()

	if err := run(*clearFirst); err != nil {
		log.Printf("seed failed: %v", err)
		os.Exit(1)
	}
}

func run(clearFirst bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg.DatabaseURL, cfg.LogLevel())
	if err != nil {
		return err
	}
	defer database.Close(db)

	log.Println("Running AutoMigrate...")
	if err := repository.Migrate(db); err != nil {
		return err
	}

	src := cfg.SeedRandom
	if src == 0 {
		src = time.Now().UnixNano()
	}
	log.Printf("seed: start clear=%t random_seed=%d", clearFirst, src)

	seeder := seed.New(repository.NewStore(db), seed.DefaultConfig(), rand.New(rand.NewSource(src)))
	sum, err := seeder.Run(ctx, seed.Options{Clear: clearFirst})
	if err != nil {
		return err
	}

	log.Printf("seed: done cleared=%t users=%d users_created=%d listings=%d bookings=%d reviews=%d skipped_pairs=%d",
		sum.Cleared, sum.Users, sum.UsersCreated, sum.Listings, sum.Bookings, sum.Reviews, sum.SkippedPairs)
	return nil
}
