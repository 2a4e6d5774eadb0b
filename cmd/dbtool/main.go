package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"itinerary-remediation-service/internal/adapters/repositories"
	"itinerary-remediation-service/internal/config"
	"itinerary-remediation-service/internal/platform/db"
	"itinerary-remediation-service/internal/platform/logger"
)

// dbtool prepares the optional Postgres store: "init" creates the schema,
// "seed" also loads itineraries from SEED_PATH (or -seed).
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found (using environment variables)")
	}

	seedPath := flag.String("seed", config.Get("SEED_PATH", "data/seeds/itineraries.json"), "itinerary JSON file for the seed command")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: dbtool [-seed FILE] init|seed")
		flag.PrintDefaults()
	}
	flag.Parse()

	log, err := logger.New(config.Get("LOG_MODE", "dev"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, flag.Arg(0), *seedPath, log); err != nil {
		log.Error("dbtool failed", "err", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, command, seedPath string, log *logger.Logger) error {
	if command != "init" && command != "seed" {
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := initSchema(ctx, conn, log); err != nil {
		return err
	}
	if command == "seed" {
		return seed(ctx, conn, seedPath, log)
	}
	return nil
}

func initSchema(ctx context.Context, conn *sql.DB, log *logger.Logger) error {
	log.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Info("schema ready")
	return nil
}

func seed(ctx context.Context, conn *sql.DB, seedPath string, log *logger.Logger) error {
	log.Info("seeding database", "path", seedPath)
	n, err := repositories.SeedFromJSON(ctx, conn, seedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Info("seeding complete", "itineraries", n)
	return nil
}
