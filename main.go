package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/coniugatore/internal/bot"
	"github.com/example/coniugatore/internal/conjugation"
	"github.com/example/coniugatore/internal/scheduler"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local runs
	_ = godotenv.Load()

	config, err := bot.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// The reference table is loaded once; a missing or malformed file is
	// fatal to startup.
	table, err := conjugation.Load(config.DataFile)
	if err != nil {
		log.Fatalf("Failed to load conjugation table from %s: %v", config.DataFile, err)
	}
	log.Printf("Loaded %d conjugation rows from %s", len(table.Rows), config.DataFile)

	b, err := bot.New(config, table)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	if os.Getenv("ENABLE_SCHEDULER") != "false" {
		sched := scheduler.New(b)
		sched.Start()
		defer sched.Stop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		cancel()
	}()

	log.Println("Conjugation trainer started. Press Ctrl+C to stop.")
	if err := b.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Bot error: %v", err)
	}
	log.Println("Stopped")
}
