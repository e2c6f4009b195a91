// Package main provides a tool to load demo content into a workspace database.
//
// It opens the store directly, enables the demo seed flag for the duration of
// the run, and inserts the demo items, tasks and templates. Useful for local
// development and screenshots without going through the admin console.
//
// Usage:
//
//	DATA_PATH=~/marketingkreis/data go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/jobs"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/service"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/store"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/marketingkreis/data")
	}
	dbPath := filepath.Join(dataPath, "badger")

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil, store.NewNoopEmitter())
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	// The seed service refuses to run with the flag off, so remember the
	// previous state and restore it afterwards.
	wasEnabled := s.FlagEnabled(ctx, domain.FlagDemoSeed)
	if !wasEnabled {
		if _, err := s.SetFlag(ctx, domain.FlagDemoSeed, true); err != nil {
			log.Fatalf("Failed to enable demo seed flag: %v", err)
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	registry := jobs.NewRegistry(logger)
	seeder := service.NewSeedService(s, registry, store.NewNoopEmitter(), logger)

	result, err := seeder.Seed(ctx)

	if !wasEnabled {
		if _, restoreErr := s.SetFlag(ctx, domain.FlagDemoSeed, false); restoreErr != nil {
			log.Printf("Failed to restore demo seed flag: %v", restoreErr)
		}
	}

	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	fmt.Printf("Seeded %d items, %d tasks, %d templates\n", result.Items, result.Tasks, result.Templates)
	fmt.Println("Seeding complete!")
}
