package main

import (
	"encoding/json/v2"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/marketingkreis/data")
	}
	dbPath := filepath.Join(dataPath, "badger")

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	itemCount := 0
	byStatus := make(map[domain.Status]int)
	byChannel := make(map[string]int)
	deleted := 0

	err = db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = []byte("item:")
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek([]byte("item:")); it.ValidForPrefix([]byte("item:")); it.Next() {
			entry := it.Item()
			key := string(entry.Key())

			// Skip index keys (item:idx:owner:..., item:idx:status:...)
			if strings.HasPrefix(key, "item:idx:") {
				continue
			}

			err := entry.Value(func(val []byte) error {
				var item domain.ContentItem
				if err := json.Unmarshal(val, &item); err != nil {
					return err
				}

				if item.DeletedAt != nil {
					deleted++
					return nil
				}

				itemCount++
				byStatus[item.Status]++
				if item.Channel != "" {
					byChannel[item.Channel]++
				}

				// Show the first few items for spot checks
				if itemCount <= 5 {
					fmt.Printf("Item: %s\n", item.Title)
					fmt.Printf("  ID: %s\n", item.ID)
					fmt.Printf("  Status: %s\n", item.Status)
					fmt.Printf("  Channel: %s, Format: %s\n", item.Channel, item.Format)
					if item.OwnerID != "" {
						fmt.Printf("  Owner: %s\n", item.OwnerID)
					}
					if item.ScheduledAt != nil {
						fmt.Printf("  Scheduled: %s\n", item.ScheduledAt.Format("2006-01-02"))
					}
					fmt.Println()
				}

				return nil
			})
			if err != nil {
				log.Printf("Error reading item %s: %v", key, err)
			}
		}
		return nil
	})

	if err != nil {
		log.Fatalf("Error iterating database: %v", err)
	}

	fmt.Println("=== Summary ===")
	fmt.Printf("Total items: %d (plus %d soft-deleted)\n", itemCount, deleted)
	fmt.Println("By status:")
	for status, count := range byStatus {
		fmt.Printf("  %s: %d\n", status, count)
	}
	fmt.Println("By channel:")
	for channel, count := range byChannel {
		fmt.Printf("  %s: %d\n", channel, count)
	}
}
