package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jmoroz/cookbook-backend/config"
	"github.com/jmoroz/cookbook-backend/internal/db"
)

// Loads the ingredient catalog from a CSV file of "name,unit" rows.
// Usage: go run cmd/seed/main.go data/ingredients.csv
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <csv_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Loading ingredients from: %s\n", filePath)
	count, err := db.LoadIngredientsCSV(db.GetDB(), filePath)
	if err != nil {
		log.Fatal("Failed to load ingredients:", err)
	}

	fmt.Printf("Done. %d ingredients loaded.\n", count)
}
