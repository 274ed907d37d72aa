package db

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/jmoroz/cookbook-backend/internal/app/model"
	"github.com/jmoroz/cookbook-backend/pkg/logger"
	"gorm.io/gorm"
)

// LoadIngredientsCSV loads the ingredient catalog from a CSV file of
// "name,measurement_unit" rows. The load is skipped when the table
// already has data, so it is safe to run on every deploy. Returns the
// number of rows inserted.
func LoadIngredientsCSV(db *gorm.DB, path string) (int, error) {
	var count int64
	if err := db.Model(&model.Ingredient{}).Count(&count).Error; err != nil {
		return 0, err
	}

	if count > 0 {
		logger.Info("Ingredients already loaded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return 0, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open ingredients file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to read ingredients file: %w", err)
	}

	ingredients := make([]model.Ingredient, 0, len(records))
	for _, record := range records {
		if len(record) < 2 {
			logger.Warn("Skipping malformed ingredient row", map[string]interface{}{
				"row": record,
			})
			continue
		}
		ingredients = append(ingredients, model.Ingredient{
			Name:            record[0],
			MeasurementUnit: record[1],
		})
	}

	if len(ingredients) == 0 {
		logger.Warn("No ingredients found in file", map[string]interface{}{
			"path": path,
		})
		return 0, nil
	}

	if err := db.CreateInBatches(ingredients, 500).Error; err != nil {
		logger.Error("Failed to insert ingredients", err, map[string]interface{}{
			"path": path,
		})
		return 0, err
	}

	logger.Info("Ingredients loaded successfully", map[string]interface{}{
		"count": len(ingredients),
		"path":  path,
	})
	return len(ingredients), nil
}
