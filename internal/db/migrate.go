package db

import (
	"github.com/jmoroz/cookbook-backend/internal/app/model"
	"github.com/jmoroz/cookbook-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Ingredient{},
		&model.Tag{},
		&model.Recipe{},
		&model.RecipeIngredient{},
		&model.MarkedRecipes{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedTags(); err != nil {
		logger.Error("Failed to seed tags during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// seedTags creates the default recipe tags used by the frontend filters
func seedTags() error {
	var count int64
	if err := DB.Model(&model.Tag{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Tags already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding tag data...")

	tags := []model.Tag{
		{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
		{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
		{Name: "Dessert", Color: "#F9A62B", Slug: "dessert"},
		{Name: "Vegetarian", Color: "#3AA655", Slug: "vegetarian"},
	}

	for _, tag := range tags {
		if err := DB.Create(&tag).Error; err != nil {
			logger.Error("Failed to create tag", err, map[string]interface{}{
				"tag": tag.Name,
			})
			return err
		}
	}

	logger.Info("Tags seeded successfully", map[string]interface{}{
		"total_tags": len(tags),
	})
	return nil
}
