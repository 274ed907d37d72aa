package model

import (
	"time"

	"gorm.io/gorm"
)

type Recipe struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	AuthorID    uint           `gorm:"not null;index" json:"author_id"`
	Name        string         `gorm:"type:varchar(200);not null" json:"name"`
	Image       string         `json:"image"`
	Text        string         `gorm:"type:text" json:"text"`
	CookingTime int            `gorm:"not null" json:"cooking_time"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Author User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Tags   []Tag `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags,omitempty"`

	// Ingredient associations are owned by the recipe and replaced
	// wholesale on update, never patched row by row.
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient binds one recipe to one ingredient with an amount.
type RecipeIngredient struct {
	ID           uint `gorm:"primarykey" json:"-"`
	RecipeID     uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"-"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Amount       int  `gorm:"not null;check:amount > 0" json:"amount"`

	Ingredient Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"ingredient,omitempty"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
