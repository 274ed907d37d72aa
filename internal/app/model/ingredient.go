package model

import "time"

// Ingredient is immutable reference data loaded from the catalog CSV.
// Entries that differ only in casing or spacing are distinct on purpose.
type Ingredient struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	Name            string    `gorm:"type:varchar(200);not null;index" json:"name"`
	MeasurementUnit string    `gorm:"type:varchar(200);not null" json:"measurement_unit"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
