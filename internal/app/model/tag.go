package model

import "time"

// Tag labels recipes; the slug is the external filter key.
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"name"`
	Color     string    `gorm:"type:varchar(7)" json:"color"`
	Slug      string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Tag) TableName() string {
	return "tags"
}
