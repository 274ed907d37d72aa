package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	FirstName    string         `gorm:"not null" json:"first_name"`
	LastName     string         `gorm:"not null" json:"last_name"`
	Role         UserRole       `gorm:"type:varchar(20);default:'user'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Authors this user follows. Not symmetrical.
	Subscriptions []User   `gorm:"many2many:user_subscriptions;joinForeignKey:SubscriberID;joinReferences:AuthorID" json:"-"`
	Recipes       []Recipe `gorm:"foreignKey:AuthorID" json:"recipes,omitempty"`
}

func (User) TableName() string {
	return "users"
}
