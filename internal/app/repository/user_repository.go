package repository

import (
	"github.com/jmoroz/cookbook-backend/internal/app/model"
	"github.com/jmoroz/cookbook-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Update(user *model.User) error
	AddSubscription(subscriber *model.User, author *model.User) error
	RemoveSubscription(subscriber *model.User, author *model.User) error
	IsSubscribed(subscriberID, authorID uint) (bool, error)
	FindSubscriptions(subscriberID uint) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": user.Email,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		logger.Error("Failed to find user by ID in database", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		logger.Error("Failed to find user by email in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *model.User) error {
	if err := r.db.Save(user).Error; err != nil {
		logger.Error("Failed to update user in database", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}
	return nil
}

func (r *userRepository) AddSubscription(subscriber *model.User, author *model.User) error {
	if err := r.db.Model(subscriber).Association("Subscriptions").Append(author); err != nil {
		logger.Error("Failed to add subscription in database", err, map[string]interface{}{
			"subscriber_id": subscriber.ID,
			"author_id":     author.ID,
		})
		return err
	}
	return nil
}

func (r *userRepository) RemoveSubscription(subscriber *model.User, author *model.User) error {
	if err := r.db.Model(subscriber).Association("Subscriptions").Delete(author); err != nil {
		logger.Error("Failed to remove subscription in database", err, map[string]interface{}{
			"subscriber_id": subscriber.ID,
			"author_id":     author.ID,
		})
		return err
	}
	return nil
}

func (r *userRepository) IsSubscribed(subscriberID, authorID uint) (bool, error) {
	var count int64
	err := r.db.Table("user_subscriptions").
		Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check subscription in database", err, map[string]interface{}{
			"subscriber_id": subscriberID,
			"author_id":     authorID,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) FindSubscriptions(subscriberID uint) ([]model.User, error) {
	subscriber := model.User{ID: subscriberID}

	var authors []model.User
	err := r.db.Model(&subscriber).
		Preload("Recipes", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipes.created_at DESC")
		}).
		Association("Subscriptions").Find(&authors)
	if err != nil {
		logger.Error("Failed to list subscriptions from database", err, map[string]interface{}{
			"subscriber_id": subscriberID,
		})
		return nil, err
	}
	return authors, nil
}
