package service

import (
	"errors"

	"github.com/jmoroz/cookbook-backend/internal/app/model"
	"github.com/jmoroz/cookbook-backend/internal/app/repository"
	"github.com/jmoroz/cookbook-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrAlreadySubscribed = errors.New("already subscribed to this author")
	ErrNotSubscribed     = errors.New("not subscribed to this author")
	ErrSelfSubscription  = errors.New("cannot subscribe to yourself")
)

type UserService interface {
	GetUserByID(id uint) (*model.User, error)
	Subscribe(subscriberID, authorID uint) error
	Unsubscribe(subscriberID, authorID uint) error
	IsSubscribed(subscriberID, authorID uint) (bool, error)
	// ListSubscriptions returns the subscribed authors with their
	// recipes preloaded, newest recipes first.
	ListSubscriptions(subscriberID uint) ([]model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("User not found", map[string]interface{}{
				"user_id": id,
			})
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Subscribe(subscriberID, authorID uint) error {
	logger.Info("Subscribing to author", map[string]interface{}{
		"subscriber_id": subscriberID,
		"author_id":     authorID,
	})

	if subscriberID == authorID {
		return ErrSelfSubscription
	}

	subscriber, err := s.GetUserByID(subscriberID)
	if err != nil {
		return err
	}
	author, err := s.GetUserByID(authorID)
	if err != nil {
		return err
	}

	subscribed, err := s.userRepo.IsSubscribed(subscriberID, authorID)
	if err != nil {
		return err
	}
	if subscribed {
		logger.Warn("Already subscribed", map[string]interface{}{
			"subscriber_id": subscriberID,
			"author_id":     authorID,
		})
		return ErrAlreadySubscribed
	}

	if err := s.userRepo.AddSubscription(subscriber, author); err != nil {
		return err
	}

	logger.Info("Subscribed successfully", map[string]interface{}{
		"subscriber_id": subscriberID,
		"author_id":     authorID,
	})
	return nil
}

func (s *userService) Unsubscribe(subscriberID, authorID uint) error {
	logger.Info("Unsubscribing from author", map[string]interface{}{
		"subscriber_id": subscriberID,
		"author_id":     authorID,
	})

	subscriber, err := s.GetUserByID(subscriberID)
	if err != nil {
		return err
	}
	author, err := s.GetUserByID(authorID)
	if err != nil {
		return err
	}

	subscribed, err := s.userRepo.IsSubscribed(subscriberID, authorID)
	if err != nil {
		return err
	}
	if !subscribed {
		logger.Warn("Not subscribed", map[string]interface{}{
			"subscriber_id": subscriberID,
			"author_id":     authorID,
		})
		return ErrNotSubscribed
	}

	if err := s.userRepo.RemoveSubscription(subscriber, author); err != nil {
		return err
	}

	logger.Info("Unsubscribed successfully", map[string]interface{}{
		"subscriber_id": subscriberID,
		"author_id":     authorID,
	})
	return nil
}

func (s *userService) IsSubscribed(subscriberID, authorID uint) (bool, error) {
	return s.userRepo.IsSubscribed(subscriberID, authorID)
}

func (s *userService) ListSubscriptions(subscriberID uint) ([]model.User, error) {
	if _, err := s.GetUserByID(subscriberID); err != nil {
		return nil, err
	}

	authors, err := s.userRepo.FindSubscriptions(subscriberID)
	if err != nil {
		return nil, err
	}
	return authors, nil
}
