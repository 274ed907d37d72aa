package service

import (
	"context"
	"errors"

	"github.com/jmoroz/cookbook-backend/config"
	"github.com/jmoroz/cookbook-backend/internal/app/model"
	"github.com/jmoroz/cookbook-backend/internal/app/repository"
	"github.com/jmoroz/cookbook-backend/pkg/logger"
	"github.com/jmoroz/cookbook-backend/pkg/redis"
	"github.com/jmoroz/cookbook-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUsernameTaken      = errors.New("username is already taken")
)

type RegisterInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
}

type ProfileUpdateInput struct {
	Username  string
	FirstName string
	LastName  string
}

type AuthService interface {
	Register(input RegisterInput) (*model.User, error)
	Login(email, password string) (string, *model.User, error)
	Logout(ctx context.Context, token string) error
	GetProfile(userID uint) (*model.User, error)
	UpdateProfile(userID uint, input ProfileUpdateInput) (*model.User, error)
	ChangePassword(userID uint, currentPassword, newPassword string) error
}

type authService struct {
	userRepo repository.UserRepository
	jwtCfg   config.JWTConfig
}

func NewAuthService(userRepo repository.UserRepository, jwtCfg config.JWTConfig) AuthService {
	return &authService{userRepo: userRepo, jwtCfg: jwtCfg}
}

func (s *authService) Register(input RegisterInput) (*model.User, error) {
	logger.Info("Registering user", map[string]interface{}{
		"email":    input.Email,
		"username": input.Username,
	})

	if input.Email == "" {
		return nil, NewValidationError("email must not be empty")
	}
	if input.Username == "" {
		return nil, NewValidationError("username must not be empty")
	}
	if len(input.Password) < 8 {
		return nil, NewValidationError("password must be at least 8 characters")
	}

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, nil)
		return nil, err
	}

	user := &model.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         model.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}

func (s *authService) Login(email, password string) (string, *model.User, error) {
	logger.Info("User login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: password mismatch", map[string]interface{}{
			"email": email,
		})
		return "", nil, ErrInvalidCredentials
	}

	token, err := util.GenerateToken(user.ID, user.Email, string(user.Role), s.jwtCfg.Secret, s.jwtCfg.AccessTokenExpiry)
	if err != nil {
		logger.Error("Failed to generate token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return "", nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
	})
	return token, user, nil
}

// Logout blacklists the token for its remaining lifetime, so the
// blacklist entry expires together with the token itself.
func (s *authService) Logout(ctx context.Context, token string) error {
	return redis.BlacklistToken(ctx, token, s.jwtCfg.AccessTokenExpiry)
}

func (s *authService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(userID uint, input ProfileUpdateInput) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("Profile updated successfully", map[string]interface{}{
		"user_id": userID,
	})
	return user, nil
}

func (s *authService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.GetProfile(userID)
	if err != nil {
		return err
	}

	if !util.VerifyPassword(user.PasswordHash, currentPassword) {
		return ErrInvalidCredentials
	}
	if len(newPassword) < 8 {
		return NewValidationError("password must be at least 8 characters")
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		logger.Error("Failed to hash password", err, nil)
		return err
	}

	user.PasswordHash = hash
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	logger.Info("Password changed successfully", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}
