package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "homebook/internal/errors"
	"homebook/internal/models"
)

// userService handles user-related business logic.
type userService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, accountService AccountServicer) UserServicer {
	return &userService{db: db, accountService: accountService}
}

// Register creates a user together with its zero-balance account.
func (s *userService) Register(ctx context.Context, username, password string) (*models.User, *models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "username and password are required")
	}

	if len(password) > maxPasswordBytes {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "password must be at most 72 bytes")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Username: username,
		Password: string(hashedPassword),
		IsActive: true,
	}

	var account *models.Account
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicateUsername
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		var txErr error
		account, txErr = s.accountService.CreateAccount(tx, user.ID)
		return txErr
	})
	if err != nil {
		return nil, nil, err
	}

	return user, account, nil
}

// AttemptLogin verifies credentials and records the login time.
// Unknown users and wrong passwords yield the same error.
func (s *userService) AttemptLogin(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ? AND is_active = ?", strings.TrimSpace(username), true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&user).Update("last_login_at", now).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	user.LastLoginAt = &now

	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}
