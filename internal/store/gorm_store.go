package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paxinfy/backend/internal/models"
	"gorm.io/gorm"
)

// GormAccountStore implements AccountStore on GORM/Postgres.
type GormAccountStore struct {
	db *gorm.DB
}

func NewGormAccountStore(db *gorm.DB) *GormAccountStore {
	return &GormAccountStore{db: db}
}

func (s *GormAccountStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	return wrapNotFound(&user, err)
}

func (s *GormAccountStore) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "id = ?", id).Error
	return wrapNotFound(&user, err)
}

func (s *GormAccountStore) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	return wrapNotFound(&user, err)
}

func (s *GormAccountStore) FindByToken(tokenHash, purpose string, notExpiredBefore time.Time) (*models.User, error) {
	var user models.User
	err := s.db.
		Where("token_hash = ? AND token_purpose = ? AND token_expires_at > ?", tokenHash, purpose, notExpiredBefore).
		First(&user).Error
	return wrapNotFound(&user, err)
}

func (s *GormAccountStore) Create(user *models.User) error {
	if err := s.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *GormAccountStore) Update(id uuid.UUID, fields map[string]interface{}) (*models.User, error) {
	if len(fields) > 0 {
		if err := s.db.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}
	return s.FindByID(id)
}

func (s *GormAccountStore) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GormRefreshTokenStore implements RefreshTokenStore on GORM/Postgres.
type GormRefreshTokenStore struct {
	db *gorm.DB
}

func NewGormRefreshTokenStore(db *gorm.DB) *GormRefreshTokenStore {
	return &GormRefreshTokenStore{db: db}
}

func (s *GormRefreshTokenStore) Create(t *models.RefreshToken) error {
	if err := s.db.Create(t).Error; err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *GormRefreshTokenStore) FindByHash(tokenHash string) (*models.RefreshToken, error) {
	var t models.RefreshToken
	err := s.db.Where("token_hash = ?", tokenHash).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *GormRefreshTokenStore) Revoke(id uuid.UUID) error {
	return s.db.Model(&models.RefreshToken{}).Where("id = ?", id).Update("revoked", true).Error
}

func (s *GormRefreshTokenStore) RevokeByHash(tokenHash string) error {
	return s.db.Model(&models.RefreshToken{}).Where("token_hash = ?", tokenHash).Update("revoked", true).Error
}

func wrapNotFound(user *models.User, err error) (*models.User, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
