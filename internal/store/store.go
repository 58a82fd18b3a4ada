// Package store is the persistence boundary for accounts and refresh tokens.
// The database, not the callers, serializes concurrent writes per row; code
// above this interface must not assume a read and a later write are atomic.
package store

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/paxinfy/backend/internal/models"
)

var ErrNotFound = errors.New("record not found")

// AccountStore is the durable record of user accounts. Find methods return
// ErrNotFound for absent rows. Update applies a partial merge: only the
// columns named in fields are written.
type AccountStore interface {
	FindByEmail(email string) (*models.User, error)
	FindByID(id uuid.UUID) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	// FindByToken matches the stored token hash and purpose, restricted to
	// tokens expiring strictly after notExpiredBefore.
	FindByToken(tokenHash, purpose string, notExpiredBefore time.Time) (*models.User, error)
	Create(user *models.User) error
	Update(id uuid.UUID, fields map[string]interface{}) (*models.User, error)
	List() ([]models.User, error)
}

// RefreshTokenStore persists hashed session refresh tokens.
type RefreshTokenStore interface {
	Create(token *models.RefreshToken) error
	FindByHash(tokenHash string) (*models.RefreshToken, error)
	Revoke(id uuid.UUID) error
	RevokeByHash(tokenHash string) error
}
