package session_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/paxinfy/backend/internal/config"
	"github.com/paxinfy/backend/internal/models"
	"github.com/paxinfy/backend/internal/session"
	"github.com/paxinfy/backend/internal/store"
	"github.com/paxinfy/backend/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTokenStore struct {
	created []*models.RefreshToken
}

func (r *recordingTokenStore) Create(t *models.RefreshToken) error {
	r.created = append(r.created, t)
	return nil
}

func (r *recordingTokenStore) FindByHash(string) (*models.RefreshToken, error) {
	return nil, store.ErrNotFound
}

func (r *recordingTokenStore) Revoke(uuid.UUID) error    { return nil }
func (r *recordingTokenStore) RevokeByHash(string) error { return nil }

func TestEstablish(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
	}
	tokens := &recordingTokenStore{}
	maker := session.NewMaker(cfg, tokens)

	user := &models.User{
		ID:       uuid.New(),
		Email:    "ada@example.com",
		Role:     "admin",
		Verified: true,
	}

	sess, err := maker.Establish(user)
	require.NoError(t, err)
	require.NotEmpty(t, sess.AccessToken)
	require.NotEmpty(t, sess.RefreshToken)

	parsed, err := jwt.Parse(sess.AccessToken, func(_ *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, "ada@example.com", claims["email"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, true, claims["verified"])

	// refresh token is persisted hashed, never raw
	require.Len(t, tokens.created, 1)
	record := tokens.created[0]
	assert.Equal(t, user.ID, record.UserID)
	assert.NotEqual(t, sess.RefreshToken, record.TokenHash)
	assert.Equal(t, token.Hash(sess.RefreshToken), record.TokenHash)
	assert.WithinDuration(t, time.Now().Add(time.Hour), record.ExpiresAt, 5*time.Second)
}

func TestEstablishTokensDiffer(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s", JWTAccessExpiry: time.Minute, JWTRefreshExpiry: time.Hour}
	maker := session.NewMaker(cfg, &recordingTokenStore{})
	user := &models.User{ID: uuid.New(), Email: "a@b.c", Role: "user"}

	first, err := maker.Establish(user)
	require.NoError(t, err)
	second, err := maker.Establish(user)
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
}
