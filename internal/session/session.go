// Package session issues the credentials that prove an authenticated account:
// a short-lived signed access token and a rotating opaque refresh token.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/paxinfy/backend/internal/config"
	"github.com/paxinfy/backend/internal/models"
	"github.com/paxinfy/backend/internal/store"
	"github.com/paxinfy/backend/internal/token"
)

type Session struct {
	AccessToken  string
	RefreshToken string
}

type Maker struct {
	cfg    *config.Config
	tokens store.RefreshTokenStore
}

func NewMaker(cfg *config.Config, tokens store.RefreshTokenStore) *Maker {
	return &Maker{cfg: cfg, tokens: tokens}
}

// Establish creates a session for the account: signs an access token carrying
// the account's identity and role, and persists a hashed refresh token.
func (m *Maker) Establish(user *models.User) (*Session, error) {
	accessToken, err := m.signAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := m.issueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &Session{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (m *Maker) signAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"email":    user.Email,
		"role":     user.Role,
		"verified": user.Verified,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(m.cfg.JWTAccessExpiry).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(m.cfg.JWTSecret))
}

func (m *Maker) issueRefreshToken(userID uuid.UUID) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: token.Hash(rawToken),
		ExpiresAt: time.Now().Add(m.cfg.JWTRefreshExpiry),
	}
	if err := m.tokens.Create(&record); err != nil {
		return "", err
	}

	return rawToken, nil
}
