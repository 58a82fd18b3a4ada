package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paxinfy/backend/internal/config"
	"github.com/paxinfy/backend/internal/dto"
	"github.com/paxinfy/backend/internal/mailer"
	"github.com/paxinfy/backend/internal/models"
	"github.com/paxinfy/backend/internal/password"
	"github.com/paxinfy/backend/internal/session"
	"github.com/paxinfy/backend/internal/store"
	"github.com/paxinfy/backend/internal/token"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("incorrect login information")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

// AccountService orchestrates the account lifecycle: signup, login, email
// verification, password reset and profile updates. It owns no state of its
// own; the account store is the single source of truth.
type AccountService struct {
	accounts store.AccountStore
	refresh  store.RefreshTokenStore
	hasher   *password.Hasher
	issuer   *token.Issuer
	sessions *session.Maker
	notifier mailer.Notifier
	cfg      *config.Config
}

func NewAccountService(
	accounts store.AccountStore,
	refresh store.RefreshTokenStore,
	hasher *password.Hasher,
	issuer *token.Issuer,
	sessions *session.Maker,
	notifier mailer.Notifier,
	cfg *config.Config,
) *AccountService {
	return &AccountService{
		accounts: accounts,
		refresh:  refresh,
		hasher:   hasher,
		issuer:   issuer,
		sessions: sessions,
		notifier: notifier,
		cfg:      cfg,
	}
}

// Signup creates an unverified account, mails a verification link and
// establishes a session. Mail delivery is best-effort: a failed send is
// logged, never surfaced.
func (s *AccountService) Signup(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || len(req.Password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	if _, err := s.accounts.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	raw, tokenHash, expiresAt, err := s.issuer.Issue()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:             uuid.New(),
		Email:          email,
		Password:       hash,
		Role:           "user",
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		EmailNotify:    true,
		InAppNotify:    true,
		TokenHash:      &tokenHash,
		TokenPurpose:   models.TokenPurposeVerify,
		TokenExpiresAt: &expiresAt,
	}
	if err := s.accounts.Create(user); err != nil {
		return nil, err
	}

	s.sendVerificationMail(user, raw)

	return s.establish(user)
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AccountService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.accounts.FindByEmail(normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.establish(user)
}

// UpdateProfile merges the provided fields over the stored profile. Empty
// values mean "not provided" and never clear a stored field.
func (s *AccountService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.accounts.FindByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Username != "" {
		existing, err := s.accounts.FindByUsername(req.Username)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, ErrUsernameTaken
		}
	}

	fields := map[string]interface{}{}
	if req.FirstName != "" {
		fields["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		fields["last_name"] = req.LastName
	}
	if req.Username != "" {
		fields["username"] = req.Username
	}
	if req.Bio != "" {
		fields["bio"] = req.Bio
	}
	if req.ProfilePic != "" {
		fields["profile_pic"] = req.ProfilePic
	}
	if req.EmailNotify != nil {
		fields["email_notify"] = *req.EmailNotify
	}
	if req.InAppNotify != nil {
		fields["in_app_notify"] = *req.InAppNotify
	}

	updated, err := s.accounts.Update(user.ID, fields)
	if err != nil {
		return nil, err
	}

	resp := userResponse(updated)
	return &resp, nil
}

// RequestPasswordReset issues a reset token, overwriting any pending one,
// and mails the reset link.
func (s *AccountService) RequestPasswordReset(email string) error {
	user, err := s.accounts.FindByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	raw, tokenHash, expiresAt, err := s.issuer.Issue()
	if err != nil {
		return err
	}

	if _, err := s.accounts.Update(user.ID, map[string]interface{}{
		"token_hash":       tokenHash,
		"token_purpose":    models.TokenPurposeReset,
		"token_expires_at": expiresAt,
	}); err != nil {
		return err
	}

	s.send(user, "Reset your Paxinfy password",
		fmt.Sprintf("Hi, %s!", user.FirstName),
		"We received a request to reset your password. Click the button below to choose a new one. If you didn't ask for this, you can ignore this email.",
		&mailer.CallToAction{
			Text: "Reset Password",
			Link: s.cfg.AppURL + "/reset-password?token=" + raw,
		})

	return nil
}

// ConsumePasswordReset replaces the password of the account holding a live
// reset token. Unknown and expired tokens are indistinguishable. The token
// is cleared in the same write that stores the new password.
func (s *AccountService) ConsumePasswordReset(rawToken, newPassword string) error {
	if len(newPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	user, err := s.accounts.FindByToken(token.Hash(rawToken), models.TokenPurposeReset, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	_, err = s.accounts.Update(user.ID, map[string]interface{}{
		"password":         hash,
		"token_hash":       nil,
		"token_purpose":    "",
		"token_expires_at": nil,
	})
	return err
}

// ConfirmEmail consumes a live verification token for the given account and
// marks it verified.
func (s *AccountService) ConfirmEmail(rawToken string, userID uuid.UUID) error {
	user, err := s.accounts.FindByToken(token.Hash(rawToken), models.TokenPurposeVerify, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	if user.ID != userID {
		return ErrInvalidToken
	}

	_, err = s.accounts.Update(user.ID, map[string]interface{}{
		"verified":         true,
		"token_hash":       nil,
		"token_purpose":    "",
		"token_expires_at": nil,
	})
	return err
}

// ResendVerification re-issues the verification token and re-sends the link
// without consuming anything.
func (s *AccountService) ResendVerification(userID uuid.UUID) error {
	user, err := s.accounts.FindByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	raw, tokenHash, expiresAt, err := s.issuer.Issue()
	if err != nil {
		return err
	}

	if _, err := s.accounts.Update(user.ID, map[string]interface{}{
		"token_hash":       tokenHash,
		"token_purpose":    models.TokenPurposeVerify,
		"token_expires_at": expiresAt,
	}); err != nil {
		return err
	}

	s.sendVerificationMail(user, raw)
	return nil
}

// Refresh rotates a refresh token and returns a new session pair.
func (s *AccountService) Refresh(rawToken string) (*dto.AuthResponse, error) {
	stored, err := s.refresh.FindByHash(token.Hash(rawToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if stored.Revoked {
		return nil, ErrInvalidToken
	}
	if time.Now().After(stored.ExpiresAt) {
		if err := s.refresh.Revoke(stored.ID); err != nil {
			slog.Error("failed to revoke expired refresh token", "error", err)
		}
		return nil, ErrInvalidToken
	}

	if err := s.refresh.Revoke(stored.ID); err != nil {
		return nil, err
	}

	user, err := s.accounts.FindByID(stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.establish(user)
}

// Logout revokes the presented refresh token.
func (s *AccountService) Logout(rawToken string) error {
	return s.refresh.RevokeByHash(token.Hash(rawToken))
}

// CurrentUser returns the sanitized profile for an account.
func (s *AccountService) CurrentUser(userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.accounts.FindByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := userResponse(user)
	return &resp, nil
}

// ListUsers returns all accounts, newest first. Admin panel only.
func (s *AccountService) ListUsers() ([]dto.UserResponse, error) {
	users, err := s.accounts.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userResponse(&users[i]))
	}
	return out, nil
}

func (s *AccountService) establish(user *models.User) (*dto.AuthResponse, error) {
	sess, err := s.sessions.Establish(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		User:         userResponse(user),
	}, nil
}

func (s *AccountService) sendVerificationMail(user *models.User, rawToken string) {
	s.send(user, "Welcome to Paxinfy",
		fmt.Sprintf("Hi, %s!", user.FirstName),
		"We are excited to get you started. First, you have to verify your account. Just click on the button below.",
		&mailer.CallToAction{
			Text: "Verify Email",
			Link: s.cfg.AppURL + "/api/auth/confirm-email?token=" + rawToken + "&id=" + user.ID.String(),
		})
}

func (s *AccountService) send(user *models.User, subject, header, body string, cta *mailer.CallToAction) {
	if err := s.notifier.Send(user.Email, subject, header, body, cta); err != nil {
		slog.Error("failed to send mail", "user_id", user.ID.String(), "subject", subject, "error", err)
	}
}

func userResponse(user *models.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Bio:         user.Bio,
		ProfilePic:  user.ProfilePic,
		Role:        user.Role,
		Verified:    user.Verified,
		EmailNotify: user.EmailNotify,
		InAppNotify: user.InAppNotify,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
	if user.Username != nil {
		resp.Username = *user.Username
	}
	return resp
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
