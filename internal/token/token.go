// Package token issues the opaque, time-limited tokens mailed to users for
// email verification and password reset.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"
)

type Issuer struct {
	ttl time.Duration
}

func NewIssuer(ttl time.Duration) *Issuer {
	return &Issuer{ttl: ttl}
}

// Issue returns a fresh token: the raw form goes into the mailed link, the
// sha256 hex form is what gets persisted. Expiry is a fixed window ahead.
func (i *Issuer) Issue() (raw, hash string, expiresAt time.Time, err error) {
	rawBytes := make([]byte, 32)
	if _, err = rand.Read(rawBytes); err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to generate random bytes: %w", err)
	}

	raw = base64.URLEncoding.EncodeToString(rawBytes)
	return raw, Hash(raw), time.Now().Add(i.ttl), nil
}

// Hash returns the sha256 hex digest of a raw token, the at-rest form.
func Hash(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", h)
}
