// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/lotto-hub/models"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrForbidden    = errors.New("insufficient role")
	ErrInvalidRole  = errors.New("invalid role")
)

// Claims are the signed contents of a bearer token.
type Claims struct {
	UID       string `json:"uid"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"exp"`
}

// HasRole reports whether the claims carry one of the given roles.
func (c Claims) HasRole(roles ...string) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

// NewID creates a time-ordered UUIDv7 string. The random tail keeps ids
// unique even when several are created within the same millisecond.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

// ValidRole reports whether role is one the service knows about.
func ValidRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleSeller
}

// IssueToken creates a signed bearer token for uid with the given role.
// Format: base64url(claims JSON) "." base64url(HMAC-SHA256)
func IssueToken(uid, role string, ttl time.Duration, secret string, now time.Time) (string, error) {
	if uid == "" {
		return "", fmt.Errorf("%w: uid is required", ErrInvalidToken)
	}
	if !ValidRole(role) {
		return "", ErrInvalidRole
	}
	if secret == "" {
		return "", errors.New("token secret is required")
	}

	payload, err := json.Marshal(Claims{UID: uid, Role: role, ExpiresAt: now.Add(ttl).Unix()})
	if err != nil {
		return "", fmt.Errorf("failed to encode claims: %w", err)
	}

	body := encode(payload)
	return body + "." + sign(body, secret), nil
}

// ParseToken verifies the signature and expiry of a bearer token and
// returns its claims.
func ParseToken(token, secret string, now time.Time) (Claims, error) {
	if token == "" {
		return Claims{}, ErrMissingToken
	}

	body, sig, ok := strings.Cut(token, ".")
	if !ok || body == "" || sig == "" {
		return Claims{}, ErrInvalidToken
	}

	expected := sign(body, secret)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return Claims{}, ErrInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if claims.UID == "" || !ValidRole(claims.Role) {
		return Claims{}, ErrInvalidToken
	}
	if now.Unix() >= claims.ExpiresAt {
		return Claims{}, ErrTokenExpired
	}

	return claims, nil
}

// BearerToken extracts the token from an "Authorization: Bearer ..." value
func BearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func sign(body, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(body))
	return encode(h.Sum(nil))
}

func encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}
