// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/lotto-hub/models"
)

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := NewID()
		if err != nil {
			t.Fatalf("NewID() error = %v", err)
		}
		if len(id) != 36 {
			t.Fatalf("NewID() length = %d, want 36", len(id))
		}
		if seen[id] {
			t.Fatalf("NewID() produced duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestIssueAndParseToken(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	secret := "test-secret"

	token, err := IssueToken("alice", models.RoleSeller, time.Hour, secret, now)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if strings.Contains(token, "=") {
		t.Error("IssueToken() contains padding characters")
	}

	claims, err := ParseToken(token, secret, now.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UID != "alice" || claims.Role != models.RoleSeller {
		t.Errorf("ParseToken() claims = %+v", claims)
	}
	if !claims.HasRole(models.RoleAdmin, models.RoleSeller) {
		t.Error("HasRole() should accept seller")
	}
	if claims.HasRole(models.RoleAdmin) {
		t.Error("HasRole() should reject admin-only")
	}
}

func TestParseTokenErrors(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	secret := "test-secret"
	valid, _ := IssueToken("bob", models.RoleAdmin, time.Hour, secret, now)

	tests := []struct {
		name    string
		token   string
		secret  string
		at      time.Time
		wantErr error
	}{
		{"empty", "", secret, now, ErrMissingToken},
		{"no separator", "abc", secret, now, ErrInvalidToken},
		{"wrong secret", valid, "other", now, ErrInvalidToken},
		{"tampered body", "x" + valid, secret, now, ErrInvalidToken},
		{"expired", valid, secret, now.Add(2 * time.Hour), ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.token, tt.secret, tt.at)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseToken() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIssueTokenRejectsUnknownRole(t *testing.T) {
	_, err := IssueToken("carol", "superuser", time.Hour, "s", time.Now())
	if !errors.Is(err, ErrInvalidRole) {
		t.Errorf("IssueToken() error = %v, want %v", err, ErrInvalidRole)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def", "abc.def"},
		{"bearer abc.def ", "abc.def"},
		{"Basic abc", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := BearerToken(tt.header); got != tt.want {
			t.Errorf("BearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
