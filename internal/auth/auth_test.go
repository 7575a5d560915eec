package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rafi0167/Bank-App/internal/auth"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash equals the plaintext password")
	}

	if !auth.CheckPassword(hash, "correct horse battery staple") {
		t.Error("correct password rejected")
	}
	if auth.CheckPassword(hash, "wrong password") {
		t.Error("wrong password accepted")
	}
}

func TestTokenIssueAndVerify(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	userID := uuid.New()

	token, err := issuer.Issue(userID)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	got, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if got != userID {
		t.Errorf("subject = %s, want %s", got, userID)
	}
}

func TestTokenVerify_Invalid(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name:  "garbage",
			token: func(t *testing.T) string { return "not.a.token" },
		},
		{
			name: "wrong key",
			token: func(t *testing.T) string {
				other := auth.NewTokenIssuer("different-secret", time.Hour)
				token, err := other.Issue(uuid.New())
				if err != nil {
					t.Fatalf("Issue failed: %v", err)
				}
				return token
			},
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				expired := auth.NewTokenIssuer("test-secret", -time.Minute)
				token, err := expired.Issue(uuid.New())
				if err != nil {
					t.Fatalf("Issue failed: %v", err)
				}
				return token
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.token(t))
			if !errors.Is(err, auth.ErrInvalidToken) {
				t.Errorf("error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
