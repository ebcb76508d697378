package security

import (
	"errors"
	"testing"
	"time"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	token, errSign := GenerateAdminToken("secret", 42, "alice", time.Hour)
	if errSign != nil {
		t.Fatalf("generate token: %v", errSign)
	}

	claims, errParse := ParseAdminToken("secret", token)
	if errParse != nil {
		t.Fatalf("parse token: %v", errParse)
	}
	if claims.AdminID != 42 || claims.Username != "alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseAdminTokenRejectsWrongSecret(t *testing.T) {
	token, errSign := GenerateAdminToken("secret", 1, "alice", time.Hour)
	if errSign != nil {
		t.Fatalf("generate token: %v", errSign)
	}

	if _, errParse := ParseAdminToken("other-secret", token); !errors.Is(errParse, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", errParse)
	}
}

func TestParseAdminTokenRejectsExpired(t *testing.T) {
	token, errSign := GenerateAdminToken("secret", 1, "alice", -time.Minute)
	if errSign != nil {
		t.Fatalf("generate token: %v", errSign)
	}

	if _, errParse := ParseAdminToken("secret", token); !errors.Is(errParse, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", errParse)
	}
}

func TestParseAdminTokenRejectsGarbage(t *testing.T) {
	if _, errParse := ParseAdminToken("secret", "not.a.jwt"); !errors.Is(errParse, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", errParse)
	}
}
