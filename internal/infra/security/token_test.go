package security

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestActorFromToken(t *testing.T) {
	signed := signTestToken(t, jwt.MapClaims{
		"sub":             "u-17",
		"name":            "Ana",
		"is_global_admin": true,
		"tenant_id":       "42",
		"exp":             time.Now().Add(time.Hour).Unix(),
	})

	actor, err := ActorFromToken(signed)
	if err != nil {
		t.Fatalf("actor from token: %v", err)
	}
	if actor.UserID != "u-17" || actor.Name != "Ana" {
		t.Fatalf("unexpected actor %+v", actor)
	}
	if !actor.IsGlobalAdmin || actor.TenantID != "42" {
		t.Fatalf("unexpected flags %+v", actor)
	}
}

func TestActorFromTokenDefaults(t *testing.T) {
	signed := signTestToken(t, jwt.MapClaims{"sub": "u-9"})

	actor, err := ActorFromToken(signed)
	if err != nil {
		t.Fatalf("actor from token: %v", err)
	}
	if actor.IsGlobalAdmin || actor.TenantID != "" {
		t.Fatalf("expected zero-value flags, got %+v", actor)
	}
}

func TestActorFromTokenEmpty(t *testing.T) {
	if _, err := ActorFromToken("   "); !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
}

func TestActorFromTokenGarbage(t *testing.T) {
	if _, err := ActorFromToken("not-a-jwt"); err == nil {
		t.Fatal("expected parse error")
	}
}
