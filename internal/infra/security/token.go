package security

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

// ErrEmptyToken indicates no access token was configured.
var ErrEmptyToken = errors.New("security: empty access token")

// actorClaims is the subset of access-token claims the console needs.
type actorClaims struct {
	Name          string `json:"name"`
	IsGlobalAdmin bool   `json:"is_global_admin"`
	TenantID      string `json:"tenant_id"`
	jwt.RegisteredClaims
}

// ActorFromToken derives the request-scoped actor from the configured
// access token. The signature is deliberately not verified here: the
// console is a pure API client and the server rejects forged tokens on
// every call. The claims only steer which screens and scopes the UI
// offers.
func ActorFromToken(token string) (domain.Actor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Actor{}, ErrEmptyToken
	}

	var claims actorClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return domain.Actor{}, fmt.Errorf("parse access token: %w", err)
	}

	return domain.Actor{
		UserID:        claims.Subject,
		Name:          claims.Name,
		IsGlobalAdmin: claims.IsGlobalAdmin,
		TenantID:      claims.TenantID,
	}, nil
}
