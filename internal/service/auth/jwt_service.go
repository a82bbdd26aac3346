package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService issues and checks the access tokens that protect the API.
type JWTService interface {
	// GenerateToken signs a new access token for the given user.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken parses and verifies a token string, returning its claims.
	// Fails with one of the package sentinels when the token is expired,
	// malformed, or of the wrong type.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims carries the decoded token contents: the application fields plus
// the registered JWT claims the service checks.
type Claims struct {
	// UserID identifies the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// TokenType indicates the purpose of the token. Only "access" tokens
	// are issued; the claim guards against tokens minted elsewhere.
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
