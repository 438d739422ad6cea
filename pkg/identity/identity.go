package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tendus-stephan/coreflowhr/pkg/token"
)

// Identity is the authenticated caller taken from a verified access token.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	Role      string
	SessionID string
	ExpiresAt time.Time
}

// Verifier authenticates Supabase access tokens. Those are HS256 JWTs signed
// with the project's JWT secret, so the token package verifies them.
type Verifier struct {
	signer   *token.Signer
	audience string
}

// NewVerifier creates a Verifier. An empty audience disables the aud check.
func NewVerifier(secret []byte, audience string, opts ...token.Option) (*Verifier, error) {
	s, err := token.New(secret, opts...)
	if err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}
	return &Verifier{signer: s, audience: audience}, nil
}

// Authenticate verifies raw and returns the caller. Token rejections keep
// their token error so callers can classify them with token.Kind.
func (v *Verifier) Authenticate(raw string) (Identity, error) {
	claims, err := v.signer.Verify(raw)
	if err != nil {
		return Identity{}, err
	}

	if v.audience != "" && !hasAudience(claims["aud"], v.audience) {
		return Identity{}, ErrInvalidAudience
	}

	id, err := uuid.Parse(claims.Subject())
	if err != nil {
		return Identity{}, errors.Join(ErrInvalidSubject, err)
	}

	return Identity{
		UserID:    id,
		Email:     strings.ToLower(claims.String("email")),
		Role:      claims.String("role"),
		SessionID: claims.String("session_id"),
		ExpiresAt: claims.ExpiresAt(),
	}, nil
}

// aud may be a single string or an array of strings.
func hasAudience(v any, want string) bool {
	switch aud := v.(type) {
	case string:
		return aud == want
	case []any:
		for _, a := range aud {
			if s, ok := a.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}
