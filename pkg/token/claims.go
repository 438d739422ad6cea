package token

import (
	"crypto/subtle"
	"encoding/json"
	"math"
	"time"
)

// Registered claim names. ClaimSubject and ClaimExpiresAt are set by the issuer.
const (
	ClaimSubject   = "sub"
	ClaimExpiresAt = "exp"
	ClaimIssuedAt  = "iat"
	ClaimID        = "jti"
)

// Claims is the signed payload of a token.
// Values decoded by Verify follow encoding/json rules, except numbers which
// arrive as json.Number; exp and iat are normalised to int64.
type Claims map[string]any

// Subject returns the sub claim or an empty string.
func (c Claims) Subject() string {
	s, _ := c[ClaimSubject].(string)
	return s
}

// ExpiresAt returns the exp claim as a time. The zero time is returned when
// the claim is absent or not numeric.
func (c Claims) ExpiresAt() time.Time {
	exp, ok := numericClaim(c[ClaimExpiresAt])
	if !ok {
		return time.Time{}
	}
	return time.Unix(exp, 0)
}

// IssuedAt returns the iat claim as a time, or the zero time.
func (c Claims) IssuedAt() time.Time {
	iat, ok := numericClaim(c[ClaimIssuedAt])
	if !ok {
		return time.Time{}
	}
	return time.Unix(iat, 0)
}

// ID returns the jti claim or an empty string.
func (c Claims) ID() string {
	return c.String(ClaimID)
}

// String returns a string claim, or an empty string when the claim is absent
// or has another type.
func (c Claims) String(name string) string {
	s, _ := c[name].(string)
	return s
}

// BindTo checks that the token was minted for subject.
// Comparison is constant time so the caller's identity is not leaked through timing.
func (c Claims) BindTo(subject string) error {
	sub := c.Subject()
	if subject == "" || sub == "" {
		return ErrSubjectMismatch
	}
	if subtle.ConstantTimeCompare([]byte(sub), []byte(subject)) != 1 {
		return ErrSubjectMismatch
	}
	return nil
}

// numericClaim converts a decoded JSON number into whole seconds.
func numericClaim(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n >= math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return numericClaim(f)
	default:
		return 0, false
	}
}
