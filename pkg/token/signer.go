package token

import (
	"log/slog"
	"time"
)

// Signer issues and verifies tokens with one process-wide secret.
// The secret is copied on construction and never exposed; a Signer is
// immutable and safe for concurrent use.
type Signer struct {
	secret []byte
	now    func() time.Time
}

// Option configures a Signer.
type Option func(*Signer)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Signer. An empty secret is rejected.
func New(secret []byte, opts ...Option) (*Signer, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	s := &Signer{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// NewFromString is a convenience wrapper around New for string configuration.
func NewFromString(secret string, opts ...Option) (*Signer, error) {
	return New([]byte(secret), opts...)
}

// MustNew is like New but panics on error. Use it during startup only.
func MustNew(secret []byte, opts ...Option) *Signer {
	s, err := New(secret, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Issue creates a token binding claims to subject until now+ttl.
//
// subject must be non-empty, ttl must be at least one second and claims must
// not contain sub or exp. iat is added unless the caller supplied one.
// The returned string contains exactly two '.' separators and only
// URL-safe characters.
func (s *Signer) Issue(subject string, claims Claims, ttl time.Duration) (string, error) {
	return issue(subject, claims, ttl, s.secret, s.now())
}

// Verify validates tok and returns its claims.
//
// The checks run in a fixed order: structure (ErrMalformed), signature
// (ErrBadSignature), payload decoding (ErrMalformed) and expiry (ErrExpired).
// The signature is compared in constant time before the payload is read.
// Verify does not know who the token should belong to; callers use
// Claims.BindTo against the authenticated identity.
func (s *Signer) Verify(tok string) (Claims, error) {
	return verify(tok, s.secret, s.now())
}

// String keeps the secret out of fmt output.
func (s *Signer) String() string {
	return "token.Signer{secret:REDACTED}"
}

// LogValue keeps the secret out of structured logs.
func (s *Signer) LogValue() slog.Value {
	return slog.StringValue("REDACTED")
}
