package token

import (
	"bytes"
	"crypto/hmac"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"
)

// MaxLength caps the size of a token accepted by Verify.
// Larger inputs are rejected before any decoding work.
const MaxLength = 4096

// Verify checks tok against secret using the wall clock and returns its claims.
// See Signer.Verify for the verification order.
func Verify(tok string, secret []byte) (Claims, error) {
	return verify(tok, secret, time.Now())
}

func verify(tok string, secret []byte, now time.Time) (Claims, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if tok == "" || len(tok) > MaxLength {
		return nil, ErrMalformed
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		return nil, ErrMalformed
	}

	var segments [3][]byte
	for i, part := range parts {
		if part == "" || !isURLSafe(part) {
			return nil, ErrMalformed
		}
		b, err := encoding.DecodeString(part)
		if err != nil {
			return nil, errors.Join(ErrMalformed, err)
		}
		segments[i] = b
	}

	// Nothing from the header or payload is trusted before this point.
	signingInput := tok[:len(parts[0])+1+len(parts[1])]
	if !hmac.Equal(segments[2], sign(secret, signingInput)) {
		return nil, ErrBadSignature
	}

	var h header
	if err := json.Unmarshal(segments[0], &h); err != nil {
		return nil, errors.Join(ErrMalformed, err)
	}
	if h.Algorithm != HeaderAlgorithm {
		return nil, ErrMalformed
	}

	claims, err := decodeClaims(segments[1])
	if err != nil {
		return nil, errors.Join(ErrMalformed, err)
	}
	if claims.Subject() == "" {
		return nil, ErrMalformed
	}

	exp, ok := numericClaim(claims[ClaimExpiresAt])
	if !ok || exp <= now.Unix() {
		return nil, ErrExpired
	}
	claims[ClaimExpiresAt] = exp
	if iat, ok := numericClaim(claims[ClaimIssuedAt]); ok {
		claims[ClaimIssuedAt] = iat
	}

	return claims, nil
}

// decodeClaims parses a single JSON object, keeping numbers as json.Number
// so large integers survive the round trip.
func decodeClaims(data []byte) (Claims, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var claims Claims
	if err := dec.Decode(&claims); err != nil {
		return nil, err
	}
	if claims == nil {
		return nil, errors.New("claims must be a JSON object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after claims")
	}
	return claims, nil
}

// isURLSafe reports whether s only contains the base64url alphabet.
// The decoder alone would silently skip CR and LF.
func isURLSafe(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
