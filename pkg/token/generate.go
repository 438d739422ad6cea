package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// Header constants. The header is fixed; verifiers reject any other algorithm.
const (
	HeaderType      = "JWT"
	HeaderAlgorithm = "HS256"
)

// header is the first token segment.
type header struct {
	Algorithm string `json:"alg"`
	Type      string `json:"typ"`
}

// encoding is base64url without padding. Strict mode rejects non-zero
// trailing bits so every token has exactly one textual form.
var encoding = base64.RawURLEncoding.Strict()

// encodedHeader is computed once; the header never varies.
var encodedHeader = func() string {
	b, err := json.Marshal(header{Algorithm: HeaderAlgorithm, Type: HeaderType})
	if err != nil {
		panic(err)
	}
	return encoding.EncodeToString(b)
}()

// Issue creates a token for subject valid for ttl using the wall clock.
// See Signer.Issue for the input rules.
func Issue(subject string, claims Claims, ttl time.Duration, secret []byte) (string, error) {
	return issue(subject, claims, ttl, secret, time.Now())
}

func issue(subject string, claims Claims, ttl time.Duration, secret []byte, now time.Time) (string, error) {
	if subject == "" {
		return "", ErrEmptySubject
	}
	if ttl < time.Second {
		return "", ErrInvalidTTL
	}
	if len(secret) == 0 {
		return "", ErrEmptySecret
	}

	payload := make(Claims, len(claims)+3)
	for name, value := range claims {
		if name == ClaimSubject || name == ClaimExpiresAt {
			return "", fmt.Errorf("%w: %q", ErrReservedClaim, name)
		}
		payload[name] = value
	}

	issuedAt := now.Unix()
	payload[ClaimSubject] = subject
	payload[ClaimExpiresAt] = issuedAt + int64(ttl/time.Second)
	if _, ok := payload[ClaimIssuedAt]; !ok {
		payload[ClaimIssuedAt] = issuedAt
	}

	// encoding/json sorts map keys, which keeps the payload canonical.
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("token: failed to marshal claims: %w", err)
	}

	signingInput := encodedHeader + "." + encoding.EncodeToString(payloadJSON)
	return signingInput + "." + encoding.EncodeToString(sign(secret, signingInput)), nil
}

// sign returns the raw HMAC-SHA256 of the signing input.
func sign(secret []byte, signingInput string) []byte {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(signingInput))
	return h.Sum(nil)
}
