package token

import "errors"

// Verification rejections.
var (
	ErrMalformed       = errors.New("token: malformed token")
	ErrBadSignature    = errors.New("token: signature mismatch")
	ErrExpired         = errors.New("token: token is expired")
	ErrSubjectMismatch = errors.New("token: subject mismatch")
)

// Issuance errors. These indicate programmer mistakes rather than runtime conditions.
var (
	ErrEmptySubject  = errors.New("token: empty subject")
	ErrEmptySecret   = errors.New("token: empty secret")
	ErrInvalidTTL    = errors.New("token: ttl must be at least one second")
	ErrReservedClaim = errors.New("token: claim is reserved")
)

// Rejection classifies a verification failure.
type Rejection string

const (
	RejectionNone            Rejection = ""
	RejectionMalformed       Rejection = "malformed"
	RejectionBadSignature    Rejection = "bad_signature"
	RejectionExpired         Rejection = "expired"
	RejectionSubjectMismatch Rejection = "subject_mismatch"
	RejectionUnknown         Rejection = "unknown"
)

// Kind returns the rejection class of err.
// A nil error yields RejectionNone, an unrelated error RejectionUnknown.
func Kind(err error) Rejection {
	switch {
	case err == nil:
		return RejectionNone
	case errors.Is(err, ErrBadSignature):
		return RejectionBadSignature
	case errors.Is(err, ErrSubjectMismatch):
		return RejectionSubjectMismatch
	case errors.Is(err, ErrExpired):
		return RejectionExpired
	case errors.Is(err, ErrMalformed):
		return RejectionMalformed
	default:
		return RejectionUnknown
	}
}

// IsSecurityEvent reports whether the rejection points at forgery or misuse
// rather than a client bug or a normal lifecycle event.
func (r Rejection) IsSecurityEvent() bool {
	return r == RejectionBadSignature || r == RejectionSubjectMismatch
}
