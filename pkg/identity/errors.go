package identity

import "errors"

var (
	ErrMissingToken    = errors.New("identity: missing bearer token")
	ErrInvalidAudience = errors.New("identity: token audience not accepted")
	ErrInvalidSubject  = errors.New("identity: token subject is not a user id")
	ErrNoIdentity      = errors.New("identity: no identity in context")
)
