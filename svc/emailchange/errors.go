package emailchange

import "errors"

var (
	// ErrInvalidLink is returned for every confirmation that must not
	// succeed: bad or expired tokens, another user's link, reuse, or a link
	// made stale by an earlier change. The cause is joined for logging but
	// must never reach the client.
	ErrInvalidLink = errors.New("emailchange: invalid or expired link")

	ErrUserNotFound       = errors.New("emailchange: user not found")
	ErrEmailUnchanged     = errors.New("emailchange: new email equals current email")
	ErrEmailAlreadyExists = errors.New("emailchange: email already in use")
)

// Causes joined with ErrInvalidLink.
var (
	ErrLinkUsed     = errors.New("emailchange: link already used")
	ErrStaleRequest = errors.New("emailchange: email changed since the link was issued")
	ErrWrongPurpose = errors.New("emailchange: token was not issued for an email change")
)
