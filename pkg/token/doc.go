// Package token issues and verifies compact, self-contained signed tokens
// carrying a JSON claims set bound to a subject and an expiry.
//
// Tokens are used for out-of-band confirmations (for example "user X asked
// to change their email address to Y") and are verified without any server
// side record: validity is computed from the signature and the exp claim only.
//
// Token format: base64url(header).base64url(payload).base64url(signature)
//
// Each segment is base64url encoded without padding. The signature is an
// HMAC-SHA256 over the exact ASCII bytes "header_b64.payload_b64". The header
// is always {"alg":"HS256","typ":"JWT"}; there is no algorithm negotiation and
// no key rotation.
//
// # Usage
//
//	import "github.com/tendus-stephan/coreflowhr/pkg/token"
//
//	signer, err := token.New([]byte(os.Getenv("EMAIL_CHANGE_SECRET")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tok, err := signer.Issue("user-42", token.Claims{"newEmail": "a@b.com"}, time.Hour)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	claims, err := signer.Verify(tok)
//	if err != nil {
//	    // ErrMalformed, ErrBadSignature or ErrExpired
//	}
//	if err := claims.BindTo(authenticatedUserID); err != nil {
//	    // ErrSubjectMismatch
//	}
//
// # Verification order
//
// Verify walks a fixed chain and stops at the first failure:
//
//	Received -> Malformed | StructurallyValid
//	StructurallyValid -> BadSignature | SignatureValid
//	SignatureValid -> Malformed | PayloadValid
//	PayloadValid -> Expired | Valid
//
// The signature is checked with a constant-time comparison before any byte
// of the payload is interpreted, so expiry is only reported for tokens that
// were really issued with the same secret.
//
// # Error Handling
//
// Rejections are sentinel errors (ErrMalformed, ErrBadSignature, ErrExpired,
// ErrSubjectMismatch) to be matched with errors.Is. Kind maps any error to a
// Rejection value suitable for logging. The rejection kind must not be shown
// to end users; answer every rejection with the same generic message.
//
// Signer and the package level functions keep no mutable state and are safe
// for concurrent use.
package token
