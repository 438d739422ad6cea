// Package emailchange lets an authenticated user move their account to a new
// email address after proving control of the current one.
//
// RequestChange signs a short-lived token binding the user id, the current
// and the new address, a random token id and the purpose "email_change",
// and mails a link carrying it to the current address. ConfirmChange checks
// in order:
//
//  1. signature and expiry (token.Signer.Verify)
//  2. the token was minted for the caller (Claims.BindTo)
//  3. purpose and required claims
//  4. the account still has the address the link was issued for
//  5. the token id has not been consumed (Ledger)
//  6. the new address is still free
//
// and then updates the address and appends to email_change_log in one
// transaction. Every refusal is logged by kind and returned joined with
// ErrInvalidLink; the HTTP layer answers all of them with the same body.
package emailchange
