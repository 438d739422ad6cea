// Package identity authenticates API callers from Supabase access tokens.
//
// Supabase signs its access tokens as HS256 JWTs with the project JWT secret,
// so Verifier reuses the token package for signature and expiry checks and
// then requires the configured audience and a UUID subject.
//
//	v, err := identity.NewVerifier(cfg.SupabaseJWTSecret.Bytes(), cfg.SupabaseJWTAudience)
//	r.With(identity.Middleware(v, log)).Post("/account/email/change", h.RequestChange)
//
// Handlers read the caller with FromContext.
package identity
