// Package requestid tags each HTTP request with a correlation ID.
//
// The middleware stores the ID in the request context and sets the
// X-Request-ID response header. Client supplied IDs are only reused with
// WithTrustIncoming and only when they match [a-zA-Z0-9_-]{1,128}.
//
// LogExtractor plugs into logger.WithContextExtractors so every record logged
// with the request context carries request_id.
package requestid
