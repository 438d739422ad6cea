package clientip

import "net/http"

// Option configures the middleware.
type Option func(*options)

type options struct {
	trustProxy bool
	headers    []string
}

// WithTrustProxy makes the middleware read forwarded headers. Pass headers to
// override DefaultHeaders.
func WithTrustProxy(headers ...string) Option {
	return func(o *options) {
		o.trustProxy = true
		if len(headers) > 0 {
			o.headers = headers
		}
	}
}

// New returns middleware that resolves the client IP once and stores it in
// the request context.
func New(opts ...Option) func(http.Handler) http.Handler {
	o := options{headers: DefaultHeaders}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var ip string
			if o.trustProxy {
				ip = GetForwardedIP(r, o.headers...)
			} else {
				ip = GetIP(r)
			}
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), ip)))
		})
	}
}
