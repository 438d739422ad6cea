package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header is the request and response header carrying the ID.
const Header = "X-Request-ID"

const maxIDLength = 128

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type options struct {
	trustIncoming bool
	generate      func() string
}

// Option configures the middleware.
type Option func(*options)

// WithTrustIncoming reuses a well-formed client supplied X-Request-ID. Enable
// it only behind a proxy that sets the header itself.
func WithTrustIncoming(trust bool) Option {
	return func(o *options) { o.trustIncoming = trust }
}

// WithGenerator replaces the UUIDv7 generator.
func WithGenerator(fn func() string) Option {
	if fn == nil {
		panic("WithGenerator: nil generator")
	}
	return func(o *options) { o.generate = fn }
}

// New returns middleware that assigns every request an ID, stores it in the
// request context and echoes it in the response header.
func New(opts ...Option) func(http.Handler) http.Handler {
	o := &options{generate: newID}
	for _, opt := range opts {
		opt(o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if o.trustIncoming {
				if in := r.Header.Get(Header); isValid(in) {
					id = in
				}
			}
			if id == "" {
				id = o.generate()
			}

			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

// Middleware is New with trusted incoming IDs.
func Middleware(next http.Handler) http.Handler {
	return New(WithTrustIncoming(true))(next)
}

func newID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

func isValid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}
