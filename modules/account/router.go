package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Mountable is implemented by feature handlers mounted under /account.
type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures the account module. Nil features are not mounted.
type RouterOptions struct {
	// Authenticate guards every account route. Required.
	Authenticate func(http.Handler) http.Handler

	EmailChange Mountable
}

// Router creates the /account router.
//
//	r.Mount("/account", account.Router(account.RouterOptions{
//	    Authenticate: identity.Middleware(verifier, log),
//	    EmailChange:  emailchange.NewHandler(svc, log),
//	}))
func Router(opts RouterOptions) chi.Router {
	if opts.Authenticate == nil {
		panic("account.Router: Authenticate middleware is required")
	}

	r := chi.NewRouter()
	r.Use(opts.Authenticate)

	if opts.EmailChange != nil {
		r.Mount("/email", opts.EmailChange.Handle())
	}

	return r
}
