package emailchange

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tendus-stephan/coreflowhr/pkg/httpjson"
	"github.com/tendus-stephan/coreflowhr/pkg/identity"
	"github.com/tendus-stephan/coreflowhr/pkg/logger"
	"github.com/tendus-stephan/coreflowhr/pkg/token"
)

type changer interface {
	RequestChange(ctx context.Context, userID uuid.UUID, newEmail string) (ChangeRequest, error)
	ConfirmChange(ctx context.Context, callerID uuid.UUID, raw string) (User, error)
}

// Client facing errors. Confirmation failures all share one message so the
// reason a link was refused is not disclosed.
var (
	errInvalidLink   = httpjson.HTTPError{Code: http.StatusBadRequest, Key: "invalid_link", Message: "This link is invalid or has expired. Request a new one."}
	errEmailTaken    = httpjson.HTTPError{Code: http.StatusConflict, Key: "email_taken", Message: "This email address is already in use."}
	errEmailSame     = httpjson.HTTPError{Code: http.StatusUnprocessableEntity, Key: "email_unchanged", Message: "The new email address matches the current one."}
	errUnknownCaller = httpjson.ErrUnauthorized.WithMessage("Authentication required.")
)

type changeRequest struct {
	NewEmail string `json:"new_email" validate:"required,email,max=254"`
}

type confirmRequest struct {
	Token string `json:"token" validate:"required,max=4096"`
}

type changeResponse struct {
	NewEmail  string    `json:"new_email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type confirmResponse struct {
	Email string `json:"email"`
}

// Handler exposes the service over HTTP. Routes expect the identity
// middleware to have authenticated the caller.
type Handler struct {
	svc          changer
	logger       *slog.Logger
	requestLimit func(http.Handler) http.Handler
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithRequestLimit guards POST /change, the route that sends mail.
func WithRequestLimit(mw func(http.Handler) http.Handler) HandlerOption {
	return func(h *Handler) { h.requestLimit = mw }
}

// NewHandler creates a Handler for svc.
func NewHandler(svc changer, log *slog.Logger, opts ...HandlerOption) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	h := &Handler{svc: svc, logger: log.With(logger.Component("emailchange.http"))}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle returns the router for the /account/email prefix.
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()
	if h.requestLimit != nil {
		r.With(h.requestLimit).Post("/change", h.RequestChange)
	} else {
		r.Post("/change", h.RequestChange)
	}
	r.Post("/confirm", h.ConfirmPost)
	r.Get("/confirm", h.ConfirmGet)
	return r
}

// RequestChange handles POST /change with {"new_email": "..."}.
func (h *Handler) RequestChange(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		httpjson.Error(w, errUnknownCaller)
		return
	}

	var req changeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}

	res, err := h.svc.RequestChange(r.Context(), caller.UserID, req.NewEmail)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httpjson.Write(w, http.StatusAccepted, httpjson.Response{
		Code:    "email_change_requested",
		Message: "We sent a confirmation link to your current email address.",
		Data:    changeResponse{NewEmail: res.NewEmail, ExpiresAt: res.ExpiresAt},
	})
}

// ConfirmPost handles POST /confirm with {"token": "..."}.
func (h *Handler) ConfirmPost(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := httpjson.Decode(r, &req); err != nil {
		var valErr httpjson.ValidationError
		if errors.As(err, &valErr) {
			err = errInvalidLink
		}
		httpjson.Error(w, err)
		return
	}
	h.confirm(w, r, req.Token)
}

// ConfirmGet handles GET /confirm?token=...
func (h *Handler) ConfirmGet(w http.ResponseWriter, r *http.Request) {
	h.confirm(w, r, r.URL.Query().Get("token"))
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request, raw string) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		httpjson.Error(w, errUnknownCaller)
		return
	}
	if raw == "" || len(raw) > token.MaxLength {
		h.logger.InfoContext(r.Context(), "email change confirmation rejected",
			logger.Event("email_change.rejected"),
			logger.Rejection(token.RejectionMalformed),
			slog.Int("token_length", len(raw)),
		)
		httpjson.Error(w, errInvalidLink)
		return
	}

	user, err := h.svc.ConfirmChange(r.Context(), caller.UserID, raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httpjson.OK(w, "email_changed", "Your email address has been updated.", confirmResponse{Email: user.Email})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var valErr httpjson.ValidationError
	switch {
	case errors.Is(err, ErrInvalidLink):
		httpjson.Error(w, errInvalidLink)
	case errors.Is(err, ErrEmailAlreadyExists):
		httpjson.Error(w, errEmailTaken)
	case errors.Is(err, ErrEmailUnchanged):
		httpjson.Error(w, errEmailSame)
	case errors.Is(err, ErrUserNotFound):
		httpjson.Error(w, errUnknownCaller)
	case errors.As(err, &valErr):
		httpjson.Error(w, valErr)
	default:
		h.logger.ErrorContext(r.Context(), "email change failed", logger.Error(err))
		httpjson.Error(w, err)
	}
}
