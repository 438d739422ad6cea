package emailchange

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tendus-stephan/coreflowhr/pkg/email"
	"github.com/tendus-stephan/coreflowhr/pkg/email/templates"
	"github.com/tendus-stephan/coreflowhr/pkg/httpjson"
	"github.com/tendus-stephan/coreflowhr/pkg/logger"
	"github.com/tendus-stephan/coreflowhr/pkg/token"
)

// Claims carried by an email change token besides sub, exp, iat and jti.
const (
	ClaimNewEmail = "new_email"
	ClaimOldEmail = "old_email"
	ClaimPurpose  = "purpose"

	PurposeEmailChange = "email_change"
)

// ConfirmPath is where confirmation links point, relative to the base URL.
const ConfirmPath = "account/email/confirm"

// Config holds the values the service needs from the application config.
type Config struct {
	Secret       []byte
	TTL          time.Duration
	BaseURL      string
	AppName      string
	SupportEmail string
}

// Service runs the two-step email change: RequestChange mails a signed link
// to the current address, ConfirmChange applies it.
type Service struct {
	storage UserStorage
	ledger  Ledger
	mailer  Mailer
	signer  *token.Signer
	cfg     Config
	baseURL *url.URL
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for token issuance, verification and ledger TTLs.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService validates cfg and builds a Service.
func NewService(cfg Config, storage UserStorage, ledger Ledger, mailer Mailer, opts ...Option) (*Service, error) {
	if storage == nil || ledger == nil || mailer == nil {
		return nil, errors.New("emailchange: storage, ledger and mailer are required")
	}
	if cfg.TTL < time.Second {
		return nil, fmt.Errorf("emailchange: %w", token.ErrInvalidTTL)
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("emailchange: invalid base url %q", cfg.BaseURL)
	}

	s := &Service{
		storage: storage,
		ledger:  ledger,
		mailer:  mailer,
		cfg:     cfg,
		baseURL: base,
		logger:  logger.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("emailchange"))

	if s.signer, err = token.New(cfg.Secret, token.WithClock(s.now)); err != nil {
		return nil, fmt.Errorf("emailchange: %w", err)
	}
	return s, nil
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// RequestChange starts a change of userID's email to newEmail by mailing a
// confirmation link to the current address. Nothing is stored until the
// link is confirmed.
func (s *Service) RequestChange(ctx context.Context, userID uuid.UUID, newEmail string) (ChangeRequest, error) {
	newEmail = NormalizeEmail(newEmail)
	if err := httpjson.ValidateVar("new_email", newEmail, "required,email,max=254"); err != nil {
		return ChangeRequest{}, err
	}

	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		return ChangeRequest{}, err
	}
	if NormalizeEmail(user.Email) == newEmail {
		return ChangeRequest{}, ErrEmailUnchanged
	}
	if err := s.ensureAvailable(ctx, newEmail); err != nil {
		return ChangeRequest{}, err
	}

	jti := uuid.NewString()
	tok, err := s.signer.Issue(userID.String(), token.Claims{
		token.ClaimID: jti,
		ClaimNewEmail: newEmail,
		ClaimOldEmail: user.Email,
		ClaimPurpose:  PurposeEmailChange,
	}, s.cfg.TTL)
	if err != nil {
		return ChangeRequest{}, fmt.Errorf("issue email change token: %w", err)
	}

	if err := s.sendConfirmation(ctx, user.Email, newEmail, tok); err != nil {
		return ChangeRequest{}, err
	}

	expiresAt := s.now().Add(s.cfg.TTL).Truncate(time.Second)
	s.logger.InfoContext(ctx, "email change requested",
		logger.Event("email_change.requested"),
		logger.UserID(userID.String()),
		slog.String("token_id", jti),
		slog.Time("expires_at", expiresAt),
	)

	return ChangeRequest{
		CurrentEmail: user.Email,
		NewEmail:     newEmail,
		ExpiresAt:    expiresAt,
	}, nil
}

// ConfirmChange applies the change carried by raw on behalf of callerID.
// Every rejection is returned joined with ErrInvalidLink; only
// ErrEmailAlreadyExists, ErrUserNotFound and infrastructure errors come back
// on their own.
func (s *Service) ConfirmChange(ctx context.Context, callerID uuid.UUID, raw string) (User, error) {
	claims, err := s.signer.Verify(raw)
	if err != nil {
		return User{}, s.reject(ctx, callerID, err)
	}
	if err := claims.BindTo(callerID.String()); err != nil {
		return User{}, s.reject(ctx, callerID, err)
	}

	if claims.String(ClaimPurpose) != PurposeEmailChange {
		return User{}, s.reject(ctx, callerID, errors.Join(token.ErrMalformed, ErrWrongPurpose))
	}
	jti, newEmail, oldEmail := claims.ID(), claims.String(ClaimNewEmail), claims.String(ClaimOldEmail)
	if jti == "" || newEmail == "" || oldEmail == "" {
		return User{}, s.reject(ctx, callerID, token.ErrMalformed)
	}

	user, err := s.storage.GetUserByID(ctx, callerID)
	if err != nil {
		return User{}, err
	}
	if NormalizeEmail(user.Email) != NormalizeEmail(oldEmail) {
		return User{}, s.reject(ctx, callerID, ErrStaleRequest)
	}

	fresh, err := s.ledger.Consume(ctx, jti, claims.ExpiresAt().Sub(s.now()))
	if err != nil {
		return User{}, fmt.Errorf("consume email change token: %w", err)
	}
	if !fresh {
		return User{}, s.reject(ctx, callerID, ErrLinkUsed)
	}

	if err := s.ensureAvailable(ctx, newEmail); err != nil {
		return User{}, err
	}

	updated, err := s.storage.ApplyEmailChange(ctx, ChangeRecord{
		UserID:      callerID,
		OldEmail:    user.Email,
		NewEmail:    newEmail,
		TokenID:     jti,
		ConfirmedAt: s.now(),
	})
	switch {
	case errors.Is(err, ErrStaleRequest), errors.Is(err, ErrLinkUsed):
		return User{}, s.reject(ctx, callerID, err)
	case err != nil:
		return User{}, err
	}

	s.logger.InfoContext(ctx, "email changed",
		logger.Event("email_change.confirmed"),
		logger.UserID(callerID.String()),
		slog.String("token_id", jti),
	)
	return updated, nil
}

func (s *Service) ensureAvailable(ctx context.Context, addr string) error {
	_, err := s.storage.GetUserByEmail(ctx, addr)
	switch {
	case err == nil:
		return ErrEmailAlreadyExists
	case errors.Is(err, ErrUserNotFound):
		return nil
	default:
		return fmt.Errorf("check email availability: %w", err)
	}
}

// reject logs a refused confirmation at the level its kind deserves and
// hides the kind behind ErrInvalidLink.
func (s *Service) reject(ctx context.Context, callerID uuid.UUID, cause error) error {
	kind := token.Kind(cause)
	level := logger.RejectionLevel(kind)
	switch {
	case errors.Is(cause, ErrLinkUsed):
		level = slog.LevelWarn
	case errors.Is(cause, ErrStaleRequest):
		level = slog.LevelInfo
	}

	attrs := []any{
		logger.Event("email_change.rejected"),
		logger.UserID(callerID.String()),
		logger.Error(cause),
	}
	if kind != token.RejectionUnknown {
		attrs = append(attrs, logger.Rejection(kind))
	}
	s.logger.Log(ctx, level, "email change confirmation rejected", attrs...)

	return errors.Join(ErrInvalidLink, cause)
}

func (s *Service) confirmURL(tok string) string {
	u := s.baseURL.JoinPath(ConfirmPath)
	u.RawQuery = url.Values{"token": {tok}}.Encode()
	return u.String()
}

func (s *Service) sendConfirmation(ctx context.Context, to, newEmail, tok string) error {
	data := templates.EmailChangeData{
		AppName:    s.cfg.AppName,
		NewEmail:   newEmail,
		ConfirmURL: s.confirmURL(tok),
		ValidFor:   s.cfg.TTL,
	}
	if s.cfg.SupportEmail != "" {
		data.SupportLink = "mailto:" + s.cfg.SupportEmail
	}

	body, err := templates.Render(ctx, templates.EmailChange(data))
	if err != nil {
		return fmt.Errorf("render email change message: %w", err)
	}

	if err := s.mailer.SendEmail(ctx, email.SendEmailParams{
		SendTo:   to,
		Subject:  templates.EmailChangeSubject(s.cfg.AppName),
		BodyHTML: body,
		Tag:      "email-change",
	}); err != nil {
		return fmt.Errorf("send email change message: %w", err)
	}
	return nil
}
