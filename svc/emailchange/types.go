package emailchange

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tendus-stephan/coreflowhr/pkg/email"
)

// User is the part of a user profile this service reads and writes.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChangeRequest describes a confirmation link that was sent.
type ChangeRequest struct {
	CurrentEmail string    `json:"current_email"`
	NewEmail     string    `json:"new_email"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ChangeRecord is persisted when a change is confirmed.
type ChangeRecord struct {
	UserID      uuid.UUID
	OldEmail    string
	NewEmail    string
	TokenID     string
	ConfirmedAt time.Time
}

// UserStorage reads profiles and applies confirmed changes.
//
// Lookups return ErrUserNotFound for missing rows. ApplyEmailChange must
// update the email only while it still equals rec.OldEmail (ErrStaleRequest
// otherwise), record rec in the same transaction, and map unique violations
// to ErrEmailAlreadyExists or ErrLinkUsed.
type UserStorage interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ApplyEmailChange(ctx context.Context, rec ChangeRecord) (User, error)
}

// Ledger remembers consumed token ids. Consume reports false when id was
// consumed before.
type Ledger interface {
	Consume(ctx context.Context, id string, ttl time.Duration) (bool, error)
}

// Mailer delivers the confirmation message.
type Mailer = email.EmailSender
