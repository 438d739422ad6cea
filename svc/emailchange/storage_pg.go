package emailchange

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tendus-stephan/coreflowhr/pkg/pg"
)

// Unique indexes created by the migrations in db/migrations.
const (
	constraintUserEmail = "user_profiles_email_key"
	constraintTokenID   = "email_change_log_token_id_key"
)

// pgxDB is satisfied by *pgxpool.Pool and pgx.Tx.
type pgxDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PGStorage implements UserStorage on Postgres.
type PGStorage struct {
	db pgxDB
}

// NewPGStorage creates a PGStorage backed by db, usually a *pgxpool.Pool.
func NewPGStorage(db pgxDB) *PGStorage {
	return &PGStorage{db: db}
}

const selectUser = `SELECT id, email, updated_at FROM user_profiles `

func (s *PGStorage) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	return s.getUser(ctx, selectUser+`WHERE id = $1`, id)
}

func (s *PGStorage) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return s.getUser(ctx, selectUser+`WHERE lower(email) = lower($1)`, email)
}

func (s *PGStorage) getUser(ctx context.Context, query string, arg any) (User, error) {
	var u User
	err := s.db.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.UpdatedAt)
	if pg.IsNotFoundError(err) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// ApplyEmailChange swaps the address and writes the audit record in one
// transaction. The update is conditional on the old address so two links
// issued for the same account cannot both apply.
func (s *PGStorage) ApplyEmailChange(ctx context.Context, rec ChangeRecord) (User, error) {
	var u User
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE user_profiles
			SET email = $1, updated_at = now()
			WHERE id = $2 AND lower(email) = lower($3)
			RETURNING id, email, updated_at`,
			rec.NewEmail, rec.UserID, rec.OldEmail,
		).Scan(&u.ID, &u.Email, &u.UpdatedAt)
		if pg.IsNotFoundError(err) {
			return ErrStaleRequest
		}
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO email_change_log (user_id, old_email, new_email, token_id, confirmed_at)
			VALUES ($1, $2, $3, $4, $5)`,
			rec.UserID, rec.OldEmail, rec.NewEmail, rec.TokenID, rec.ConfirmedAt,
		)
		return err
	})
	if err != nil {
		return User{}, mapWriteError(err)
	}
	return u, nil
}

func mapWriteError(err error) error {
	switch {
	case errors.Is(err, ErrStaleRequest):
		return err
	case pg.IsDuplicateKeyError(err) && pg.ConstraintName(err) == constraintUserEmail:
		return ErrEmailAlreadyExists
	case pg.IsDuplicateKeyError(err) && pg.ConstraintName(err) == constraintTokenID:
		return ErrLinkUsed
	default:
		return fmt.Errorf("apply email change: %w", err)
	}
}
