package emailchange

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapWriteError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"stale", ErrStaleRequest, ErrStaleRequest},
		{"email taken", &pgconn.PgError{Code: "23505", ConstraintName: constraintUserEmail}, ErrEmailAlreadyExists},
		{"token reused", &pgconn.PgError{Code: "23505", ConstraintName: constraintTokenID}, ErrLinkUsed},
		{"other violation", &pgconn.PgError{Code: "23503", ConstraintName: "email_change_log_user_id_fkey"}, nil},
		{"no rows", pgx.ErrNoRows, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mapWriteError(tt.err)
			if tt.want != nil {
				assert.ErrorIs(t, got, tt.want)
				return
			}
			assert.True(t, errors.Is(got, tt.err))
			assert.NotErrorIs(t, got, ErrEmailAlreadyExists)
			assert.NotErrorIs(t, got, ErrLinkUsed)
		})
	}
}
