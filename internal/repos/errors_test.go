package repos

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapbook/internal/apperr"
	"snapbook/internal/domain"
)

func mockdb(t *testing.T, driver string) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	return sqlx.NewDb(raw, driver), mock
}

func TestPostgresUniqueViolationIsConflict(t *testing.T) {
	db, mock := mockdb(t, "pgx")
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO accounts")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_accounts_email"})

	err := NewAccountRepo(db).Insert(context.Background(), &domain.Account{Username: "bob", Email: "b@example.com"})
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, "email_taken", apperr.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresBookingSlotConflict(t *testing.T) {
	db, mock := mockdb(t, "pgx")
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_bookings_slot"})

	err := NewBookingRepo(db).Insert(context.Background(), &domain.Booking{ID: "b1"})
	assert.Equal(t, "slot_taken", apperr.CodeOf(err))
}

func TestOtherDriverErrorsAreStoreErrors(t *testing.T) {
	db, mock := mockdb(t, "pgx")
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	err := NewBookingRepo(db).Insert(context.Background(), &domain.Booking{ID: "b1"})
	assert.True(t, apperr.IsStore(err))
	assert.Equal(t, apperr.GenericMessage, apperr.Message(err))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,customer_id")).
		WillReturnError(errors.New("connection reset"))
	_, err = NewBookingRepo(db).Scan(context.Background(), domain.BookingFilter{CustomerID: "alice"})
	assert.True(t, apperr.IsStore(err))
}

func TestRebindUsesDollarPlaceholders(t *testing.T) {
	db, mock := mockdb(t, "pgx")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM accounts WHERE username=$1`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := NewAccountRepo(db).Exists(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissingRowIsNotFound(t *testing.T) {
	db, mock := mockdb(t, "sqlite")
	mock.ExpectQuery(regexp.QuoteMeta("FROM photographers WHERE id=?")).
		WithArgs("ph-404").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewPhotographerRepo(db).Get(context.Background(), "ph-404")
	assert.True(t, apperr.IsNotFound(err))
}
