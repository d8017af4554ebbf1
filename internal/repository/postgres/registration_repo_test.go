package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"eventregistration/internal/domain"
)

var regDate = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func registrationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "event_id", "ticket_type_id", "first_name", "last_name", "email",
		"phone_number", "registration_date", "status", "total_amount", "discount_code_used",
	})
}

func TestRegistrationRepository_Create(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO registrations`).
		WithArgs(sqlmock.AnyArg(), "ev-1", "tt-1", "Ada", "Lovelace", "ada@example.com", "", regDate, "Confirmed", 75.0, "EARLY25").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewRegistrationRepository(db)
	reg := &domain.Registration{
		EventID:          "ev-1",
		TicketTypeID:     "tt-1",
		FirstName:        "Ada",
		LastName:         "Lovelace",
		Email:            "ada@example.com",
		RegistrationDate: regDate,
		Status:           domain.RegistrationStatusConfirmed,
		TotalAmount:      75,
		DiscountCodeUsed: "EARLY25",
	}
	require.NoError(t, repo.Create(ctx, reg))
	require.NotEmpty(t, reg.ID, "missing id is generated")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, ticket_type_id`).
			WithArgs("reg-1").
			WillReturnRows(registrationRows().
				AddRow("reg-1", "ev-1", "tt-1", "Ada", "Lovelace", "ada@example.com", "", regDate, "Waitlisted", 50.0, ""))

		repo := NewRegistrationRepository(db)
		reg, err := repo.GetByID(ctx, "reg-1")
		require.NoError(t, err)
		require.Equal(t, domain.RegistrationStatusWaitlisted, reg.Status)
		require.Equal(t, 50.0, reg.TotalAmount)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, ticket_type_id`).
			WithArgs("reg-missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewRegistrationRepository(db)
		_, err = repo.GetByID(ctx, "reg-missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRegistrationRepository_ExistsByEventAndEmail(t *testing.T) {
	// The duplicate check has no status filter; a cancelled registration
	// still blocks the email.
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM registrations WHERE event_id = \$1 AND email = \$2\)`).
		WithArgs("ev-1", "ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewRegistrationRepository(db)
	exists, err := repo.ExistsByEventAndEmail(ctx, "ev-1", "ada@example.com")
	require.NoError(t, err)
	require.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_CountConfirmed(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM registrations WHERE ticket_type_id = \$1 AND status = \$2`).
		WithArgs("tt-1", "Confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	repo := NewRegistrationRepository(db)
	count, err := repo.CountConfirmedByTicketTypeID(ctx, "tt-1")
	require.NoError(t, err)
	require.Equal(t, 3, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE registrations SET status = \$2 WHERE id = \$1`).
			WithArgs("reg-1", "Cancelled").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewRegistrationRepository(db)
		require.NoError(t, repo.UpdateStatus(ctx, "reg-1", domain.RegistrationStatusCancelled))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows is not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE registrations SET status = \$2 WHERE id = \$1`).
			WithArgs("reg-missing", "Cancelled").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewRegistrationRepository(db)
		err = repo.UpdateStatus(ctx, "reg-missing", domain.RegistrationStatusCancelled)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRegistrationRepository_MarkConfirmed(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE registrations\s+SET status = \$2, registration_date = \$3, total_amount = \$4\s+WHERE id = \$1`).
		WithArgs("reg-1", "Confirmed", regDate, 100.0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewRegistrationRepository(db)
	require.NoError(t, repo.MarkConfirmed(ctx, "reg-1", regDate, 100))
	require.NoError(t, mock.ExpectationsWereMet())
}
