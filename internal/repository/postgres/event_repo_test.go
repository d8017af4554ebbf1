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

var (
	startDate = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	endDate   = time.Date(2026, 4, 3, 18, 0, 0, 0, time.UTC)
)

func eventRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "venue_name", "venue_address",
		"start_date", "end_date", "overall_capacity", "registration_deadline", "status",
	})
}

func TestEventRepository_GetByIDForUpdate(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM events WHERE id = \$1 FOR UPDATE`).
		WithArgs("ev-1").
		WillReturnRows(eventRows().
			AddRow("ev-1", "GopherCon", "", "", "", startDate, endDate, 100, nil, "Published"))

	repo := NewEventRepository(db)
	ev, err := repo.GetByIDForUpdate(ctx, "ev-1")
	require.NoError(t, err)
	require.Equal(t, domain.EventStatusPublished, ev.Status)
	require.Nil(t, ev.RegistrationDeadline)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("all events", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM events`).
			WillReturnRows(eventRows().
				AddRow("ev-1", "A", "", "", "", startDate, endDate, 100, nil, "Draft").
				AddRow("ev-2", "B", "", "", "", startDate, endDate, 50, nil, "Published"))

		repo := NewEventRepository(db)
		events, err := repo.List(ctx, "")
		require.NoError(t, err)
		require.Len(t, events, 2)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filtered by status", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM events.*WHERE status = \$1`).
			WithArgs("Published").
			WillReturnRows(eventRows().
				AddRow("ev-2", "B", "", "", "", startDate, endDate, 50, nil, "Published"))

		repo := NewEventRepository(db)
		events, err := repo.List(ctx, domain.EventStatusPublished)
		require.NoError(t, err)
		require.Len(t, events, 1)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
		WithArgs("ev-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewEventRepository(db)
	require.ErrorIs(t, repo.Delete(ctx, "ev-missing"), domain.ErrNotFound)
}

func TestEventRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM events WHERE id = \$1`).
		WithArgs("ev-missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewEventRepository(db)
	_, err = repo.GetByID(ctx, "ev-missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
