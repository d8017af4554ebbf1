package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventregistration/internal/domain"

	"github.com/google/uuid"
)

type eventRepository struct {
	db DBTX
}

func NewEventRepository(db DBTX) domain.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, name, description, venue_name, venue_address, start_date, end_date, overall_capacity, registration_deadline, status`

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	query := `
		INSERT INTO events (id, name, description, venue_name, venue_address, start_date, end_date, overall_capacity, registration_deadline, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Name, event.Description, event.VenueName, event.VenueAddress,
		event.StartDate, event.EndDate, event.OverallCapacity,
		nullTime(event.RegistrationDeadline), string(event.Status),
	)
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return r.scanEvent(r.db.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	return r.scanEvent(r.db.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) List(ctx context.Context, status domain.EventStatus) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY start_date`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []*domain.Event{}
	for rows.Next() {
		ev, err := scanEventRow(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE events
		SET name = $2, description = $3, venue_name = $4, venue_address = $5,
		    start_date = $6, end_date = $7, overall_capacity = $8,
		    registration_deadline = $9, status = $10
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		event.ID, event.Name, event.Description, event.VenueName, event.VenueAddress,
		event.StartDate, event.EndDate, event.OverallCapacity,
		nullTime(event.RegistrationDeadline), string(event.Status),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *eventRepository) scanEvent(row *sql.Row) (*domain.Event, error) {
	ev, err := scanEventRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return ev, nil
}

func scanEventRow(row rowScanner) (*domain.Event, error) {
	ev := &domain.Event{}
	var deadline sql.NullTime
	var status string
	if err := row.Scan(
		&ev.ID, &ev.Name, &ev.Description, &ev.VenueName, &ev.VenueAddress,
		&ev.StartDate, &ev.EndDate, &ev.OverallCapacity, &deadline, &status,
	); err != nil {
		return nil, err
	}
	if deadline.Valid {
		ev.RegistrationDeadline = &deadline.Time
	}
	ev.Status = domain.EventStatus(status)
	return ev, nil
}

// nullTime converts an optional time to its sql representation.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// nullFloat converts an optional float to its sql representation.
func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// nullInt converts an optional int to its sql representation.
func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

// requireRow maps "zero rows affected" to domain.ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
