package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventregistration/internal/domain"

	"github.com/google/uuid"
)

type ticketTypeRepository struct {
	db DBTX
}

func NewTicketTypeRepository(db DBTX) domain.TicketTypeRepository {
	return &ticketTypeRepository{db: db}
}

const ticketTypeColumns = `id, event_id, name, description, price, capacity, available_from, available_until`

func (r *ticketTypeRepository) Create(ctx context.Context, tt *domain.TicketType) error {
	if tt.ID == "" {
		tt.ID = uuid.NewString()
	}
	query := `
		INSERT INTO ticket_types (id, event_id, name, description, price, capacity, available_from, available_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		tt.ID, tt.EventID, tt.Name, tt.Description, tt.Price, tt.Capacity,
		nullTime(tt.AvailableFrom), nullTime(tt.AvailableUntil),
	)
	return err
}

func (r *ticketTypeRepository) GetByID(ctx context.Context, eventID, id string) (*domain.TicketType, error) {
	query := `SELECT ` + ticketTypeColumns + ` FROM ticket_types WHERE id = $1 AND event_id = $2`
	tt, err := scanTicketTypeRow(r.db.QueryRowContext(ctx, query, id, eventID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return tt, nil
}

func (r *ticketTypeRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.TicketType, error) {
	query := `SELECT ` + ticketTypeColumns + ` FROM ticket_types WHERE event_id = $1 ORDER BY price`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := []*domain.TicketType{}
	for rows.Next() {
		tt, err := scanTicketTypeRow(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, tt)
	}
	return types, rows.Err()
}

func (r *ticketTypeRepository) SumCapacity(ctx context.Context, eventID, excludeID string) (int, error) {
	query := `SELECT COALESCE(SUM(capacity), 0) FROM ticket_types WHERE event_id = $1`
	args := []any{eventID}
	if excludeID != "" {
		query += ` AND id <> $2`
		args = append(args, excludeID)
	}
	var sum int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&sum)
	return sum, err
}

func (r *ticketTypeRepository) Update(ctx context.Context, tt *domain.TicketType) error {
	query := `
		UPDATE ticket_types
		SET name = $2, description = $3, price = $4, capacity = $5,
		    available_from = $6, available_until = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		tt.ID, tt.Name, tt.Description, tt.Price, tt.Capacity,
		nullTime(tt.AvailableFrom), nullTime(tt.AvailableUntil),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ticketTypeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ticket_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanTicketTypeRow(row rowScanner) (*domain.TicketType, error) {
	tt := &domain.TicketType{}
	var from, until sql.NullTime
	if err := row.Scan(
		&tt.ID, &tt.EventID, &tt.Name, &tt.Description, &tt.Price, &tt.Capacity,
		&from, &until,
	); err != nil {
		return nil, err
	}
	if from.Valid {
		tt.AvailableFrom = &from.Time
	}
	if until.Valid {
		tt.AvailableUntil = &until.Time
	}
	return tt, nil
}
