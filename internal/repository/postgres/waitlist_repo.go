package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventregistration/internal/domain"

	"github.com/google/uuid"
)

type waitlistRepository struct {
	db DBTX
}

func NewWaitlistRepository(db DBTX) domain.WaitlistRepository {
	return &waitlistRepository{db: db}
}

const waitlistColumns = `id, event_id, ticket_type_id, first_name, last_name, email, phone_number, position, joined_date, promotion_expiry, discount_code`

func (r *waitlistRepository) Create(ctx context.Context, entry *domain.WaitlistEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	query := `
		INSERT INTO waitlist_entries (id, event_id, ticket_type_id, first_name, last_name, email, phone_number, position, joined_date, promotion_expiry, discount_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.EventID, entry.TicketTypeID, entry.FirstName, entry.LastName,
		entry.Email, entry.PhoneNumber, entry.Position, entry.JoinedDate,
		nullTime(entry.PromotionExpiry), entry.DiscountCode,
	)
	return err
}

func (r *waitlistRepository) GetByID(ctx context.Context, id string) (*domain.WaitlistEntry, error) {
	query := `SELECT ` + waitlistColumns + ` FROM waitlist_entries WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *waitlistRepository) PeekNext(ctx context.Context, eventID, ticketTypeID string) (*domain.WaitlistEntry, error) {
	query := `
		SELECT ` + waitlistColumns + `
		FROM waitlist_entries
		WHERE event_id = $1 AND ticket_type_id = $2
		ORDER BY position
		LIMIT 1
	`
	return r.getOne(ctx, query, eventID, ticketTypeID)
}

func (r *waitlistRepository) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.WaitlistEntry, error) {
	query := `
		SELECT ` + waitlistColumns + `
		FROM waitlist_entries
		WHERE event_id = $1 AND email = $2
	`
	return r.getOne(ctx, query, eventID, email)
}

func (r *waitlistRepository) getOne(ctx context.Context, query string, args ...any) (*domain.WaitlistEntry, error) {
	entry, err := scanWaitlistRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (r *waitlistRepository) MaxPosition(ctx context.Context, eventID, ticketTypeID string) (int, error) {
	query := `
		SELECT COALESCE(MAX(position), 0)
		FROM waitlist_entries
		WHERE event_id = $1 AND ticket_type_id = $2
	`
	var pos int
	err := r.db.QueryRowContext(ctx, query, eventID, ticketTypeID).Scan(&pos)
	return pos, err
}

func (r *waitlistRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.WaitlistEntry, error) {
	query := `SELECT ` + waitlistColumns + ` FROM waitlist_entries WHERE event_id = $1 ORDER BY position`
	return r.list(ctx, query, eventID)
}

func (r *waitlistRepository) ListByEventAndTicketType(ctx context.Context, eventID, ticketTypeID string) ([]*domain.WaitlistEntry, error) {
	query := `SELECT ` + waitlistColumns + ` FROM waitlist_entries WHERE event_id = $1 AND ticket_type_id = $2 ORDER BY position`
	return r.list(ctx, query, eventID, ticketTypeID)
}

func (r *waitlistRepository) list(ctx context.Context, query string, args ...any) ([]*domain.WaitlistEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*domain.WaitlistEntry{}
	for rows.Next() {
		entry, err := scanWaitlistRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *waitlistRepository) Remove(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM waitlist_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanWaitlistRow(row rowScanner) (*domain.WaitlistEntry, error) {
	entry := &domain.WaitlistEntry{}
	var expiry sql.NullTime
	if err := row.Scan(
		&entry.ID, &entry.EventID, &entry.TicketTypeID, &entry.FirstName, &entry.LastName,
		&entry.Email, &entry.PhoneNumber, &entry.Position, &entry.JoinedDate,
		&expiry, &entry.DiscountCode,
	); err != nil {
		return nil, err
	}
	if expiry.Valid {
		entry.PromotionExpiry = &expiry.Time
	}
	return entry, nil
}
