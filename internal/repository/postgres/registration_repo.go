package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventregistration/internal/domain"

	"github.com/google/uuid"
)

type registrationRepository struct {
	db DBTX
}

func NewRegistrationRepository(db DBTX) domain.RegistrationRepository {
	return &registrationRepository{db: db}
}

const registrationColumns = `id, event_id, ticket_type_id, first_name, last_name, email, phone_number, registration_date, status, total_amount, discount_code_used`

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	query := `
		INSERT INTO registrations (id, event_id, ticket_type_id, first_name, last_name, email, phone_number, registration_date, status, total_amount, discount_code_used)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		reg.ID, reg.EventID, reg.TicketTypeID, reg.FirstName, reg.LastName,
		reg.Email, reg.PhoneNumber, reg.RegistrationDate, string(reg.Status),
		reg.TotalAmount, reg.DiscountCodeUsed,
	)
	return err
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	reg, err := scanRegistrationRow(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = $1 ORDER BY registration_date`
	return r.list(ctx, query, eventID)
}

func (r *registrationRepository) ListByEmail(ctx context.Context, email string) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE email = $1 ORDER BY registration_date`
	return r.list(ctx, query, email)
}

func (r *registrationRepository) list(ctx context.Context, query string, arg any) ([]*domain.Registration, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := []*domain.Registration{}
	for rows.Next() {
		reg, err := scanRegistrationRow(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *registrationRepository) ExistsByEventAndEmail(ctx context.Context, eventID, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM registrations WHERE event_id = $1 AND email = $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, eventID, email).Scan(&exists)
	return exists, err
}

func (r *registrationRepository) ExistsByEventID(ctx context.Context, eventID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM registrations WHERE event_id = $1)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, eventID).Scan(&exists)
	return exists, err
}

func (r *registrationRepository) ExistsByTicketTypeID(ctx context.Context, ticketTypeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM registrations WHERE ticket_type_id = $1)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, ticketTypeID).Scan(&exists)
	return exists, err
}

func (r *registrationRepository) GetWaitlistedByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = $1 AND email = $2 AND status = $3`
	reg, err := scanRegistrationRow(r.db.QueryRowContext(ctx, query, eventID, email, string(domain.RegistrationStatusWaitlisted)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) CountConfirmedByEventID(ctx context.Context, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND status = $2`
	var count int
	err := r.db.QueryRowContext(ctx, query, eventID, string(domain.RegistrationStatusConfirmed)).Scan(&count)
	return count, err
}

func (r *registrationRepository) CountConfirmedByTicketTypeID(ctx context.Context, ticketTypeID string) (int, error) {
	query := `SELECT COUNT(*) FROM registrations WHERE ticket_type_id = $1 AND status = $2`
	var count int
	err := r.db.QueryRowContext(ctx, query, ticketTypeID, string(domain.RegistrationStatusConfirmed)).Scan(&count)
	return count, err
}

func (r *registrationRepository) UpdateStatus(ctx context.Context, id string, status domain.RegistrationStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE registrations SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *registrationRepository) MarkConfirmed(ctx context.Context, id string, registrationDate time.Time, totalAmount float64) error {
	query := `
		UPDATE registrations
		SET status = $2, registration_date = $3, total_amount = $4
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, string(domain.RegistrationStatusConfirmed), registrationDate, totalAmount)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanRegistrationRow(row rowScanner) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var status string
	if err := row.Scan(
		&reg.ID, &reg.EventID, &reg.TicketTypeID, &reg.FirstName, &reg.LastName,
		&reg.Email, &reg.PhoneNumber, &reg.RegistrationDate, &status,
		&reg.TotalAmount, &reg.DiscountCodeUsed,
	); err != nil {
		return nil, err
	}
	reg.Status = domain.RegistrationStatus(status)
	return reg, nil
}
