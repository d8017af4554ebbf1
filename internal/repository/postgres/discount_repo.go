package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventregistration/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type discountCodeRepository struct {
	db DBTX
}

func NewDiscountCodeRepository(db DBTX) domain.DiscountCodeRepository {
	return &discountCodeRepository{db: db}
}

const discountColumns = `id, event_id, code, discount_type, discount_value, max_uses, current_uses, valid_from, valid_until, applicable_ticket_type_ids, status`

func (r *discountCodeRepository) Create(ctx context.Context, code *domain.DiscountCode) error {
	if code.ID == "" {
		code.ID = uuid.NewString()
	}
	query := `
		INSERT INTO discount_codes (id, event_id, code, discount_type, discount_value, max_uses, current_uses, valid_from, valid_until, applicable_ticket_type_ids, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		code.ID, code.EventID, code.Code, string(code.DiscountType), code.DiscountValue,
		nullInt(code.MaxUses), code.CurrentUses, code.ValidFrom, code.ValidUntil,
		pq.Array(code.ApplicableTicketTypeIDs), string(code.Status),
	)
	return err
}

func (r *discountCodeRepository) GetByID(ctx context.Context, id string) (*domain.DiscountCode, error) {
	query := `SELECT ` + discountColumns + ` FROM discount_codes WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *discountCodeRepository) GetByEventAndCode(ctx context.Context, eventID, code string) (*domain.DiscountCode, error) {
	query := `SELECT ` + discountColumns + ` FROM discount_codes WHERE event_id = $1 AND lower(code) = lower($2)`
	return r.getOne(ctx, query, eventID, code)
}

func (r *discountCodeRepository) GetByCode(ctx context.Context, code string) (*domain.DiscountCode, error) {
	query := `SELECT ` + discountColumns + ` FROM discount_codes WHERE lower(code) = lower($1)`
	return r.getOne(ctx, query, code)
}

func (r *discountCodeRepository) getOne(ctx context.Context, query string, args ...any) (*domain.DiscountCode, error) {
	code, err := scanDiscountRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return code, nil
}

func (r *discountCodeRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.DiscountCode, error) {
	query := `SELECT ` + discountColumns + ` FROM discount_codes WHERE event_id = $1 ORDER BY code`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	codes := []*domain.DiscountCode{}
	for rows.Next() {
		code, err := scanDiscountRow(rows)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

func (r *discountCodeRepository) Update(ctx context.Context, code *domain.DiscountCode) error {
	query := `
		UPDATE discount_codes
		SET code = $2, discount_type = $3, discount_value = $4, max_uses = $5,
		    valid_from = $6, valid_until = $7, applicable_ticket_type_ids = $8, status = $9
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		code.ID, code.Code, string(code.DiscountType), code.DiscountValue,
		nullInt(code.MaxUses), code.ValidFrom, code.ValidUntil,
		pq.Array(code.ApplicableTicketTypeIDs), string(code.Status),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *discountCodeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM discount_codes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *discountCodeRepository) IncrementUses(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE discount_codes SET current_uses = current_uses + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanDiscountRow(row rowScanner) (*domain.DiscountCode, error) {
	code := &domain.DiscountCode{}
	var dtype, status string
	var maxUses sql.NullInt64
	var ids pq.StringArray
	if err := row.Scan(
		&code.ID, &code.EventID, &code.Code, &dtype, &code.DiscountValue,
		&maxUses, &code.CurrentUses, &code.ValidFrom, &code.ValidUntil,
		&ids, &status,
	); err != nil {
		return nil, err
	}
	if maxUses.Valid {
		v := int(maxUses.Int64)
		code.MaxUses = &v
	}
	code.ApplicableTicketTypeIDs = []string(ids)
	code.DiscountType = domain.DiscountType(dtype)
	code.Status = domain.DiscountStatus(status)
	return code, nil
}
