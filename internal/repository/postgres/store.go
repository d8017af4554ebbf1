// Package postgres implements the domain repositories over database/sql with
// the lib/pq driver. Queries are plain SQL; no ORM.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"eventregistration/internal/domain"
)

// DBTX is the subset of *sql.DB and *sql.Tx the repositories use, so the same
// repository code runs inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store owns the database handle and implements domain.Store.
type Store struct {
	db *sql.DB
	bundle
}

// bundle binds one repository of each kind to a single DBTX.
type bundle struct {
	events      domain.EventRepository
	ticketTypes domain.TicketTypeRepository
	regs        domain.RegistrationRepository
	waitlist    domain.WaitlistRepository
	discounts   domain.DiscountCodeRepository
	policies    domain.CancellationPolicyRepository
}

func newBundle(db DBTX) bundle {
	return bundle{
		events:      NewEventRepository(db),
		ticketTypes: NewTicketTypeRepository(db),
		regs:        NewRegistrationRepository(db),
		waitlist:    NewWaitlistRepository(db),
		discounts:   NewDiscountCodeRepository(db),
		policies:    NewCancellationPolicyRepository(db),
	}
}

func (b bundle) Events() domain.EventRepository               { return b.events }
func (b bundle) TicketTypes() domain.TicketTypeRepository     { return b.ticketTypes }
func (b bundle) Registrations() domain.RegistrationRepository { return b.regs }
func (b bundle) Waitlist() domain.WaitlistRepository          { return b.waitlist }
func (b bundle) DiscountCodes() domain.DiscountCodeRepository { return b.discounts }
func (b bundle) CancellationPolicies() domain.CancellationPolicyRepository {
	return b.policies
}

// NewStore creates a Store over an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, bundle: newBundle(db)}
}

// WithinTx runs fn against repositories bound to one transaction. Any error
// from fn rolls the transaction back.
func (s *Store) WithinTx(ctx context.Context, fn func(tx domain.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(newBundle(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
