package domain

import "context"

// Repositories bundles every repository. Methods return repositories bound to
// the same underlying handle: the plain database when obtained from a Store,
// or a single transaction inside WithinTx.
type Repositories interface {
	Events() EventRepository
	TicketTypes() TicketTypeRepository
	Registrations() RegistrationRepository
	Waitlist() WaitlistRepository
	DiscountCodes() DiscountCodeRepository
	CancellationPolicies() CancellationPolicyRepository
}

// Store is the persistence entry point. WithinTx runs fn against repositories
// bound to one transaction; fn returning an error rolls everything back, so a
// failed admission or cancellation leaves no partial rows behind.
type Store interface {
	Repositories
	WithinTx(ctx context.Context, fn func(tx Repositories) error) error
}
