package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventregistration/internal/domain"
)

// memStore is an in-memory domain.Store for service tests. WithinTx runs the
// callback directly against the store; rollback is not simulated, so tests
// assert on successful paths and on errors surfacing before any write.
type memStore struct {
	events    []*domain.Event
	tickets   []*domain.TicketType
	regs      []*domain.Registration
	waitlist  []*domain.WaitlistEntry
	discounts []*domain.DiscountCode
	policies  []*domain.CancellationPolicy
}

func newMemStore() *memStore { return &memStore{} }

func (s *memStore) Events() domain.EventRepository               { return memEventRepo{s} }
func (s *memStore) TicketTypes() domain.TicketTypeRepository     { return memTicketTypeRepo{s} }
func (s *memStore) Registrations() domain.RegistrationRepository { return memRegistrationRepo{s} }
func (s *memStore) Waitlist() domain.WaitlistRepository          { return memWaitlistRepo{s} }
func (s *memStore) DiscountCodes() domain.DiscountCodeRepository { return memDiscountRepo{s} }
func (s *memStore) CancellationPolicies() domain.CancellationPolicyRepository {
	return memPolicyRepo{s}
}

func (s *memStore) WithinTx(_ context.Context, fn func(tx domain.Repositories) error) error {
	return fn(s)
}

type memEventRepo struct{ s *memStore }

func (r memEventRepo) Create(_ context.Context, ev *domain.Event) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	r.s.events = append(r.s.events, ev)
	return nil
}

func (r memEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	for _, ev := range r.s.events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memEventRepo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	return r.GetByID(ctx, id)
}

func (r memEventRepo) List(_ context.Context, status domain.EventStatus) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, ev := range r.s.events {
		if status == "" || ev.Status == status {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r memEventRepo) Update(_ context.Context, ev *domain.Event) error {
	for i, cur := range r.s.events {
		if cur.ID == ev.ID {
			r.s.events[i] = ev
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r memEventRepo) Delete(_ context.Context, id string) error {
	for i, ev := range r.s.events {
		if ev.ID == id {
			r.s.events = append(r.s.events[:i], r.s.events[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memTicketTypeRepo struct{ s *memStore }

func (r memTicketTypeRepo) Create(_ context.Context, tt *domain.TicketType) error {
	if tt.ID == "" {
		tt.ID = uuid.NewString()
	}
	r.s.tickets = append(r.s.tickets, tt)
	return nil
}

func (r memTicketTypeRepo) GetByID(_ context.Context, eventID, id string) (*domain.TicketType, error) {
	for _, tt := range r.s.tickets {
		if tt.ID == id && tt.EventID == eventID {
			return tt, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memTicketTypeRepo) ListByEventID(_ context.Context, eventID string) ([]*domain.TicketType, error) {
	var out []*domain.TicketType
	for _, tt := range r.s.tickets {
		if tt.EventID == eventID {
			out = append(out, tt)
		}
	}
	return out, nil
}

func (r memTicketTypeRepo) SumCapacity(_ context.Context, eventID, excludeID string) (int, error) {
	sum := 0
	for _, tt := range r.s.tickets {
		if tt.EventID == eventID && tt.ID != excludeID {
			sum += tt.Capacity
		}
	}
	return sum, nil
}

func (r memTicketTypeRepo) Update(_ context.Context, tt *domain.TicketType) error {
	for i, cur := range r.s.tickets {
		if cur.ID == tt.ID {
			r.s.tickets[i] = tt
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r memTicketTypeRepo) Delete(_ context.Context, id string) error {
	for i, tt := range r.s.tickets {
		if tt.ID == id {
			r.s.tickets = append(r.s.tickets[:i], r.s.tickets[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memRegistrationRepo struct{ s *memStore }

func (r memRegistrationRepo) Create(_ context.Context, reg *domain.Registration) error {
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	r.s.regs = append(r.s.regs, reg)
	return nil
}

func (r memRegistrationRepo) GetByID(_ context.Context, id string) (*domain.Registration, error) {
	for _, reg := range r.s.regs {
		if reg.ID == id {
			return reg, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memRegistrationRepo) ListByEventID(_ context.Context, eventID string) ([]*domain.Registration, error) {
	var out []*domain.Registration
	for _, reg := range r.s.regs {
		if reg.EventID == eventID {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (r memRegistrationRepo) ListByEmail(_ context.Context, email string) ([]*domain.Registration, error) {
	var out []*domain.Registration
	for _, reg := range r.s.regs {
		if reg.Email == email {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (r memRegistrationRepo) ExistsByEventAndEmail(_ context.Context, eventID, email string) (bool, error) {
	for _, reg := range r.s.regs {
		if reg.EventID == eventID && reg.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r memRegistrationRepo) ExistsByEventID(_ context.Context, eventID string) (bool, error) {
	for _, reg := range r.s.regs {
		if reg.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (r memRegistrationRepo) ExistsByTicketTypeID(_ context.Context, ticketTypeID string) (bool, error) {
	for _, reg := range r.s.regs {
		if reg.TicketTypeID == ticketTypeID {
			return true, nil
		}
	}
	return false, nil
}

func (r memRegistrationRepo) GetWaitlistedByEventAndEmail(_ context.Context, eventID, email string) (*domain.Registration, error) {
	for _, reg := range r.s.regs {
		if reg.EventID == eventID && reg.Email == email && reg.Status == domain.RegistrationStatusWaitlisted {
			return reg, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memRegistrationRepo) CountConfirmedByEventID(_ context.Context, eventID string) (int, error) {
	n := 0
	for _, reg := range r.s.regs {
		if reg.EventID == eventID && reg.Status == domain.RegistrationStatusConfirmed {
			n++
		}
	}
	return n, nil
}

func (r memRegistrationRepo) CountConfirmedByTicketTypeID(_ context.Context, ticketTypeID string) (int, error) {
	n := 0
	for _, reg := range r.s.regs {
		if reg.TicketTypeID == ticketTypeID && reg.Status == domain.RegistrationStatusConfirmed {
			n++
		}
	}
	return n, nil
}

func (r memRegistrationRepo) UpdateStatus(_ context.Context, id string, status domain.RegistrationStatus) error {
	for _, reg := range r.s.regs {
		if reg.ID == id {
			reg.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r memRegistrationRepo) MarkConfirmed(_ context.Context, id string, registrationDate time.Time, totalAmount float64) error {
	for _, reg := range r.s.regs {
		if reg.ID == id {
			reg.Status = domain.RegistrationStatusConfirmed
			reg.RegistrationDate = registrationDate
			reg.TotalAmount = totalAmount
			return nil
		}
	}
	return domain.ErrNotFound
}

type memWaitlistRepo struct{ s *memStore }

func (r memWaitlistRepo) Create(_ context.Context, entry *domain.WaitlistEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	r.s.waitlist = append(r.s.waitlist, entry)
	return nil
}

func (r memWaitlistRepo) GetByID(_ context.Context, id string) (*domain.WaitlistEntry, error) {
	for _, e := range r.s.waitlist {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memWaitlistRepo) PeekNext(_ context.Context, eventID, ticketTypeID string) (*domain.WaitlistEntry, error) {
	var next *domain.WaitlistEntry
	for _, e := range r.s.waitlist {
		if e.EventID != eventID || e.TicketTypeID != ticketTypeID {
			continue
		}
		if next == nil || e.Position < next.Position {
			next = e
		}
	}
	if next == nil {
		return nil, domain.ErrNotFound
	}
	return next, nil
}

func (r memWaitlistRepo) GetByEventAndEmail(_ context.Context, eventID, email string) (*domain.WaitlistEntry, error) {
	for _, e := range r.s.waitlist {
		if e.EventID == eventID && e.Email == email {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memWaitlistRepo) MaxPosition(_ context.Context, eventID, ticketTypeID string) (int, error) {
	maxPos := 0
	for _, e := range r.s.waitlist {
		if e.EventID == eventID && e.TicketTypeID == ticketTypeID && e.Position > maxPos {
			maxPos = e.Position
		}
	}
	return maxPos, nil
}

func (r memWaitlistRepo) ListByEventID(_ context.Context, eventID string) ([]*domain.WaitlistEntry, error) {
	var out []*domain.WaitlistEntry
	for _, e := range r.s.waitlist {
		if e.EventID == eventID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r memWaitlistRepo) ListByEventAndTicketType(_ context.Context, eventID, ticketTypeID string) ([]*domain.WaitlistEntry, error) {
	var out []*domain.WaitlistEntry
	for _, e := range r.s.waitlist {
		if e.EventID == eventID && e.TicketTypeID == ticketTypeID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r memWaitlistRepo) Remove(_ context.Context, id string) error {
	for i, e := range r.s.waitlist {
		if e.ID == id {
			r.s.waitlist = append(r.s.waitlist[:i], r.s.waitlist[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memDiscountRepo struct{ s *memStore }

func (r memDiscountRepo) Create(_ context.Context, code *domain.DiscountCode) error {
	if code.ID == "" {
		code.ID = uuid.NewString()
	}
	r.s.discounts = append(r.s.discounts, code)
	return nil
}

func (r memDiscountRepo) GetByID(_ context.Context, id string) (*domain.DiscountCode, error) {
	for _, c := range r.s.discounts {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memDiscountRepo) GetByEventAndCode(_ context.Context, eventID, code string) (*domain.DiscountCode, error) {
	for _, c := range r.s.discounts {
		if c.EventID == eventID && strings.EqualFold(c.Code, code) {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memDiscountRepo) GetByCode(_ context.Context, code string) (*domain.DiscountCode, error) {
	for _, c := range r.s.discounts {
		if strings.EqualFold(c.Code, code) {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memDiscountRepo) ListByEventID(_ context.Context, eventID string) ([]*domain.DiscountCode, error) {
	var out []*domain.DiscountCode
	for _, c := range r.s.discounts {
		if c.EventID == eventID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r memDiscountRepo) Update(_ context.Context, code *domain.DiscountCode) error {
	for i, c := range r.s.discounts {
		if c.ID == code.ID {
			r.s.discounts[i] = code
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r memDiscountRepo) Delete(_ context.Context, id string) error {
	for i, c := range r.s.discounts {
		if c.ID == id {
			r.s.discounts = append(r.s.discounts[:i], r.s.discounts[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r memDiscountRepo) IncrementUses(_ context.Context, id string) error {
	for _, c := range r.s.discounts {
		if c.ID == id {
			c.CurrentUses++
			return nil
		}
	}
	return domain.ErrNotFound
}

type memPolicyRepo struct{ s *memStore }

func (r memPolicyRepo) Create(_ context.Context, policy *domain.CancellationPolicy) error {
	if policy.ID == "" {
		policy.ID = uuid.NewString()
	}
	r.s.policies = append(r.s.policies, policy)
	return nil
}

func (r memPolicyRepo) GetByEventID(_ context.Context, eventID string) (*domain.CancellationPolicy, error) {
	for _, p := range r.s.policies {
		if p.EventID == eventID {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memPolicyRepo) Update(_ context.Context, policy *domain.CancellationPolicy) error {
	for i, p := range r.s.policies {
		if p.EventID == policy.EventID {
			policy.ID = p.ID
			r.s.policies[i] = policy
			return nil
		}
	}
	return domain.ErrNotFound
}
