package services

import (
	"context"
	"fmt"

	"eventregistration/internal/domain"
)

type exportService struct {
	store domain.Store
}

// NewExportService creates an ExportService over the given store.
func NewExportService(store domain.Store) domain.ExportService {
	return &exportService{store: store}
}

func (s *exportService) ExportRegistrations(ctx context.Context, eventID string) ([]domain.RegistrationExportRow, error) {
	if _, err := s.store.Events().GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	regs, err := s.store.Registrations().ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	types, err := s.store.TicketTypes().ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list ticket types: %w", err)
	}

	nameByID := make(map[string]string, len(types))
	for _, tt := range types {
		nameByID[tt.ID] = tt.Name
	}

	rows := make([]domain.RegistrationExportRow, 0, len(regs))
	for _, reg := range regs {
		rows = append(rows, domain.RegistrationExportRow{
			RegistrationID:   reg.ID,
			FirstName:        reg.FirstName,
			LastName:         reg.LastName,
			Email:            reg.Email,
			PhoneNumber:      reg.PhoneNumber,
			TicketTypeName:   nameByID[reg.TicketTypeID],
			Status:           reg.Status,
			TotalAmount:      reg.TotalAmount,
			RegistrationDate: reg.RegistrationDate,
		})
	}
	return rows, nil
}
