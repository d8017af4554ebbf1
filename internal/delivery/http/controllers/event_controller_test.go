package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

type fakeEventService struct {
	createFn func(ctx context.Context, event *domain.Event) error
	listFn   func(ctx context.Context, status domain.EventStatus) ([]*domain.Event, error)
	getFn    func(ctx context.Context, id string) (*domain.Event, error)
	updateFn func(ctx context.Context, event *domain.Event) (*domain.Event, error)
	deleteFn func(ctx context.Context, id string) error
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	return f.createFn(ctx, event)
}

func (f *fakeEventService) ListEvents(ctx context.Context, status domain.EventStatus) ([]*domain.Event, error) {
	return f.listFn(ctx, status)
}

func (f *fakeEventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return f.getFn(ctx, id)
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	return f.updateFn(ctx, event)
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func validEventBody(t *testing.T) []byte {
	t.Helper()
	b, err := json.Marshal(EventRequest{
		Name:            "Go Conference",
		VenueName:       "Convention Center",
		StartDate:       time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 6, 2, 17, 0, 0, 0, time.UTC),
		OverallCapacity: 200,
	})
	require.NoError(t, err)
	return b
}

func TestCreateEventHandler(t *testing.T) {
	t.Run("created with draft default", func(t *testing.T) {
		var created *domain.Event
		svc := &fakeEventService{
			createFn: func(_ context.Context, event *domain.Event) error {
				event.ID = testEventID
				created = event
				return nil
			},
		}
		c := NewEventController(discardLogger(), svc)

		req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(validEventBody(t)))
		rr := httptest.NewRecorder()

		c.CreateEvent(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		require.NotNil(t, created)
		assert.Equal(t, domain.EventStatusDraft, created.Status)

		data, apiErr := decodeEnvelope(t, rr.Body)
		require.Nil(t, apiErr)
		var event domain.Event
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, testEventID, event.ID)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		c := NewEventController(discardLogger(), &fakeEventService{})

		req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader([]byte(`{"name": ""}`)))
		rr := httptest.NewRecorder()

		c.CreateEvent(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		_, apiErr := decodeEnvelope(t, rr.Body)
		require.NotNil(t, apiErr)
		assert.Equal(t, helpers.ErrCodeBadRequest, apiErr.Code)
	})

	t.Run("service validation error", func(t *testing.T) {
		svc := &fakeEventService{
			createFn: func(_ context.Context, _ *domain.Event) error {
				return domain.ErrInvalidInput
			},
		}
		c := NewEventController(discardLogger(), svc)

		req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(validEventBody(t)))
		rr := httptest.NewRecorder()

		c.CreateEvent(rr, req)
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListEventsHandler(t *testing.T) {
	t.Run("passes status filter through", func(t *testing.T) {
		var gotStatus domain.EventStatus
		svc := &fakeEventService{
			listFn: func(_ context.Context, status domain.EventStatus) ([]*domain.Event, error) {
				gotStatus = status
				return []*domain.Event{{ID: testEventID, Status: status}}, nil
			},
		}
		c := NewEventController(discardLogger(), svc)

		req := httptest.NewRequest(http.MethodGet, "/api/events?status=Published", nil)
		rr := httptest.NewRecorder()

		c.ListEvents(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, domain.EventStatusPublished, gotStatus)
		data, apiErr := decodeEnvelope(t, rr.Body)
		require.Nil(t, apiErr)
		var events []*domain.Event
		require.NoError(t, json.Unmarshal(data, &events))
		require.Len(t, events, 1)
	})

	t.Run("rejects invalid status filter", func(t *testing.T) {
		c := NewEventController(discardLogger(), &fakeEventService{})

		req := httptest.NewRequest(http.MethodGet, "/api/events?status=Bogus", nil)
		rr := httptest.NewRecorder()

		c.ListEvents(rr, req)
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetEventHandler(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "found", wantStatus: http.StatusOK},
		{name: "not found", serviceErr: domain.ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeEventService{
				getFn: func(_ context.Context, id string) (*domain.Event, error) {
					if tc.serviceErr != nil {
						return nil, tc.serviceErr
					}
					return &domain.Event{ID: id, Name: "Go Conference"}, nil
				},
			}
			c := NewEventController(discardLogger(), svc)

			req := httptest.NewRequest(http.MethodGet, "/api/events/"+testEventID, nil)
			req.SetPathValue("eventID", testEventID)
			rr := httptest.NewRecorder()

			c.GetEvent(rr, req)
			require.Equal(t, tc.wantStatus, rr.Code)
		})
	}
}

func TestUpdateEventHandler(t *testing.T) {
	svc := &fakeEventService{
		updateFn: func(_ context.Context, event *domain.Event) (*domain.Event, error) {
			return nil, domain.ErrHasRegistrations
		},
	}
	c := NewEventController(discardLogger(), svc)

	req := httptest.NewRequest(http.MethodPut, "/api/events/"+testEventID, bytes.NewReader(validEventBody(t)))
	req.SetPathValue("eventID", testEventID)
	rr := httptest.NewRecorder()

	c.UpdateEvent(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	_, apiErr := decodeEnvelope(t, rr.Body)
	require.NotNil(t, apiErr)
	assert.Equal(t, helpers.ErrCodeConflict, apiErr.Code)
}

func TestDeleteEventHandler(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc := &fakeEventService{
			deleteFn: func(_ context.Context, id string) error { return nil },
		}
		c := NewEventController(discardLogger(), svc)

		req := httptest.NewRequest(http.MethodDelete, "/api/events/"+testEventID, nil)
		req.SetPathValue("eventID", testEventID)
		rr := httptest.NewRecorder()

		c.DeleteEvent(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("blocked by registrations", func(t *testing.T) {
		svc := &fakeEventService{
			deleteFn: func(_ context.Context, id string) error { return domain.ErrHasRegistrations },
		}
		c := NewEventController(discardLogger(), svc)

		req := httptest.NewRequest(http.MethodDelete, "/api/events/"+testEventID, nil)
		req.SetPathValue("eventID", testEventID)
		rr := httptest.NewRecorder()

		c.DeleteEvent(rr, req)
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
