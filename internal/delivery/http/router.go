package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventregistration/internal/delivery/http/controllers"
)

// Controllers bundles the controllers the router wires up.
type Controllers struct {
	Events             *controllers.EventController
	TicketTypes        *controllers.TicketTypeController
	Registrations      *controllers.RegistrationController
	Waitlist           *controllers.WaitlistController
	Discounts          *controllers.DiscountController
	CancellationPolicy *controllers.CancellationPolicyController
	Capacity           *controllers.CapacityController
	Export             *controllers.ExportController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("POST /api/events", c.Events.CreateEvent)
	mux.HandleFunc("GET /api/events", c.Events.ListEvents)
	mux.HandleFunc("GET /api/events/{eventID}", c.Events.GetEvent)
	mux.HandleFunc("PUT /api/events/{eventID}", c.Events.UpdateEvent)
	mux.HandleFunc("DELETE /api/events/{eventID}", c.Events.DeleteEvent)
	mux.HandleFunc("GET /api/events/{eventID}/capacity", c.Capacity.GetCapacityReport)

	// Ticket types
	mux.HandleFunc("POST /api/events/{eventID}/ticket-types", c.TicketTypes.CreateTicketType)
	mux.HandleFunc("GET /api/events/{eventID}/ticket-types", c.TicketTypes.ListTicketTypes)
	mux.HandleFunc("GET /api/events/{eventID}/ticket-types/{ticketTypeID}", c.TicketTypes.GetTicketType)
	mux.HandleFunc("PUT /api/events/{eventID}/ticket-types/{ticketTypeID}", c.TicketTypes.UpdateTicketType)
	mux.HandleFunc("DELETE /api/events/{eventID}/ticket-types/{ticketTypeID}", c.TicketTypes.DeleteTicketType)

	// Discount codes
	mux.HandleFunc("POST /api/events/{eventID}/discount-codes", c.Discounts.CreateDiscountCode)
	mux.HandleFunc("GET /api/events/{eventID}/discount-codes", c.Discounts.ListDiscountCodes)
	mux.HandleFunc("GET /api/discount-codes/{code}", c.Discounts.GetDiscountCode)
	mux.HandleFunc("PUT /api/discount-codes/{codeID}", c.Discounts.UpdateDiscountCode)
	mux.HandleFunc("DELETE /api/discount-codes/{codeID}", c.Discounts.DeleteDiscountCode)
	mux.HandleFunc("POST /api/discount-codes/{code}/validate", c.Discounts.ValidateDiscountCode)

	// Cancellation policy
	mux.HandleFunc("POST /api/events/{eventID}/cancellation-policy", c.CancellationPolicy.CreatePolicy)
	mux.HandleFunc("GET /api/events/{eventID}/cancellation-policy", c.CancellationPolicy.GetPolicy)
	mux.HandleFunc("PUT /api/events/{eventID}/cancellation-policy", c.CancellationPolicy.UpdatePolicy)

	// Registrations
	mux.HandleFunc("POST /api/events/{eventID}/registrations", c.Registrations.Register)
	mux.HandleFunc("GET /api/events/{eventID}/registrations", c.Registrations.ListRegistrations)
	mux.HandleFunc("GET /api/events/{eventID}/registrations/export", c.Export.ExportRegistrations)
	mux.HandleFunc("GET /api/registrations/{registrationID}", c.Registrations.GetRegistration)
	mux.HandleFunc("GET /api/registrations/by-email/{email}", c.Registrations.ListRegistrationsByEmail)
	mux.HandleFunc("DELETE /api/registrations/{registrationID}", c.Registrations.DeleteRegistration)
	mux.HandleFunc("POST /api/registrations/{registrationID}/cancel", c.Registrations.CancelRegistration)

	// Waitlist
	mux.HandleFunc("GET /api/events/{eventID}/waitlist", c.Waitlist.ListWaitlist)
	mux.HandleFunc("GET /api/events/{eventID}/waitlist/{ticketTypeID}", c.Waitlist.ListWaitlistForTicketType)
	mux.HandleFunc("POST /api/waitlist/{waitlistID}/confirm", c.Waitlist.ConfirmWaitlistEntry)
	mux.HandleFunc("DELETE /api/waitlist/{waitlistID}", c.Waitlist.RemoveWaitlistEntry)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
