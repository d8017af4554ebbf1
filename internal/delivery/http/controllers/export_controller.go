package controllers

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// ExportListSuccessResponse is the success envelope for a JSON export.
type ExportListSuccessResponse struct {
	Data  []domain.RegistrationExportRow `json:"data"`
	Error *helpers.APIError              `json:"error"`
}

type ExportController struct {
	Logger  *slog.Logger
	Service domain.ExportService
}

func NewExportController(logger *slog.Logger, svc domain.ExportService) *ExportController {
	return &ExportController{
		Logger:  logger,
		Service: svc,
	}
}

var exportCSVHeader = []string{
	"registration_id", "first_name", "last_name", "email", "phone_number",
	"ticket_type", "status", "total_amount", "registration_date",
}

// ExportRegistrations godoc
// @Summary Export an event's registrations
// @Description Exports all registrations for the event, with the ticket type resolved to its name. The format query parameter selects csv (default) or json.
// @Tags export
// @Produce json
// @Produce text/csv
// @Param eventID path string true "Event ID (UUID)"
// @Param format query string false "Export format: csv or json" default(csv)
// @Success 200 {object} controllers.ExportListSuccessResponse "json format: data contains the export rows"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations/export [get]
func (c *ExportController) ExportRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "format must be csv or json")
		return
	}
	rows, err := c.Service.ExportRegistrations(r.Context(), eventID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	if format == "json" {
		helpers.WriteJSONSuccess(w, http.StatusOK, rows)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "registrations-"+eventID+".csv"))
	cw := csv.NewWriter(w)
	if err := cw.Write(exportCSVHeader); err != nil {
		c.Logger.ErrorContext(r.Context(), "csv write failed", "path", r.URL.Path, "err", err)
		return
	}
	for _, row := range rows {
		record := []string{
			row.RegistrationID,
			row.FirstName,
			row.LastName,
			row.Email,
			row.PhoneNumber,
			row.TicketTypeName,
			string(row.Status),
			fmt.Sprintf("%.2f", row.TotalAmount),
			row.RegistrationDate.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			c.Logger.ErrorContext(r.Context(), "csv write failed", "path", r.URL.Path, "err", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		c.Logger.ErrorContext(r.Context(), "csv flush failed", "path", r.URL.Path, "err", err)
	}
}
