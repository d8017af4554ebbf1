package controllers

import (
	"log/slog"
	"net/http"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// CapacityReportSuccessResponse is the success envelope carrying a capacity report.
type CapacityReportSuccessResponse struct {
	Data  *domain.CapacityReport `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type CapacityController struct {
	Logger  *slog.Logger
	Service domain.CapacityService
}

func NewCapacityController(logger *slog.Logger, svc domain.CapacityService) *CapacityController {
	return &CapacityController{
		Logger:  logger,
		Service: svc,
	}
}

// GetCapacityReport godoc
// @Summary Get the capacity report for an event
// @Description Returns overall and per-ticket-type capacity, confirmed counts, and remaining slots. Waitlisted and cancelled registrations do not occupy slots.
// @Tags capacity
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.CapacityReportSuccessResponse "data contains the capacity report"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/capacity [get]
func (c *CapacityController) GetCapacityReport(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	report, err := c.Service.GetCapacityReport(r.Context(), eventID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, report)
}
