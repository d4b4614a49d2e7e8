package handler

import (
	"net/http"
	"strconv"

	"github.com/Prodbylino/shiftflow/internal/schedule/service"
	"github.com/Prodbylino/shiftflow/pkg/errors"
	"github.com/Prodbylino/shiftflow/pkg/httputil"
	"github.com/Prodbylino/shiftflow/pkg/logger"
)

// AnalyticsHandler handles the reporting endpoints
type AnalyticsHandler struct {
	service *service.AnalyticsService
	logger  *logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(svc *service.AnalyticsService, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: svc,
		logger:  log,
	}
}

// MonthlySummary returns per-organization hours for one calendar month
func (h *AnalyticsHandler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	year, err := intParam(r, "year")
	if err != nil {
		httputil.Error(w, err)
		return
	}
	month, err := intParam(r, "month")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	summaries, err := h.service.MonthlySummary(r.Context(), targetOwner(r), year, month)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, summaries)
}

// FinancialYearSummary returns per-organization hours for one financial year
func (h *AnalyticsHandler) FinancialYearSummary(w http.ResponseWriter, r *http.Request) {
	fyStart, err := intParam(r, "fy_start")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	summaries, err := h.service.FinancialYearSummary(r.Context(), targetOwner(r), fyStart)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, summaries)
}

// FinancialYearShifts lists the individual shifts of one financial year
func (h *AnalyticsHandler) FinancialYearShifts(w http.ResponseWriter, r *http.Request) {
	fyStart, err := intParam(r, "fy_start")
	if err != nil {
		httputil.Error(w, err)
		return
	}

	shifts, err := h.service.ShiftsByFinancialYear(r.Context(), targetOwner(r), fyStart)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, shifts)
}

func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errors.BadRequest(name + " query parameter is required")
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.BadRequest(name + " must be an integer")
	}

	return value, nil
}
