package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Prodbylino/shiftflow/internal/schedule/repository"
	"github.com/Prodbylino/shiftflow/internal/schedule/service"
	"github.com/Prodbylino/shiftflow/pkg/httputil"
	"github.com/Prodbylino/shiftflow/pkg/logger"
)

// ShiftHandler handles shift endpoints
type ShiftHandler struct {
	service *service.ShiftService
	logger  *logger.Logger
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(svc *service.ShiftService, log *logger.Logger) *ShiftHandler {
	return &ShiftHandler{
		service: svc,
		logger:  log,
	}
}

// ShiftRequest is the payload for creating or updating a shift.
// Times may be HH:MM or HH:MM:SS; dates are YYYY-MM-DD. EndDate is
// only needed for shifts that cross midnight.
type ShiftRequest struct {
	OrganizationID string  `json:"organization_id" validate:"required,uuid"`
	Title          string  `json:"title" validate:"required,max=200"`
	Date           string  `json:"date" validate:"required,datetime=2006-01-02"`
	EndDate        *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime      string  `json:"start_time" validate:"required"`
	EndTime        string  `json:"end_time" validate:"required"`
	Notes          *string `json:"notes,omitempty"`
}

func (req *ShiftRequest) toShift(id string) *repository.Shift {
	return &repository.Shift{
		ID:             id,
		OrganizationID: req.OrganizationID,
		Title:          req.Title,
		Date:           req.Date,
		EndDate:        req.EndDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Notes:          req.Notes,
	}
}

// Create creates a shift
func (h *ShiftHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ShiftRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	shift := req.toShift("")
	if err := h.service.Create(r.Context(), targetOwner(r), shift); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, shift)
}

// List lists shifts with optional organization and date-range filters
func (h *ShiftHandler) List(w http.ResponseWriter, r *http.Request) {
	params := repository.ShiftListParams{
		Page:    1,
		PerPage: 50,
	}

	q := r.URL.Query()
	if page, _ := strconv.Atoi(q.Get("page")); page > 0 {
		params.Page = page
	}
	if perPage, _ := strconv.Atoi(q.Get("per_page")); perPage > 0 && perPage <= 100 {
		params.PerPage = perPage
	}
	if orgID := q.Get("organization_id"); orgID != "" {
		params.OrganizationID = &orgID
	}
	if from := q.Get("from"); from != "" {
		params.From = &from
	}
	if to := q.Get("to"); to != "" {
		params.To = &to
	}

	shifts, total, err := h.service.List(r.Context(), targetOwner(r), params)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	totalPages := int(total) / params.PerPage
	if int(total)%params.PerPage > 0 {
		totalPages++
	}

	httputil.JSONWithMeta(w, http.StatusOK, shifts, &httputil.Meta{
		Page:       params.Page,
		PerPage:    params.PerPage,
		Total:      total,
		TotalPages: totalPages,
	})
}

// Get gets a shift by ID
func (h *ShiftHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	shift, err := h.service.Get(r.Context(), targetOwner(r), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, shift)
}

// Update updates a shift
func (h *ShiftHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ShiftRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	shift := req.toShift(id)
	if err := h.service.Update(r.Context(), targetOwner(r), shift); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, shift)
}

// Delete deletes a shift
func (h *ShiftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), targetOwner(r), id); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}
