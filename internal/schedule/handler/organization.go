package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Prodbylino/shiftflow/internal/schedule/repository"
	"github.com/Prodbylino/shiftflow/internal/schedule/service"
	"github.com/Prodbylino/shiftflow/pkg/httputil"
	"github.com/Prodbylino/shiftflow/pkg/logger"
)

// OrganizationHandler handles organization endpoints
type OrganizationHandler struct {
	service *service.OrganizationService
	logger  *logger.Logger
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(svc *service.OrganizationService, log *logger.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		service: svc,
		logger:  log,
	}
}

// OrganizationRequest is the payload for creating or updating an organization
type OrganizationRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=120"`
	Color      string  `json:"color" validate:"omitempty,hexcolor"`
	HourlyRate float64 `json:"hourly_rate" validate:"gte=0"`
}

// Create creates an organization
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req OrganizationRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	org := &repository.Organization{
		Name:       req.Name,
		Color:      req.Color,
		HourlyRate: req.HourlyRate,
	}

	if err := h.service.Create(r.Context(), targetOwner(r), org); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, org)
}

// List lists the owner's organizations
func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.service.List(r.Context(), targetOwner(r))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, orgs)
}

// Get gets an organization by ID
func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	org, err := h.service.Get(r.Context(), targetOwner(r), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, org)
}

// Update updates an organization
func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req OrganizationRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	org := &repository.Organization{
		ID:         id,
		Name:       req.Name,
		Color:      req.Color,
		HourlyRate: req.HourlyRate,
	}

	if err := h.service.Update(r.Context(), targetOwner(r), org); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, org)
}

// Delete deletes an organization and its shifts
func (h *OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), targetOwner(r), id); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

// targetOwner reads the optional owner override. It is only honored
// for the privileged service caller; everyone else may name only
// themselves, which the service layer enforces.
func targetOwner(r *http.Request) string {
	return r.URL.Query().Get("owner")
}
