package handler

import (
	"net/http"

	"github.com/Prodbylino/shiftflow/internal/schedule/service"
	"github.com/Prodbylino/shiftflow/pkg/httputil"
	"github.com/Prodbylino/shiftflow/pkg/logger"
)

// ProfileHandler handles the caller's own profile
type ProfileHandler struct {
	service *service.ProfileService
	logger  *logger.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(svc *service.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: svc,
		logger:  log,
	}
}

// ProfileRequest is the payload for updating the caller's profile
type ProfileRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=200"`
}

// Get returns the caller's profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Get(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, profile)
}

// Update updates the caller's profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	profile, err := h.service.Update(r.Context(), req.Email, req.FullName)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, profile)
}
