package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmarkovic/jobster/internal/domain"
	"github.com/dmarkovic/jobster/internal/service"
	"github.com/dmarkovic/jobster/internal/transport/http/middleware"
)

type ApplicationHandler struct {
	applicationService *service.ApplicationService
}

func NewApplicationHandler(applicationService *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetPrincipal(r.Context())
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 0)
	search := r.URL.Query().Get("search")

	result, err := h.applicationService.ListMine(r.Context(), viewer, page, perPage, search)
	if err != nil {
		if errors.Is(err, service.ErrApplicantsOnly) {
			writeError(w, http.StatusForbidden, "APPLICANTS_ONLY", "Only professionals can view applications")
		} else {
			log.Printf("ERROR listing applications: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *ApplicationHandler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetPrincipal(r.Context())
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 0)
	search := r.URL.Query().Get("search")

	result, err := h.applicationService.ListApplicants(r.Context(), viewer, page, perPage, search)
	if err != nil {
		if errors.Is(err, service.ErrEmployersOnly) {
			writeError(w, http.StatusForbidden, "EMPLOYERS_ONLY", "Only companies can view the applicants page")
		} else {
			log.Printf("ERROR listing applicants: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetPrincipal(r.Context())

	postingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid posting ID")
		return
	}

	app, err := h.applicationService.Apply(r.Context(), viewer, postingID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrApplicantsOnly):
			writeError(w, http.StatusForbidden, "APPLICANTS_ONLY", "Only professionals can apply to jobs")
		case errors.Is(err, service.ErrPostingNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Posting not found")
		case errors.Is(err, service.ErrPostingInactive):
			writeError(w, http.StatusConflict, "POSTING_INACTIVE", "This posting is no longer active")
		case errors.Is(err, service.ErrAlreadyApplied):
			writeError(w, http.StatusConflict, "ALREADY_APPLIED", "You have already applied to this job")
		default:
			log.Printf("ERROR applying to %s: %v", postingID, err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, app)
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetPrincipal(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid application ID")
		return
	}

	app, err := h.applicationService.Get(r.Context(), viewer, id)
	if err != nil {
		if errors.Is(err, service.ErrApplicationNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Application not found")
		} else {
			log.Printf("ERROR getting application %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, app)
}

type decideInput struct {
	Status domain.ApplicationStatus `json:"status"`
}

func (h *ApplicationHandler) Decide(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetPrincipal(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid application ID")
		return
	}

	var input decideInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.Status != domain.StatusAccepted && input.Status != domain.StatusRejected {
		writeError(w, http.StatusBadRequest, "INVALID_STATUS", "Status must be accepted or rejected")
		return
	}

	app, err := h.applicationService.Decide(r.Context(), viewer, id, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmployersOnly), errors.Is(err, service.ErrNotPostingOwner):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "You cannot decide on this application")
		case errors.Is(err, service.ErrApplicationNotFound), errors.Is(err, service.ErrPostingNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Application not found")
		default:
			log.Printf("ERROR deciding application %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, app)
}
