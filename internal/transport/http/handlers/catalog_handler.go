package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmarkovic/jobster/internal/service"
	"github.com/dmarkovic/jobster/internal/transport/http/middleware"
	"github.com/dmarkovic/jobster/pkg/validator"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetPrincipal(r.Context())
	page := queryInt(r, "page", 1)
	search := r.URL.Query().Get("search")

	result, err := h.catalogService.List(r.Context(), viewer, page, search)
	if err != nil {
		log.Printf("ERROR listing jobs: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetPrincipal(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid posting ID")
		return
	}

	posting, err := h.catalogService.Get(r.Context(), viewer, id)
	if err != nil {
		if errors.Is(err, service.ErrPostingNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Posting not found")
		} else {
			log.Printf("ERROR getting job %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, posting)
}

type createPostingInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetPrincipal(r.Context())

	var input createPostingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidatePosting(input.Title); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	posting, err := h.catalogService.Create(r.Context(), viewer, input.Title, input.Description, input.Location)
	if err != nil {
		if errors.Is(err, service.ErrEmployersOnly) {
			writeError(w, http.StatusForbidden, "EMPLOYERS_ONLY", "Only companies can post jobs")
		} else {
			log.Printf("ERROR creating job: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, posting)
}
