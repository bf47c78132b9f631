package handlers

import (
	"log"
	"net/http"

	"github.com/dmarkovic/jobster/internal/service"
	"github.com/dmarkovic/jobster/internal/transport/http/middleware"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetPrincipal(r.Context())

	summary, err := h.profileService.Summary(r.Context(), viewer)
	if err != nil {
		log.Printf("ERROR building profile for %s: %v", viewer.ID, err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
