package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmarkovic/jobster/internal/service"
	"github.com/dmarkovic/jobster/internal/transport/http/middleware"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetPrincipal(r.Context())
	page := queryInt(r, "page", 1)
	search := r.URL.Query().Get("search")

	result, err := h.notificationService.ListMine(r.Context(), viewer, page, search)
	if err != nil {
		log.Printf("ERROR listing notifications: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetPrincipal(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid notification ID")
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), viewer, id); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Notification not found")
		} else {
			log.Printf("ERROR marking notification %s read: %v", id, err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
