package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/dmarkovic/jobster/internal/service"
	"github.com/dmarkovic/jobster/pkg/validator"
)

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit returns the tri-state contact response: success, warning (stored
// but email failed) or error (nothing stored).
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input service.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateContact(input.Name, input.Email, input.Subject, input.Message); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	status, err := h.contactService.Submit(r.Context(), input)
	if err != nil {
		log.Printf("ERROR processing contact form: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status":  string(service.ContactError),
			"message": "Sorry, there was an error sending your message.",
		})
		return
	}

	message := "Thank you for your message! We will get back to you soon."
	if status == service.ContactWarning {
		message = "Your message was received but there was an issue with email notification."
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  string(status),
		"message": message,
	})
}
