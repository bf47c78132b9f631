package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmarkovic/jobster/internal/service"
	"github.com/dmarkovic/jobster/internal/transport/http/middleware"
)

type RoomHandler struct {
	roomService *service.RoomService
}

func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetPrincipal(r.Context())
	page := queryInt(r, "page", 1)
	search := r.URL.Query().Get("search")

	result, err := h.roomService.ListMine(r.Context(), viewer, page, search)
	if err != nil {
		log.Printf("ERROR listing rooms: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type openRoomInput struct {
	OtherUserID uuid.UUID `json:"other_user_id"`
	Name        string    `json:"name"`
}

func (h *RoomHandler) Open(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetPrincipal(r.Context())

	var input openRoomInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	room, err := h.roomService.Open(r.Context(), viewer, input.OtherUserID, input.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCannotRoomSelf):
			writeError(w, http.StatusBadRequest, "SELF_ROOM", "Cannot open a room with yourself")
		case errors.Is(err, service.ErrPrincipalNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			log.Printf("ERROR opening room: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, room)
}

type sendMessageInput struct {
	Content string `json:"content"`
}

func (h *RoomHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetPrincipal(r.Context())

	roomID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	var input sendMessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if strings.TrimSpace(input.Content) == "" {
		writeError(w, http.StatusBadRequest, "EMPTY_MESSAGE", "Message content is required")
		return
	}

	msg, err := h.roomService.SendMessage(r.Context(), viewer, roomID, input.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoomNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Room not found")
		case errors.Is(err, service.ErrNotRoomMember):
			writeError(w, http.StatusForbidden, "NOT_MEMBER", "You are not a member of this room")
		default:
			log.Printf("ERROR sending message to room %s: %v", roomID, err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

func (h *RoomHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetPrincipal(r.Context())

	roomID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	var before *uuid.UUID
	if raw := r.URL.Query().Get("before"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_CURSOR", "Invalid before cursor")
			return
		}
		before = &id
	}
	limit := queryInt(r, "limit", 50)

	result, err := h.roomService.ListMessages(r.Context(), viewer, roomID, before, limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoomNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Room not found")
		case errors.Is(err, service.ErrNotRoomMember):
			writeError(w, http.StatusForbidden, "NOT_MEMBER", "You are not a member of this room")
		default:
			log.Printf("ERROR listing messages for room %s: %v", roomID, err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
