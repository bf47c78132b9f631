package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmarkovic/jobster/internal/domain"
	"github.com/dmarkovic/jobster/internal/repository"
)

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrNotRoomMember     = errors.New("you are not a member of this room")
	ErrCannotRoomSelf    = errors.New("cannot open a room with yourself")
	ErrPrincipalNotFound = errors.New("user not found")
)

const roomsPageSize = 6

// Notifier pushes room events to connected websocket clients.
type Notifier interface {
	NotifyNewMessage(msg *domain.Message)
}

type RoomService struct {
	roomRepo      repository.RoomRepository
	principalRepo repository.PrincipalRepository
	notifier      Notifier
}

func NewRoomService(roomRepo repository.RoomRepository, principalRepo repository.PrincipalRepository) *RoomService {
	return &RoomService{
		roomRepo:      roomRepo,
		principalRepo: principalRepo,
	}
}

func (s *RoomService) SetNotifier(n Notifier) {
	s.notifier = n
}

// ListMine returns one page of the rooms the viewer belongs to, either as
// owner or as the other party.
func (s *RoomService) ListMine(ctx context.Context, viewer *domain.Principal, page int, search string) (domain.Paged[domain.AnnotatedRoom], error) {
	page = domain.ClampPage(page)
	search = strings.TrimSpace(search)

	var empty domain.Paged[domain.AnnotatedRoom]

	total, err := s.roomRepo.CountByMember(ctx, viewer.ID, search)
	if err != nil {
		return empty, fmt.Errorf("counting rooms: %w", err)
	}

	rooms, err := s.roomRepo.ListByMember(ctx, viewer.ID, search, roomsPageSize, (page-1)*roomsPageSize)
	if err != nil {
		return empty, fmt.Errorf("listing rooms: %w", err)
	}

	annotated := make([]domain.AnnotatedRoom, len(rooms))
	for i, room := range rooms {
		annotated[i] = domain.AnnotatedRoom{
			Room:        room,
			IsRoomOwner: room.OwnerID == viewer.ID,
		}
	}

	return domain.NewPaged(annotated, total, page, roomsPageSize), nil
}

// Open finds or creates the two-party room between the viewer and another
// principal.
func (s *RoomService) Open(ctx context.Context, viewer *domain.Principal, otherID uuid.UUID, name string) (*domain.Room, error) {
	if viewer.ID == otherID {
		return nil, ErrCannotRoomSelf
	}

	other, err := s.principalRepo.GetByID(ctx, otherID)
	if err != nil {
		return nil, err
	}
	if other == nil {
		return nil, ErrPrincipalNotFound
	}

	room, err := s.roomRepo.GetByMembers(ctx, viewer.ID, otherID)
	if err != nil {
		return nil, err
	}
	if room != nil {
		return room, nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("%s & %s", viewer.Name, other.Name)
	}

	room = &domain.Room{
		ID:          uuid.New(),
		Name:        name,
		OwnerID:     viewer.ID,
		OtherUserID: otherID,
		CreatedAt:   time.Now(),
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("creating room: %w", err)
	}

	return room, nil
}

// SendMessage posts a message to a room the viewer belongs to.
func (s *RoomService) SendMessage(ctx context.Context, viewer *domain.Principal, roomID uuid.UUID, content string) (*domain.Message, error) {
	if err := s.checkMember(ctx, viewer.ID, roomID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:         uuid.New(),
		RoomID:     roomID,
		SenderID:   viewer.ID,
		Content:    content,
		SenderName: viewer.Name,
		CreatedAt:  time.Now(),
	}

	if err := s.roomRepo.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(msg)
	}

	return msg, nil
}

type MessageListResponse struct {
	Messages []domain.Message `json:"messages"`
	HasMore  bool             `json:"has_more"`
}

// ListMessages returns room history in chronological order, paginated
// backwards from the "before" cursor.
func (s *RoomService) ListMessages(ctx context.Context, viewer *domain.Principal, roomID uuid.UUID, before *uuid.UUID, limit int) (*MessageListResponse, error) {
	if err := s.checkMember(ctx, viewer.ID, roomID); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	messages, err := s.roomRepo.ListMessages(ctx, roomID, before, limit+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(messages) > limit
	if hasMore {
		messages = messages[len(messages)-limit:]
	}

	if messages == nil {
		messages = []domain.Message{}
	}

	return &MessageListResponse{Messages: messages, HasMore: hasMore}, nil
}

// GetRoom returns a room the viewer belongs to.
func (s *RoomService) GetRoom(ctx context.Context, viewer *domain.Principal, roomID uuid.UUID) (*domain.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	if !room.HasMember(viewer.ID) {
		return nil, ErrNotRoomMember
	}
	return room, nil
}

func (s *RoomService) checkMember(ctx context.Context, viewerID, roomID uuid.UUID) error {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return ErrRoomNotFound
	}
	if !room.HasMember(viewerID) {
		return ErrNotRoomMember
	}
	return nil
}
