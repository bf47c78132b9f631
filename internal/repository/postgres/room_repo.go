package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmarkovic/jobster/internal/domain"
)

type RoomRepo struct {
	pool *pgxpool.Pool
}

func NewRoomRepo(pool *pgxpool.Pool) *RoomRepo {
	return &RoomRepo{pool: pool}
}

func (r *RoomRepo) Create(ctx context.Context, room *domain.Room) error {
	query := `
		INSERT INTO rooms (id, name, owner_id, other_user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, room.ID, room.Name, room.OwnerID, room.OtherUserID, room.CreatedAt)
	return err
}

func (r *RoomRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	query := `SELECT id, name, owner_id, other_user_id, created_at FROM rooms WHERE id = $1`
	var room domain.Room
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&room.ID, &room.Name, &room.OwnerID, &room.OtherUserID, &room.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &room, err
}

// GetByMembers finds the room between two principals in either orientation.
func (r *RoomRepo) GetByMembers(ctx context.Context, a, b uuid.UUID) (*domain.Room, error) {
	query := `
		SELECT id, name, owner_id, other_user_id, created_at
		FROM rooms
		WHERE (owner_id = $1 AND other_user_id = $2) OR (owner_id = $2 AND other_user_id = $1)`
	var room domain.Room
	err := r.pool.QueryRow(ctx, query, a, b).Scan(
		&room.ID, &room.Name, &room.OwnerID, &room.OtherUserID, &room.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &room, err
}

func (r *RoomRepo) ListByMember(ctx context.Context, memberID uuid.UUID, search string, limit, offset int) ([]domain.Room, error) {
	query := `
		SELECT id, name, owner_id, other_user_id, created_at
		FROM rooms
		WHERE (owner_id = $1 OR other_user_id = $1)
			AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, memberID, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.OwnerID, &room.OtherUserID, &room.CreatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *RoomRepo) CountByMember(ctx context.Context, memberID uuid.UUID, search string) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM rooms
		WHERE (owner_id = $1 OR other_user_id = $1)
			AND ($2 = '' OR name ILIKE '%' || $2 || '%')`,
		memberID, search).Scan(&total)
	return total, err
}

func (r *RoomRepo) CountOwned(ctx context.Context, memberID uuid.UUID) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM rooms WHERE owner_id = $1`, memberID).Scan(&total)
	return total, err
}

func (r *RoomRepo) CountJoined(ctx context.Context, memberID uuid.UUID) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM rooms WHERE other_user_id = $1`, memberID).Scan(&total)
	return total, err
}

func (r *RoomRepo) CreateMessage(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (id, room_id, sender_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, msg.ID, msg.RoomID, msg.SenderID, msg.Content, msg.CreatedAt)
	return err
}

func (r *RoomRepo) ListMessages(ctx context.Context, roomID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error) {
	var query string
	var args []any

	if before != nil {
		query = fmt.Sprintf(`
			SELECT m.id, m.room_id, m.sender_id, m.content, m.created_at, p.name
			FROM messages m
			JOIN principals p ON m.sender_id = p.id
			WHERE m.room_id = $1
				AND m.created_at < (SELECT created_at FROM messages WHERE id = $2)
			ORDER BY m.created_at DESC, m.id DESC
			LIMIT %d`, limit)
		args = []any{roomID, *before}
	} else {
		query = fmt.Sprintf(`
			SELECT m.id, m.room_id, m.sender_id, m.content, m.created_at, p.name
			FROM messages m
			JOIN principals p ON m.sender_id = p.id
			WHERE m.room_id = $1
			ORDER BY m.created_at DESC, m.id DESC
			LIMIT %d`, limit)
		args = []any{roomID}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.Content, &m.CreatedAt, &m.SenderName); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	// Reverse to chronological order (query returns DESC)
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, rows.Err()
}

func (r *RoomRepo) CountMessagesBySender(ctx context.Context, senderID uuid.UUID) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM messages WHERE sender_id = $1`, senderID).Scan(&total)
	return total, err
}
