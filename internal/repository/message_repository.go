package repository

import (
	"context"
	"strconv"
	"time"

	"talentswipe/internal/database"
	"talentswipe/internal/domain/match"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Insert(ctx context.Context, m match.Message) error

	// ListByMatch returns up to limit messages newest first, optionally
	// only those created strictly before the cursor.
	ListByMatch(ctx context.Context, matchID uuid.UUID, before *time.Time, limit int) ([]match.Message, error)
}

type PostgresMessageRepository struct {
	db database.DB
}

func NewPostgresMessageRepository(db database.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Insert(ctx context.Context, m match.Message) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO messages (id, match_id, sender_id, body, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		m.ID, m.MatchID, m.SenderID, m.Body, m.CreatedAt,
	)
	return err
}

func (r *PostgresMessageRepository) ListByMatch(ctx context.Context, matchID uuid.UUID, before *time.Time, limit int) ([]match.Message, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, match_id, sender_id, body, created_at FROM messages WHERE match_id=$1`
	args := []any{matchID}
	if before != nil {
		query += ` AND created_at < $2`
		args = append(args, *before)
	}
	query += ` ORDER BY created_at DESC LIMIT ` + strconv.Itoa(limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []match.Message
	for rows.Next() {
		var m match.Message
		if err := rows.Scan(&m.ID, &m.MatchID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
