package repository

import (
	"context"
	"strconv"
	"time"

	"talentswipe/internal/database"
	"talentswipe/internal/domain/swipe"

	"github.com/google/uuid"
)

type SwipeRepository interface {
	// Insert persists a swipe. Returns ErrDuplicateKey when a swipe
	// already exists for (ActorUserID, TargetType, TargetID); the
	// check and insert are atomic at the storage layer.
	Insert(ctx context.Context, s swipe.Swipe) error

	// FindRightSwipe looks up an existing right-swipe by the given
	// actor on the given target.
	FindRightSwipe(ctx context.Context, actorUserID uuid.UUID, targetType swipe.TargetType, targetID uuid.UUID) (swipe.Swipe, bool, error)

	// FindRightSwipesOnJobs returns all right-swipes by the actor on
	// any of the given job ids, newest first.
	FindRightSwipesOnJobs(ctx context.Context, actorUserID uuid.UUID, jobIDs []uuid.UUID) ([]swipe.Swipe, error)

	// ListByActor returns the actor's swipes newest first, optionally
	// filtered by target type, with the total count for pagination.
	ListByActor(ctx context.Context, actorUserID uuid.UUID, targetType *swipe.TargetType, limit, offset int) ([]swipe.Swipe, int64, error)

	Stats(ctx context.Context, actorUserID uuid.UUID, dayStart time.Time) (swipe.Stats, error)
}

type PostgresSwipeRepository struct {
	db database.DB
}

func NewPostgresSwipeRepository(db database.DB) *PostgresSwipeRepository {
	return &PostgresSwipeRepository{db: db}
}

func (r *PostgresSwipeRepository) Insert(ctx context.Context, s swipe.Swipe) error {
	affected, err := r.db.Exec(ctx,
		`INSERT INTO swipes (id, actor_user_id, target_type, target_id, direction, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (actor_user_id, target_type, target_id) DO NOTHING`,
		s.ID, s.ActorUserID, string(s.TargetType), s.TargetID, string(s.Direction), s.CreatedAt,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDuplicateKey
	}
	return nil
}

func (r *PostgresSwipeRepository) FindRightSwipe(ctx context.Context, actorUserID uuid.UUID, targetType swipe.TargetType, targetID uuid.UUID) (swipe.Swipe, bool, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, actor_user_id, target_type, target_id, direction, created_at
		 FROM swipes
		 WHERE actor_user_id=$1 AND target_type=$2 AND target_id=$3 AND direction=$4
		 LIMIT 1`,
		actorUserID, string(targetType), targetID, string(swipe.DirectionRight),
	)
	if err != nil {
		return swipe.Swipe{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return swipe.Swipe{}, false, rows.Err()
	}
	s, err := scanSwipe(rows)
	if err != nil {
		return swipe.Swipe{}, false, err
	}
	return s, true, rows.Err()
}

func (r *PostgresSwipeRepository) FindRightSwipesOnJobs(ctx context.Context, actorUserID uuid.UUID, jobIDs []uuid.UUID) ([]swipe.Swipe, error) {
	if len(jobIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, actor_user_id, target_type, target_id, direction, created_at
		 FROM swipes
		 WHERE actor_user_id=$1 AND target_type=$2 AND direction=$3 AND target_id = ANY($4)
		 ORDER BY created_at DESC`,
		actorUserID, string(swipe.TargetJob), string(swipe.DirectionRight), jobIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []swipe.Swipe
	for rows.Next() {
		s, err := scanSwipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresSwipeRepository) ListByActor(ctx context.Context, actorUserID uuid.UUID, targetType *swipe.TargetType, limit, offset int) ([]swipe.Swipe, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT id, actor_user_id, target_type, target_id, direction, created_at
	          FROM swipes WHERE actor_user_id=$1`
	countQuery := `SELECT COUNT(*) FROM swipes WHERE actor_user_id=$1`
	args := []any{actorUserID}
	if targetType != nil {
		query += ` AND target_type=$2`
		countQuery += ` AND target_type=$2`
		args = append(args, string(*targetType))
	}
	query += ` ORDER BY created_at DESC LIMIT ` + strconv.Itoa(limit) + ` OFFSET ` + strconv.Itoa(offset)

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []swipe.Swipe
	for rows.Next() {
		s, err := scanSwipe(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

func (r *PostgresSwipeRepository) Stats(ctx context.Context, actorUserID uuid.UUID, dayStart time.Time) (swipe.Stats, error) {
	var st swipe.Stats
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE created_at >= $2),
		        COUNT(*) FILTER (WHERE direction = 'right'),
		        COUNT(*) FILTER (WHERE direction = 'left')
		 FROM swipes WHERE actor_user_id=$1`,
		actorUserID, dayStart,
	).Scan(&st.Total, &st.Today, &st.RightSwipes, &st.LeftSwipes)
	return st, err
}

func scanSwipe(rows database.Rows) (swipe.Swipe, error) {
	var s swipe.Swipe
	var targetType, direction string
	if err := rows.Scan(&s.ID, &s.ActorUserID, &targetType, &s.TargetID, &direction, &s.CreatedAt); err != nil {
		return swipe.Swipe{}, err
	}
	s.TargetType = swipe.TargetType(targetType)
	s.Direction = swipe.Direction(direction)
	return s, nil
}

