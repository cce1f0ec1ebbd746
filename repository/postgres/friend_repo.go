package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskarena/backend/domain"
	"github.com/taskarena/backend/repository"
)

const uniqueViolation = "23505"

type friendRepository struct {
	pool *pgxpool.Pool
}

// NewFriendRepository returns a Postgres-backed friend graph repository.
func NewFriendRepository(pool *pgxpool.Pool) repository.FriendRepository {
	return &friendRepository{pool: pool}
}

func (r *friendRepository) AddEdgePair(ctx context.Context, userID, friendID string) error {
	const query = `
	INSERT INTO friend_edges (id, user_id, friend_id)
	VALUES ($1, $2, $3)
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, query, uuid.NewString(), userID, friendID); err != nil {
		return mapEdgeError(err)
	}
	if _, err := tx.Exec(ctx, query, uuid.NewString(), friendID, userID); err != nil {
		return mapEdgeError(err)
	}

	return tx.Commit(ctx)
}

func (r *friendRepository) AddEdge(ctx context.Context, userID, friendID string) error {
	const query = `
	INSERT INTO friend_edges (id, user_id, friend_id)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_id, friend_id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, uuid.NewString(), userID, friendID)
	return err
}

func (r *friendRepository) EdgeExists(ctx context.Context, userID, friendID string) (bool, error) {
	const query = `
	SELECT EXISTS (
		SELECT 1 FROM friend_edges WHERE user_id = $1 AND friend_id = $2
	)
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, friendID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *friendRepository) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	const query = `
	SELECT friend_id
	FROM friend_edges
	WHERE user_id = $1
	ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *friendRepository) ListAsymmetric(ctx context.Context, limit int) ([]domain.FriendEdge, error) {
	const query = `
	SELECT e.id, e.user_id, e.friend_id, e.created_at
	FROM friend_edges e
	LEFT JOIN friend_edges r ON r.user_id = e.friend_id AND r.friend_id = e.user_id
	WHERE r.id IS NULL
	ORDER BY e.created_at
	LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []domain.FriendEdge
	for rows.Next() {
		var edge domain.FriendEdge
		if err := rows.Scan(&edge.ID, &edge.UserID, &edge.FriendID, &edge.CreatedAt); err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}
	return edges, rows.Err()
}

func mapEdgeError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrAlreadyFriends
	}
	return err
}
