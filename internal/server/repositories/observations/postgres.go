// Package observations provides the PostgreSQL-backed repository for
// wound-image assessment records.
package observations

import (
	"context"
	"fmt"
	"time"

	"github.com/aegislabs/aegis-backend/internal/dbx"
	"github.com/aegislabs/aegis-backend/internal/server/models"
)

// PostgresRepository implements observation storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an observation. The id and created_at are server-assigned.
func (r *PostgresRepository) Create(ctx context.Context, obs *models.Observation) (*models.Observation, error) {

	query :=
		`INSERT INTO observations (user_id, image_path, prob_score, label)
         VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		obs.UserID, obs.ImagePath, obs.ProbScore, obs.Label).Scan(&obs.ID, &obs.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return obs, nil
}

// SelectSince returns all observations for userID with created_at >= since.
func (r *PostgresRepository) SelectSince(ctx context.Context, userID string, since time.Time) ([]*models.Observation, error) {
	query :=
		`SELECT id, user_id, image_path, prob_score, label, created_at FROM observations
		 WHERE user_id = $1 AND created_at >= $2
		 `
	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to select observations: %w", err)
	}
	defer rows.Close()

	var result []*models.Observation
	for rows.Next() {
		var item models.Observation
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ImagePath, &item.ProbScore, &item.Label, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SelectRecent returns the newest observations for userID, newest first.
func (r *PostgresRepository) SelectRecent(ctx context.Context, userID string, limit int) ([]*models.Observation, error) {
	query :=
		`SELECT id, user_id, image_path, prob_score, label, created_at FROM observations
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2
		 `
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select observations: %w", err)
	}
	defer rows.Close()

	var result []*models.Observation
	for rows.Next() {
		var item models.Observation
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ImagePath, &item.ProbScore, &item.Label, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
