// Package risks provides the PostgreSQL-backed repository for computed
// risk-score records. Rows are append-only: every risk query is an audit
// event, never an overwrite.
package risks

import (
	"context"
	"fmt"

	"github.com/aegislabs/aegis-backend/internal/dbx"
	"github.com/aegislabs/aegis-backend/internal/server/models"
)

// PostgresRepository implements risk-score storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create appends a risk score. The id and created_at are server-assigned.
func (r *PostgresRepository) Create(ctx context.Context, score *models.RiskScore) (*models.RiskScore, error) {

	query :=
		`INSERT INTO risk_scores (user_id, score, reason)
         VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		score.UserID, score.Score, score.Reason).Scan(&score.ID, &score.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return score, nil
}

// SelectRecent returns the newest risk scores for userID, newest first.
func (r *PostgresRepository) SelectRecent(ctx context.Context, userID string, limit int) ([]*models.RiskScore, error) {
	query :=
		`SELECT id, user_id, score, reason, created_at FROM risk_scores
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2
		 `
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select risk scores: %w", err)
	}
	defer rows.Close()

	var result []*models.RiskScore
	for rows.Next() {
		var item models.RiskScore
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Score, &item.Reason, &item.CreatedAt,
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
