// Package symptoms provides the PostgreSQL-backed repository for symptom
// log records.
package symptoms

import (
	"context"
	"fmt"
	"time"

	"github.com/aegislabs/aegis-backend/internal/dbx"
	"github.com/aegislabs/aegis-backend/internal/server/models"
)

// PostgresRepository implements symptom-log storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a symptom log. The id and created_at are server-assigned.
func (r *PostgresRepository) Create(ctx context.Context, log *models.SymptomLog) (*models.SymptomLog, error) {

	query :=
		`INSERT INTO symptom_logs (user_id, free_text, urgency)
         VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		log.UserID, log.FreeText, log.Urgency).Scan(&log.ID, &log.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return log, nil
}

// SelectSince returns all symptom logs for userID with created_at >= since.
func (r *PostgresRepository) SelectSince(ctx context.Context, userID string, since time.Time) ([]*models.SymptomLog, error) {
	query :=
		`SELECT id, user_id, free_text, urgency, created_at FROM symptom_logs
		 WHERE user_id = $1 AND created_at >= $2
		 `
	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to select symptom logs: %w", err)
	}
	defer rows.Close()

	var result []*models.SymptomLog
	for rows.Next() {
		var item models.SymptomLog
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.FreeText, &item.Urgency, &item.CreatedAt,
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
