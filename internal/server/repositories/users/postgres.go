// Package users provides the PostgreSQL-backed repository for patient
// identities.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aegislabs/aegis-backend/internal/common"
	"github.com/aegislabs/aegis-backend/internal/dbx"
	"github.com/aegislabs/aegis-backend/internal/server/models"
)

// PostgresRepository implements user storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (external_id, display_name)
         VALUES ($1, $2)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ExternalID, user.DisplayName).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	query :=
		`SELECT id, external_id, display_name, created_at FROM users
		 WHERE external_id = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, externalID).
		Scan(&user.ID, &user.ExternalID, &user.DisplayName, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
