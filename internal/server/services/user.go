// Package services contains server-side business logic. This file implements
// UserService, which handles the demo login flow: resolving or creating a
// patient identity and handing back the shared API key.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aegislabs/aegis-backend/internal/common"
	"github.com/aegislabs/aegis-backend/internal/dbx"
	"github.com/aegislabs/aegis-backend/internal/server/config"
	"github.com/aegislabs/aegis-backend/internal/server/models"
	"github.com/aegislabs/aegis-backend/internal/server/repositories/repomanager"
)

// UserService provides identity operations. There is no per-user credential:
// authentication is a single shared API key, and login only establishes the
// patient row that later records reference.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	apiKey      string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		apiKey:      cfg.APIKey,
	}
}

// Login resolves the user by external id, creating it on first contact, and
// returns the user together with the shared API key. The get-or-create runs
// in a transaction so concurrent first logins cannot double-insert.
func (s *UserService) Login(ctx context.Context, externalID, displayName string) (*models.User, string, error) {
	if externalID == "" {
		return nil, "", fmt.Errorf("%w: empty external_id", common.ErrorValidation)
	}

	var user *models.User
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		existing, err := repo.GetByExternalID(ctx, externalID)
		if err == nil {
			user = existing
			return nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		created, err := repo.Create(ctx, &models.User{ExternalID: externalID, DisplayName: displayName})
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		user = created
		return nil
	}); err != nil {
		return nil, "", err
	}

	return user, s.apiKey, nil
}
