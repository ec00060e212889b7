package users

import (
	"context"

	"github.com/aegislabs/aegis-backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*models.User, error)
}
