package observations

import (
	"context"
	"time"

	"github.com/aegislabs/aegis-backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, obs *models.Observation) (*models.Observation, error)
	SelectSince(ctx context.Context, userID string, since time.Time) ([]*models.Observation, error)
	SelectRecent(ctx context.Context, userID string, limit int) ([]*models.Observation, error)
}
