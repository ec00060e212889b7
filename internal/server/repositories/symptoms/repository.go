package symptoms

import (
	"context"
	"time"

	"github.com/aegislabs/aegis-backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, log *models.SymptomLog) (*models.SymptomLog, error)
	SelectSince(ctx context.Context, userID string, since time.Time) ([]*models.SymptomLog, error)
}
