package risks

import (
	"context"

	"github.com/aegislabs/aegis-backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, score *models.RiskScore) (*models.RiskScore, error)
	SelectRecent(ctx context.Context, userID string, limit int) ([]*models.RiskScore, error)
}
