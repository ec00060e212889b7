package classifier

import (
	"context"
	"fmt"

	"github.com/aegislabs/aegis-backend/internal/common"
	"github.com/aegislabs/aegis-backend/internal/logging"
)

// Select picks the active classifier at startup based on the configured mode:
//
//	"model"     - the trained model is required; a failed probe is an error
//	              so assess requests fail explicitly instead of silently
//	              degrading to the heuristic.
//	"heuristic" - always the local redness heuristic.
//	"auto"      - the trained model when an endpoint is configured and its
//	              probe succeeds, otherwise the heuristic.
func Select(ctx context.Context, mode, endpoint string, logger logging.Logger) (Classifier, error) {
	switch mode {
	case "heuristic":
		return NewHeuristic(), nil
	case "model":
		if endpoint == "" {
			return nil, fmt.Errorf("%w: classifier mode is 'model' but no endpoint configured", common.ErrorUnavailable)
		}
		m := NewModel(endpoint)
		if err := m.Ping(ctx); err != nil {
			return nil, err
		}
		return m, nil
	case "auto":
		if endpoint != "" {
			m := NewModel(endpoint)
			if err := m.Ping(ctx); err == nil {
				return m, nil
			}
			logger.Warn(ctx, "inference service not reachable, falling back to heuristic", "endpoint", endpoint)
		}
		return NewHeuristic(), nil
	default:
		return nil, fmt.Errorf("unknown classifier mode: %q", mode)
	}
}
