package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aegislabs/aegis-backend/internal/common"
)

// Model calls a remote inference service that hosts the trained wound CNN.
// The wire contract is narrow: image bytes in, {"probability": p} out.
type Model struct {
	endpoint string
	client   *http.Client
}

func NewModel(endpoint string) *Model {
	return &Model{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (m *Model) Name() string { return "trained-model" }

type classifyResponse struct {
	Probability float64 `json:"probability"`
}

// Classify posts the raw image to the inference service. The returned
// probability is clamped by the caller; transport or protocol failures are
// surfaced as collaborator failures.
func (m *Model) Classify(ctx context.Context, data []byte) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint+"/classify", bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("build classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := m.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: inference service: %v", common.ErrorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("%w: inference service returned %s: %s", common.ErrorUnavailable, resp.Status, string(b))
	}

	var out classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode classify response: %w", err)
	}

	return out.Probability, nil
}

// Ping probes the inference service health endpoint. Used at startup to
// decide whether the trained model can serve.
func (m *Model) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.endpoint+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: inference service: %v", common.ErrorUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: inference service health: %s", common.ErrorUnavailable, resp.Status)
	}
	return nil
}
