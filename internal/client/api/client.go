// Package api implements the REST client for the wound-monitoring backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/aegislabs/aegis-backend/internal/common"
)

// Client talks to the backend HTTP API. The API key is captured at login and
// attached to every subsequent request.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// SetAPIKey stores the credential used for authenticated requests.
func (c *Client) SetAPIKey(key string) {
	c.apiKey = key
}

type LoginResult struct {
	ExternalID  string `json:"external_id"`
	DisplayName string `json:"display_name"`
	APIKey      string `json:"api_key"`
}

type AssessResult struct {
	Status      string  `json:"status"`
	Probability float64 `json:"probability"`
	Label       string  `json:"label"`
}

type SymptomResult struct {
	Urgency float64 `json:"urgency"`
}

type RiskResult struct {
	Risk   int    `json:"risk"`
	Reason string `json:"reason"`
}

type RiskHistoryItem struct {
	Risk      int       `json:"risk"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// Login registers or resolves the patient and remembers the returned API key.
func (c *Client) Login(ctx context.Context, externalID, displayName string) (*LoginResult, error) {
	payload, _ := json.Marshal(map[string]string{
		"external_id":  externalID,
		"display_name": displayName,
	})

	var res LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "application/json", bytes.NewReader(payload), &res); err != nil {
		return nil, err
	}
	c.apiKey = res.APIKey
	return &res, nil
}

// AssessWound uploads an image for classification.
func (c *Client) AssessWound(ctx context.Context, externalID, filename string, image []byte) (*AssessResult, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	if err := mw.WriteField("user_external_id", externalID); err != nil {
		return nil, err
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(image); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var res AssessResult
	if err := c.doJSON(ctx, http.MethodPost, "/wounds/assess", mw.FormDataContentType(), buf, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// LogSymptom submits a free-text symptom report.
func (c *Client) LogSymptom(ctx context.Context, externalID, text string) (*SymptomResult, error) {
	payload, _ := json.Marshal(map[string]string{"text": text})

	var res SymptomResult
	path := "/symptoms?user_external_id=" + externalID
	if err := c.doJSON(ctx, http.MethodPost, path, "application/json", bytes.NewReader(payload), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Risk fetches the current blended risk score.
func (c *Client) Risk(ctx context.Context, externalID string) (*RiskResult, error) {
	var res RiskResult
	if err := c.doJSON(ctx, http.MethodGet, "/patients/"+externalID+"/risk", "", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// RiskHistory fetches previously computed scores, newest first.
func (c *Client) RiskHistory(ctx context.Context, externalID string) ([]RiskHistoryItem, error) {
	var res struct {
		Items []RiskHistoryItem `json:"items"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/patients/"+externalID+"/risk/history", "", nil, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (c *Client) doJSON(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.apiKey != "" {
		req.Header.Set(common.APIKeyHeaderName, c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", common.ErrorUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// statusError maps HTTP status codes back onto the shared error taxonomy,
// carrying the server's detail message when present.
func statusError(resp *http.Response) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	if payload.Detail == "" {
		payload.Detail = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrorValidation, payload.Detail)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", common.ErrorUnauthorized, payload.Detail)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, payload.Detail)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", common.ErrorUnavailable, payload.Detail)
	default:
		return fmt.Errorf("%w: %s", common.ErrorInternal, payload.Detail)
	}
}
