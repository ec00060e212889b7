package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aegislabs/aegis-backend/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_StoresAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"external_id":"patient-7","display_name":"Alice","api_key":"k-123"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	res, err := c.Login(context.Background(), "patient-7", "Alice")
	require.NoError(t, err)

	assert.Equal(t, "k-123", res.APIKey)
	assert.Equal(t, "k-123", c.apiKey, "key is attached to later requests")
}

func TestAssessWound_SendsMultipartWithKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wounds/assess", r.URL.Path)
		assert.Equal(t, "k-123", r.Header.Get(common.APIKeyHeaderName))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "patient-7", r.FormValue("user_external_id"))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "wound.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"Healthy","probability":0.1,"label":"healthy"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	c.SetAPIKey("k-123")

	res, err := c.AssessWound(context.Background(), "patient-7", "wound.jpg", []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "healthy", res.Label)
	assert.Equal(t, 0.1, res.Probability)
}

func TestRisk_MapsStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		detail   string
		sentinel error
	}{
		{"bad request", http.StatusBadRequest, "empty symptom text", common.ErrorValidation},
		{"unauthorized", http.StatusUnauthorized, "invalid or missing API key", common.ErrorUnauthorized},
		{"not found", http.StatusNotFound, "user not found", common.ErrorNotFound},
		{"unavailable", http.StatusServiceUnavailable, "model down", common.ErrorUnavailable},
		{"server error", http.StatusInternalServerError, "internal error", common.ErrorInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(`{"detail":"` + tt.detail + `"}`))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, 0)
			_, err := c.Risk(context.Background(), "patient-7")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel))
			assert.Contains(t, err.Error(), tt.detail)
		})
	}
}

func TestRisk_UnreachableServerIsUnavailable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 0)

	_, err := c.Risk(context.Background(), "patient-7")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorUnavailable))
}

func TestLogSymptom_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/symptoms", r.URL.Path)
		assert.Equal(t, "patient-7", r.URL.Query().Get("user_external_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"urgency":0.8}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	res, err := c.LogSymptom(context.Background(), "patient-7", "fever")
	require.NoError(t, err)
	assert.Equal(t, 0.8, res.Urgency)
}
