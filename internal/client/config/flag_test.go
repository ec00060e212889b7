package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"cli", "-a", "http://example.com:9090", "-t", "5"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "http://example.com:9090", cfg.ServerBaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestParseFlags_KeepsDefaultsWhenAbsent(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"cli"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "http://localhost:8080", cfg.ServerBaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}
