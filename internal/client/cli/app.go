// Package cli implements the interactive patient CLI: a small REPL over the
// backend REST API for logging in, submitting photos and symptoms, and
// checking the current risk score.
package cli

import (
	"bufio"
	"io"
	"os"

	"github.com/aegislabs/aegis-backend/internal/client/api"
	"github.com/aegislabs/aegis-backend/internal/client/config"
)

type App struct {
	config *config.Config
	api    *api.Client
	reader *bufio.Reader
	out    io.Writer

	// externalID is set after a successful login.
	externalID string
}

func NewApp(cfg *config.Config) *App {
	return &App{
		config: cfg,
		api:    api.NewClient(cfg.ServerBaseURL, cfg.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.externalID != ""
}
