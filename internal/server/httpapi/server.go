// Package httpapi exposes the server's HTTP surface: health and login on the
// public side, the assessment and risk endpoints behind the API key.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/aegislabs/aegis-backend/internal/logging"
	"github.com/aegislabs/aegis-backend/internal/server/config"
	"github.com/aegislabs/aegis-backend/internal/server/services"
)

type Server struct {
	config      *config.Config
	logger      logging.Logger
	users       *services.UserService
	assessments *services.AssessmentService
	risks       *services.RiskService
	engine      *gin.Engine
}

func NewServer(cfg *config.Config, logger logging.Logger, users *services.UserService,
	assessments *services.AssessmentService, risks *services.RiskService) *Server {

	s := &Server{
		config:      cfg,
		logger:      logger.With("component", "httpapi"),
		users:       users,
		assessments: assessments,
		risks:       risks,
	}

	registerValidations()

	engine := gin.New()
	engine.Use(s.requestLogger(), gin.Recovery())

	engine.GET("/health", s.handleHealth)
	engine.POST("/auth/login", s.handleLogin)

	authed := engine.Group("/", requireAPIKey(cfg.APIKey))
	authed.GET("/checklist/today", s.handleChecklist)
	authed.POST("/wounds/assess", s.handleAssessWound)
	authed.POST("/symptoms", s.handleLogSymptom)
	authed.GET("/patients/:external_id/risk", s.handleRisk)
	authed.GET("/patients/:external_id/observations", s.handleObservations)
	authed.GET("/patients/:external_id/risk/history", s.handleRiskHistory)

	s.engine = engine
	return s
}

// registerValidations adds the "notblank" rule used on identifier fields, so
// a payload of whitespace fails binding the same way a missing field does.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	}
}

// Run serves until the context is cancelled, then shuts down gracefully
// within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.config.EndpointAddrHTTP,
		Handler:     s.engine,
		ReadTimeout: s.config.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
