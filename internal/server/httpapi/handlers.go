package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aegislabs/aegis-backend/internal/common"
)

type loginRequest struct {
	ExternalID  string `json:"external_id" binding:"required,notblank"`
	DisplayName string `json:"display_name"`
}

type loginResponse struct {
	ExternalID  string `json:"external_id"`
	DisplayName string `json:"display_name"`
	APIKey      string `json:"api_key"`
}

type symptomRequest struct {
	Text string `json:"text"`
}

type observationResponse struct {
	ID          string    `json:"id"`
	ImagePath   string    `json:"image_path"`
	Probability float64   `json:"prob_score"`
	Label       string    `json:"label"`
	CreatedAt   time.Time `json:"created_at"`
}

type riskResponse struct {
	Risk   int    `json:"risk"`
	Reason string `json:"reason"`
}

type riskHistoryItem struct {
	Risk      int       `json:"risk"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

type checklistItem struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// dailyChecklist is static demo content; there is no per-user checklist state.
var dailyChecklist = []checklistItem{
	{ID: 1, Title: "Take a clear photo of the wound"},
	{ID: 2, Title: "Log any new symptoms"},
	{ID: 3, Title: "Change the dressing"},
	{ID: 4, Title: "Review your risk score"},
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, fmt.Errorf("%w: %s", common.ErrorValidation, err.Error()))
		return
	}

	user, key, err := s.users.Login(c.Request.Context(), req.ExternalID, req.DisplayName)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		ExternalID:  user.ExternalID,
		DisplayName: user.DisplayName,
		APIKey:      key,
	})
}

func (s *Server) handleChecklist(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": dailyChecklist})
}

func (s *Server) handleAssessWound(c *gin.Context) {
	externalID := c.PostForm("user_external_id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.writeError(c, fmt.Errorf("%w: missing image file", common.ErrorValidation))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		s.writeError(c, fmt.Errorf("%w: unreadable image file", common.ErrorValidation))
		return
	}
	defer file.Close()
	image, err := io.ReadAll(file)
	if err != nil {
		s.writeError(c, fmt.Errorf("%w: unreadable image file", common.ErrorValidation))
		return
	}

	res, err := s.assessments.AssessWound(c.Request.Context(), externalID, fileHeader.Filename, image)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      res.Status,
		"probability": res.Probability,
		"label":       res.Label,
	})
}

func (s *Server) handleLogSymptom(c *gin.Context) {
	externalID := c.Query("user_external_id")

	var req symptomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, fmt.Errorf("%w: %s", common.ErrorValidation, err.Error()))
		return
	}

	urgency, err := s.assessments.LogSymptom(c.Request.Context(), externalID, req.Text)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"urgency": urgency})
}

func (s *Server) handleRisk(c *gin.Context) {
	rec, err := s.risks.ComputeRisk(c.Request.Context(), c.Param("external_id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, riskResponse{Risk: rec.Score, Reason: rec.Reason})
}

func (s *Server) handleObservations(c *gin.Context) {
	obs, err := s.assessments.History(c.Request.Context(), c.Param("external_id"), limitParam(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	items := make([]observationResponse, 0, len(obs))
	for _, o := range obs {
		items = append(items, observationResponse{
			ID:          o.ID,
			ImagePath:   o.ImagePath,
			Probability: o.ProbScore,
			Label:       o.Label,
			CreatedAt:   o.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) handleRiskHistory(c *gin.Context) {
	scores, err := s.risks.RiskHistory(c.Request.Context(), c.Param("external_id"), limitParam(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	items := make([]riskHistoryItem, 0, len(scores))
	for _, r := range scores {
		items = append(items, riskHistoryItem{Risk: r.Score, Reason: r.Reason, CreatedAt: r.CreatedAt})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func limitParam(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return n
}

// writeError maps the sentinel error taxonomy onto HTTP status codes. Unknown
// errors are logged and reported as a generic 500 without internals.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case errors.Is(err, common.ErrorUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": err.Error()})
	default:
		s.logger.Error(c.Request.Context(), "internal error", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
	}
}
