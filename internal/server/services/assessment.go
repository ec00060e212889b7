package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aegislabs/aegis-backend/internal/common"
	"github.com/aegislabs/aegis-backend/internal/server/classifier"
	"github.com/aegislabs/aegis-backend/internal/server/config"
	"github.com/aegislabs/aegis-backend/internal/server/models"
	"github.com/aegislabs/aegis-backend/internal/server/repositories/repomanager"
	"github.com/aegislabs/aegis-backend/internal/server/storage"
	"github.com/aegislabs/aegis-backend/internal/server/triage"
)

// AssessmentResult is the immediate per-event outcome of a wound assessment.
// A status string always accompanies the numbers; the API never returns a
// bare probability without explanation.
type AssessmentResult struct {
	Status      string
	Probability float64
	Label       string
}

// AssessmentService is the event recorder: it scores incoming wound photos
// and symptom reports and appends the resulting records. Scoring and insert
// are one logical step: if scoring or image storage fails, nothing is
// persisted.
type AssessmentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	classifier  classifier.Classifier
	images      storage.ImageStore
	threshold   float64
}

// NewAssessmentService constructs an AssessmentService. The classifier is an
// injected collaborator chosen at startup; the service is agnostic to which
// implementation is active.
func NewAssessmentService(db *sql.DB, m repomanager.RepositoryManager, c classifier.Classifier,
	images storage.ImageStore, cfg *config.Config) *AssessmentService {
	return &AssessmentService{
		db:          db,
		repomanager: m,
		classifier:  c,
		images:      images,
		threshold:   cfg.InfectionThreshold,
	}
}

// imageKey builds the storage key for an uploaded image: keyed by patient
// identity and original filename, so re-uploading the same filename
// overwrites (last write wins).
func imageKey(externalID, filename string) string {
	if filename == "" {
		filename = uuid.New().String() + ".jpg"
	}
	return fmt.Sprintf("users/%s/%s", externalID, filename)
}

// AssessWound classifies the image, stores it, and appends an Observation.
// Empty image bytes or an unknown user are validation failures; classifier
// and storage failures propagate with nothing persisted.
func (s *AssessmentService) AssessWound(ctx context.Context, externalID, filename string, image []byte) (*AssessmentResult, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", common.ErrorValidation)
	}
	if s.classifier == nil {
		return nil, fmt.Errorf("%w: no classifier configured", common.ErrorUnavailable)
	}

	user, err := s.resolveUser(ctx, externalID)
	if err != nil {
		return nil, err
	}

	prob, err := s.classifier.Classify(ctx, image)
	if err != nil {
		return nil, err
	}
	prob = common.Clamp01(prob)
	status, label := triage.LabelFromProb(prob, s.threshold)

	imagePath, err := s.images.Save(ctx, imageKey(externalID, filename), image)
	if err != nil {
		return nil, err
	}

	obs := &models.Observation{
		UserID:    user.ID,
		ImagePath: imagePath,
		ProbScore: prob,
		Label:     label,
	}
	if _, err := s.repomanager.Observations(s.db).Create(ctx, obs); err != nil {
		return nil, err
	}

	return &AssessmentResult{Status: status, Probability: prob, Label: label}, nil
}

// LogSymptom scores the free text against the keyword table and appends a
// SymptomLog. Empty text or an unknown user are validation failures.
func (s *AssessmentService) LogSymptom(ctx context.Context, externalID, text string) (float64, error) {
	if text == "" {
		return 0, fmt.Errorf("%w: empty symptom text", common.ErrorValidation)
	}

	user, err := s.resolveUser(ctx, externalID)
	if err != nil {
		return 0, err
	}

	urgency := common.Clamp01(triage.ScoreSymptomText(text))

	log := &models.SymptomLog{
		UserID:   user.ID,
		FreeText: text,
		Urgency:  urgency,
	}
	if _, err := s.repomanager.Symptoms(s.db).Create(ctx, log); err != nil {
		return 0, err
	}

	return urgency, nil
}

// History returns the newest observations for a patient, newest first.
func (s *AssessmentService) History(ctx context.Context, externalID string, limit int) ([]*models.Observation, error) {
	user, err := s.repomanager.Users(s.db).GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repomanager.Observations(s.db).SelectRecent(ctx, user.ID, limit)
}

// resolveUser maps an external id to a user for a creation path. An absent
// user here is a validation failure (bad reference in input), not a lookup
// failure.
func (s *AssessmentService) resolveUser(ctx context.Context, externalID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: unknown user %q", common.ErrorValidation, externalID)
		}
		return nil, err
	}
	return user, nil
}
