// internal/services/content_service.go
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saileshbalu94/ecommerce-ai/internal/ai"
	"github.com/saileshbalu94/ecommerce-ai/internal/i18n"
	"github.com/saileshbalu94/ecommerce-ai/internal/metrics"
	"github.com/saileshbalu94/ecommerce-ai/internal/models"
	"github.com/saileshbalu94/ecommerce-ai/internal/render"
	"github.com/saileshbalu94/ecommerce-ai/internal/repository"
	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

const DefaultContentPageSize = 10

// Reviser rewrites existing text following a free-form instruction.
type Reviser interface {
	Revise(ctx context.Context, text, instructions string) (*ai.Result, error)
}

// UsageRecorder counts successful generations against a user.
type UsageRecorder interface {
	RecordGeneration(ctx context.Context, userID uuid.UUID) error
}

type ContentService struct {
	repo     repository.ContentRepository
	reviser  Reviser
	usage    UsageRecorder
	renderer *render.Renderer
	metrics  *metrics.Metrics
	logger   *logrus.Logger
	now      func() time.Time
}

type SaveContentRequest struct {
	Title                string                      `json:"title" validate:"omitempty,max=255"`
	ContentType          string                      `json:"contentType" validate:"omitempty,content_type"`
	OriginalInput        models.ProductAttributes    `json:"originalInput"`
	GenerationParameters models.GenerationParameters `json:"generationParameters"`
	GeneratedContent     GeneratedTextInput          `json:"generatedContent"`
	Metadata             models.GenerationMetadata   `json:"metadata"`
}

type GeneratedTextInput struct {
	Text string `json:"text"`
}

type UpdateContentRequest struct {
	Title            string               `json:"title,omitempty" validate:"omitempty,max=255"`
	Status           models.ContentStatus `json:"status,omitempty" validate:"omitempty,content_status"`
	GeneratedContent *GeneratedTextInput  `json:"generatedContent,omitempty"`
}

type FeedbackRequest struct {
	Rating   int    `json:"rating"`
	Comments string `json:"comments"`
}

type AcceptVersionRequest struct {
	VersionIndex *int `json:"versionIndex"`
}

type ContentListParams struct {
	ContentType string
	Status      string
	utils.PaginationParams
}

// AlternativeResult is one feedback-driven revision and where it landed in
// the record's history.
type AlternativeResult struct {
	ContentID    uuid.UUID                 `json:"contentId"`
	Text         string                    `json:"text"`
	Metadata     models.GenerationMetadata `json:"metadata"`
	VersionIndex int                       `json:"versionIndex"`
	RowVersion   int64                     `json:"rowVersion"`
}

func NewContentService(repo repository.ContentRepository, reviser Reviser, usage UsageRecorder, renderer *render.Renderer, logger *logrus.Logger) *ContentService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if renderer == nil {
		renderer = render.New()
	}
	return &ContentService{
		repo:     repo,
		reviser:  reviser,
		usage:    usage,
		renderer: renderer,
		metrics:  metrics.Get(),
		logger:   logger,
		now:      time.Now,
	}
}

// Save persists a generated draft as a new record seeded with one version.
func (s *ContentService) Save(ctx context.Context, userID uuid.UUID, req *SaveContentRequest) (*models.Content, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.GeneratedContent.Text)
	if text == "" {
		return nil, invalid("generatedContent.text", i18n.KeyContentTextRequired, "generated content text is required")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = strings.TrimSpace(req.OriginalInput.ProductName)
	}
	if title == "" {
		return nil, invalid("title", i18n.KeyContentNameRequired, "title or product name is required")
	}

	contentType := models.ContentType(req.ContentType)
	if contentType == "" {
		contentType = models.ContentTypeProductDescription
	}

	content, err := models.NewContent(userID, title, contentType, req.OriginalInput,
		req.GenerationParameters, text, req.Metadata, s.now().UTC())
	if err != nil {
		return nil, invalid("generatedContent.text", i18n.KeyContentTextRequired, err.Error())
	}

	if err := s.repo.Create(ctx, content); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":      userID,
		"content_id":   content.ID,
		"content_type": content.ContentType,
	}).Info("Content saved")
	return content, nil
}

func (s *ContentService) List(ctx context.Context, userID uuid.UUID, params ContentListParams) ([]models.Content, int64, error) {
	if params.Status != "" && !models.ContentStatus(params.Status).Valid() {
		return nil, 0, invalid("status", i18n.KeyValidationInvalid, "unknown status "+params.Status)
	}

	return s.repo.List(ctx, repository.ContentFilter{
		UserID:           userID,
		ContentType:      params.ContentType,
		Status:           params.Status,
		PaginationParams: params.PaginationParams,
	})
}

func (s *ContentService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Content, error) {
	return s.repo.FindByID(ctx, userID, id)
}

// Update changes title and status in place. New text is appended as an
// edit version; prior versions are never touched.
func (s *ContentService) Update(ctx context.Context, userID, id uuid.UUID, req *UpdateContentRequest) (*models.Content, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	content, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if title := strings.TrimSpace(req.Title); title != "" {
		content.Title = title
	}
	if req.Status != "" {
		content.Status = req.Status
	}
	if req.GeneratedContent != nil {
		if text := strings.TrimSpace(req.GeneratedContent.Text); text != "" {
			content.AppendVersion(text, models.VersionSourceEdit, now)
		}
	}
	content.UpdatedAt = now

	if err := s.write(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *ContentService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{"user_id": userID, "content_id": id}).Info("Content deleted")
	return nil
}

// AddFeedback rates the most recent version.
func (s *ContentService) AddFeedback(ctx context.Context, userID, id uuid.UUID, req *FeedbackRequest) (*models.Content, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, invalid("rating", i18n.KeyContentInvalidRating, models.ErrInvalidRating.Error())
	}

	content, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := content.AttachFeedback(req.Rating, strings.TrimSpace(req.Comments), s.now().UTC()); err != nil {
		if errors.Is(err, models.ErrNoVersions) {
			return nil, invalid("versions", i18n.KeyContentNoVersions, err.Error())
		}
		return nil, invalid("rating", i18n.KeyContentInvalidRating, err.Error())
	}

	if err := s.write(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}

// AcceptVersion marks versions[index] as final. Accepting the index that is
// already accepted returns the record without writing.
func (s *ContentService) AcceptVersion(ctx context.Context, userID, id uuid.UUID, index int) (*models.Content, error) {
	content, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	changed, err := content.AcceptVersion(index, s.now().UTC())
	if err != nil {
		return nil, invalid("versionIndex", i18n.KeyContentBadVersion, err.Error())
	}
	if !changed {
		return content, nil
	}

	if err := s.write(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}

// GenerateAlternative revises the record's canonical text using the
// feedback as an edit instruction and records the exchange. Nothing is
// written when the provider fails.
func (s *ContentService) GenerateAlternative(ctx context.Context, userID, id uuid.UUID, feedback string) (*AlternativeResult, error) {
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return nil, invalid("feedback", i18n.KeyGenerationFeedbackEmpty, "feedback is required")
	}

	content, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	res, err := s.reviser.Revise(ctx, content.CanonicalText(), feedback)
	s.metrics.ObserveGeneration("alternative", "", resultMetadata(res), err)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":    userID,
			"content_id": id,
		}).Error("Alternative generation failed")
		return nil, generationFailed(err)
	}

	v := content.AppendAlternative(feedback, res.Text, res.Metadata, s.now().UTC())
	if err := s.write(ctx, content); err != nil {
		return nil, err
	}

	recordUsage(ctx, s.usage, s.logger, userID)

	return &AlternativeResult{
		ContentID:    content.ID,
		Text:         res.Text,
		Metadata:     res.Metadata,
		VersionIndex: v.Seq - 1,
		RowVersion:   content.RowVersion,
	}, nil
}

// Preview renders the canonical text as sanitized HTML.
func (s *ContentService) Preview(ctx context.Context, userID, id uuid.UUID) (string, *models.Content, error) {
	content, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return "", nil, err
	}

	html, err := s.renderer.HTML(content.CanonicalText())
	if err != nil {
		return "", nil, err
	}
	return html, content, nil
}

func (s *ContentService) write(ctx context.Context, content *models.Content) error {
	err := s.repo.Update(ctx, content)
	if errors.Is(err, repository.ErrConflict) {
		s.metrics.VersionConflictsTotal.Inc()
		s.logger.WithFields(logrus.Fields{
			"content_id":  content.ID,
			"row_version": content.RowVersion,
		}).Warn("Content update lost a concurrent write")
	}
	return err
}

func resultMetadata(res *ai.Result) *models.GenerationMetadata {
	if res == nil {
		return nil
	}
	return &res.Metadata
}

// recordUsage is best-effort: a failed counter update never fails the
// generation that already succeeded.
func recordUsage(ctx context.Context, usage UsageRecorder, logger *logrus.Logger, userID uuid.UUID) {
	if usage == nil {
		return
	}
	if err := usage.RecordGeneration(ctx, userID); err != nil {
		logger.WithError(err).WithField("user_id", userID).Warn("Failed to record usage")
	}
}
