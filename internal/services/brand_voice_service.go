// internal/services/brand_voice_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/saileshbalu94/ecommerce-ai/internal/cache"
	"github.com/saileshbalu94/ecommerce-ai/internal/i18n"
	"github.com/saileshbalu94/ecommerce-ai/internal/models"
	"github.com/saileshbalu94/ecommerce-ai/internal/repository"
)

const defaultBrandVoiceTTL = 10 * time.Minute

type BrandVoiceService struct {
	repo   repository.BrandVoiceRepository
	cache  cache.Cache
	ttl    time.Duration
	logger *logrus.Logger
}

type BrandVoiceRequest struct {
	Name             string                      `json:"name" validate:"required,max=120"`
	Description      string                      `json:"description"`
	IsDefault        bool                        `json:"isDefault"`
	BrandIdentity    datatypes.JSON              `json:"brandIdentity,omitempty"`
	Tone             models.BrandVoiceTone       `json:"tone"`
	Style            models.BrandVoiceStyle      `json:"style"`
	Language         datatypes.JSON              `json:"language,omitempty"`
	ContentStructure datatypes.JSON              `json:"contentStructure,omitempty"`
	Vocabulary       models.BrandVoiceVocabulary `json:"vocabulary"`
	Examples         datatypes.JSON              `json:"examples,omitempty"`
	VisualElements   datatypes.JSON              `json:"visualElements,omitempty"`
	SEOPreferences   datatypes.JSON              `json:"seoPreferences,omitempty"`
}

func NewBrandVoiceService(repo repository.BrandVoiceRepository, c cache.Cache, ttl time.Duration, logger *logrus.Logger) *BrandVoiceService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if ttl <= 0 {
		ttl = defaultBrandVoiceTTL
	}
	return &BrandVoiceService{repo: repo, cache: c, ttl: ttl, logger: logger}
}

func (s *BrandVoiceService) List(ctx context.Context, userID uuid.UUID) ([]models.BrandVoice, error) {
	return s.repo.List(ctx, userID)
}

func (s *BrandVoiceService) Get(ctx context.Context, userID, id uuid.UUID) (*models.BrandVoice, error) {
	return s.repo.FindByID(ctx, userID, id)
}

func (s *BrandVoiceService) Create(ctx context.Context, userID uuid.UUID, req *BrandVoiceRequest) (*models.BrandVoice, error) {
	voice := &models.BrandVoice{UserID: userID, SchemaVersion: models.BrandVoiceSchemaVersion}
	if err := applyBrandVoice(voice, req); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, voice); err != nil {
		return nil, err
	}
	if voice.IsDefault {
		s.invalidateAll(ctx, userID)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":        userID,
		"brand_voice_id": voice.ID,
		"is_default":     voice.IsDefault,
	}).Info("Brand voice created")
	return voice, nil
}

// Update replaces every client-owned section of the voice. Marking it
// default clears the flag on the caller's other voices.
func (s *BrandVoiceService) Update(ctx context.Context, userID, id uuid.UUID, req *BrandVoiceRequest) (*models.BrandVoice, error) {
	voice, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := applyBrandVoice(voice, req); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, voice); err != nil {
		return nil, err
	}

	if voice.IsDefault {
		s.invalidateAll(ctx, userID)
	} else {
		s.invalidate(ctx, userID, id)
	}
	return voice, nil
}

func (s *BrandVoiceService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.invalidate(ctx, userID, id)
	return nil
}

// SetDefault makes id the caller's only default voice.
func (s *BrandVoiceService) SetDefault(ctx context.Context, userID, id uuid.UUID) (*models.BrandVoice, error) {
	if err := s.repo.SetDefault(ctx, userID, id); err != nil {
		return nil, err
	}
	s.invalidateAll(ctx, userID)
	return s.repo.FindByID(ctx, userID, id)
}

// Resolve loads a voice for generation, reading through the cache. A
// malformed id reads as not found.
func (s *BrandVoiceService) Resolve(ctx context.Context, userID uuid.UUID, id string) (*models.BrandVoice, error) {
	voiceID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	key := brandVoiceKey(userID, voiceID)
	if s.cache != nil {
		var cached models.BrandVoice
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("Brand voice cache read failed")
		} else if found {
			return &cached, nil
		}
	}

	voice, err := s.repo.FindByID(ctx, userID, voiceID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, voice, s.ttl); err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("Brand voice cache write failed")
		}
	}
	return voice, nil
}

func (s *BrandVoiceService) invalidate(ctx context.Context, userID, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, brandVoiceKey(userID, id)); err != nil {
		s.logger.WithError(err).WithField("brand_voice_id", id).Warn("Brand voice cache invalidation failed")
	}
}

// invalidateAll drops every cached voice of the user. Changing the default
// flips is_default on voices other than the one being written.
func (s *BrandVoiceService) invalidateAll(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	voices, err := s.repo.List(ctx, userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("Brand voice cache invalidation failed")
		return
	}
	for _, v := range voices {
		s.invalidate(ctx, userID, v.ID)
	}
}

func brandVoiceKey(userID, id uuid.UUID) string {
	return fmt.Sprintf("brand_voice:%s:%s", userID, id)
}

func applyBrandVoice(voice *models.BrandVoice, req *BrandVoiceRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return invalid("name", i18n.KeyValidationInvalid, "name is required")
	}
	if err := checkScale("tone.formality", req.Tone.Formality); err != nil {
		return err
	}
	if err := checkScale("tone.emotion", req.Tone.Emotion); err != nil {
		return err
	}
	if err := checkScale("style.humorLevel", req.Style.HumorLevel); err != nil {
		return err
	}

	voice.Name = name
	voice.Description = strings.TrimSpace(req.Description)
	voice.IsDefault = req.IsDefault
	voice.BrandIdentity = req.BrandIdentity
	voice.Tone = req.Tone
	voice.Style = req.Style
	voice.Language = req.Language
	voice.ContentStructure = req.ContentStructure
	voice.Vocabulary = models.BrandVoiceVocabulary{
		KeyPhrases: nonEmpty(req.Vocabulary.KeyPhrases),
		PowerWords: nonEmpty(req.Vocabulary.PowerWords),
		AvoidWords: nonEmpty(req.Vocabulary.AvoidWords),
	}
	voice.Examples = req.Examples
	voice.VisualElements = req.VisualElements
	voice.SEOPreferences = req.SEOPreferences
	return nil
}

// Slider values are 1..10; zero means unset.
func checkScale(field string, v int) error {
	if v < 0 || v > 10 {
		return invalid(field, i18n.KeyValidationInvalid, field+" must be between 1 and 10")
	}
	return nil
}
