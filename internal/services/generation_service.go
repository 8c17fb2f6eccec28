// internal/services/generation_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saileshbalu94/ecommerce-ai/internal/ai"
	"github.com/saileshbalu94/ecommerce-ai/internal/i18n"
	"github.com/saileshbalu94/ecommerce-ai/internal/metrics"
	"github.com/saileshbalu94/ecommerce-ai/internal/models"
)

const defaultRevisionInstructions = "Make it more engaging and persuasive"

// Generator is the provider-facing half of generation.
type Generator interface {
	Reviser
	GenerateDescription(ctx context.Context, product models.ProductAttributes, opts ai.StyleOptions, voice *models.BrandVoice) (*ai.Result, error)
	GenerateTitles(ctx context.Context, product models.ProductAttributes, opts ai.StyleOptions, voice *models.BrandVoice) (*ai.TitleResult, error)
}

// BrandVoiceResolver loads a caller's brand voice by id for prompt shaping.
type BrandVoiceResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID, id string) (*models.BrandVoice, error)
}

type GenerationService struct {
	generator Generator
	voices    BrandVoiceResolver
	usage     UsageRecorder
	metrics   *metrics.Metrics
	logger    *logrus.Logger
}

type GenerateRequest struct {
	ProductData models.ProductAttributes `json:"productData"`
	Options     ai.StyleOptions          `json:"options"`
}

type ReviseRequest struct {
	OriginalContent string `json:"originalContent"`
	Instructions    string `json:"instructions"`
}

func NewGenerationService(generator Generator, voices BrandVoiceResolver, usage UsageRecorder, logger *logrus.Logger) *GenerationService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &GenerationService{
		generator: generator,
		voices:    voices,
		usage:     usage,
		metrics:   metrics.Get(),
		logger:    logger,
	}
}

// GenerateDescription writes a description without persisting anything.
func (s *GenerationService) GenerateDescription(ctx context.Context, userID uuid.UUID, req *GenerateRequest) (*ai.Result, error) {
	product := normalizeProduct(req.ProductData)
	if err := checkStruct(&req.Options); err != nil {
		return nil, err
	}
	voice := s.resolveVoice(ctx, userID, req.Options.BrandVoiceID)

	res, err := s.generator.GenerateDescription(ctx, product, req.Options, voice)
	s.metrics.ObserveGeneration("description", "", resultMetadata(res), err)
	if err != nil {
		s.logFailure(err, userID, "description")
		return nil, generationFailed(err)
	}

	s.logSuccess(userID, "description", res.Metadata)
	recordUsage(ctx, s.usage, s.logger, userID)
	return res, nil
}

// GenerateTitle asks for several numbered titles in one call.
func (s *GenerationService) GenerateTitle(ctx context.Context, userID uuid.UUID, req *GenerateRequest) (*ai.TitleResult, error) {
	product := normalizeProduct(req.ProductData)
	if err := checkStruct(&req.Options); err != nil {
		return nil, err
	}
	voice := s.resolveVoice(ctx, userID, req.Options.BrandVoiceID)

	res, err := s.generator.GenerateTitles(ctx, product, req.Options, voice)
	var meta *models.GenerationMetadata
	if res != nil {
		meta = &res.Metadata
	}
	s.metrics.ObserveGeneration("title", "", meta, err)
	if err != nil {
		s.logFailure(err, userID, "title")
		return nil, generationFailed(err)
	}

	s.logSuccess(userID, "title", res.Metadata)
	recordUsage(ctx, s.usage, s.logger, userID)
	return res, nil
}

// Revise rewrites free-standing text that is not tied to a saved record.
func (s *GenerationService) Revise(ctx context.Context, userID uuid.UUID, req *ReviseRequest) (*ai.Result, error) {
	original := strings.TrimSpace(req.OriginalContent)
	if original == "" {
		return nil, invalid("originalContent", i18n.KeyGenerationOriginalMissing, "original content is required")
	}
	instructions := strings.TrimSpace(req.Instructions)
	if instructions == "" {
		instructions = defaultRevisionInstructions
	}

	res, err := s.generator.Revise(ctx, original, instructions)
	s.metrics.ObserveGeneration("revision", "", resultMetadata(res), err)
	if err != nil {
		s.logFailure(err, userID, "revision")
		return nil, generationFailed(err)
	}

	s.logSuccess(userID, "revision", res.Metadata)
	recordUsage(ctx, s.usage, s.logger, userID)
	return res, nil
}

// resolveVoice returns nil when no voice was requested or it cannot be
// loaded; generation then proceeds with the caller's own options.
func (s *GenerationService) resolveVoice(ctx context.Context, userID uuid.UUID, id string) *models.BrandVoice {
	if id == "" || s.voices == nil {
		return nil
	}

	voice, err := s.voices.Resolve(ctx, userID, id)
	if err != nil {
		entry := s.logger.WithFields(logrus.Fields{"user_id": userID, "brand_voice_id": id})
		if errors.Is(err, ErrNotFound) {
			entry.Info("Brand voice not found, generating without it")
		} else {
			entry.WithError(err).Warn("Failed to load brand voice, generating without it")
		}
		return nil
	}
	return voice
}

func (s *GenerationService) logSuccess(userID uuid.UUID, kind string, meta models.GenerationMetadata) {
	s.logger.WithFields(logrus.Fields{
		"user_id":        userID,
		"content_type":   kind,
		"model":          meta.ModelUsed,
		"tokens":         meta.TokensUsed,
		"duration_ms":    meta.GenerationTime,
		"cost":           meta.EstimatedCost,
		"image_fallback": meta.ImageFallback,
	}).Info("Content generated")
}

func (s *GenerationService) logFailure(err error, userID uuid.UUID, kind string) {
	s.logger.WithError(err).WithFields(logrus.Fields{
		"user_id":      userID,
		"content_type": kind,
	}).Error("Content generation failed")
}

// normalizeProduct trims the attributes. A missing name is allowed here and
// only enforced when content is saved.
func normalizeProduct(p models.ProductAttributes) models.ProductAttributes {
	p.ProductName = strings.TrimSpace(p.ProductName)
	p.ProductCategory = strings.TrimSpace(p.ProductCategory)
	p.TargetAudience = strings.TrimSpace(p.TargetAudience)
	p.AdditionalInfo = strings.TrimSpace(p.AdditionalInfo)
	p.ProductImage = strings.TrimSpace(p.ProductImage)
	p.ProductFeatures = nonEmpty(p.ProductFeatures)
	p.Keywords = nonEmpty(p.Keywords)
	return p
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
