// internal/ai/gateway.go
package ai

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/saileshbalu94/ecommerce-ai/internal/models"
)

const (
	imageFallbackError = "Failed to process image. Used text-only generation."

	titleTemperature    = 0.7
	titleMaxTokens      = 150
	revisionTemperature = 0.7
	revisionMaxTokens   = 500
)

type StyleOptions struct {
	Tone         string `json:"tone,omitempty" validate:"omitempty,tone"`
	Style        string `json:"style,omitempty" validate:"omitempty,style"`
	Length       string `json:"length,omitempty" validate:"omitempty,length"`
	BrandVoiceID string `json:"brandVoiceId,omitempty"`
}

type Result struct {
	Text     string                    `json:"text"`
	Metadata models.GenerationMetadata `json:"metadata"`
}

type TitleResult struct {
	Result
	Candidates []string `json:"candidates"`
}

type GatewayConfig struct {
	TextModel   string
	VisionModel string
}

// Gateway turns product attributes and style options into one provider call
// and shapes the reply into text plus metadata. It keeps no state between
// calls.
type Gateway struct {
	provider    Provider
	textModel   string
	visionModel string
	logger      *logrus.Logger
}

func NewGateway(provider Provider, cfg GatewayConfig, logger *logrus.Logger) *Gateway {
	if provider == nil {
		provider = Unconfigured()
	}
	if cfg.TextModel == "" {
		cfg.TextModel = ModelGPT35Turbo
	}
	if cfg.VisionModel == "" {
		cfg.VisionModel = ModelGPT4o
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Gateway{
		provider:    provider,
		textModel:   cfg.TextModel,
		visionModel: cfg.VisionModel,
		logger:      logger,
	}
}

// GenerateDescription writes a product description. With an image reference
// the vision model is tried first; if that fails the text model is used and
// the fallback is recorded in the metadata.
func (g *Gateway) GenerateDescription(ctx context.Context, product models.ProductAttributes, opts StyleOptions, voice *models.BrandVoice) (*Result, error) {
	style := ResolveStyle(opts, voice)
	prompt := DescriptionPrompt(product, style)

	req := ChatRequest{
		Model:       g.textModel,
		System:      descriptionSystemPrompt,
		User:        prompt,
		Temperature: TemperatureForTone(style.Tone),
		MaxTokens:   MaxTokensForLength(style.Length),
	}

	if product.ProductImage == "" {
		return g.complete(ctx, req, PlainText)
	}

	vision := req
	vision.Model = g.visionModel
	vision.System = visionSystemPrompt
	vision.ImageURL = product.ProductImage

	res, err := g.complete(ctx, vision, PlainText)
	if err == nil {
		return res, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	g.logger.WithError(err).WithFields(logrus.Fields{
		"model":     g.visionModel,
		"image_url": product.ProductImage,
	}).Warn("Vision generation failed, falling back to text-only")

	req.User = prompt + imageFailedNote
	res, err = g.complete(ctx, req, PlainText)
	if err != nil {
		return nil, err
	}
	res.Metadata.ModelUsed = g.textModel + " (image fallback)"
	res.Metadata.ImageFallback = true
	res.Metadata.ImageProcessingError = imageFallbackError
	return res, nil
}

// GenerateTitles asks for several numbered titles in one call. The raw reply
// is kept in Text and the parsed options in Candidates.
func (g *Gateway) GenerateTitles(ctx context.Context, product models.ProductAttributes, opts StyleOptions, voice *models.BrandVoice) (*TitleResult, error) {
	style := ResolveStyle(opts, voice)

	res, err := g.complete(ctx, ChatRequest{
		Model:       g.textModel,
		System:      titleSystemPrompt,
		User:        TitlePrompt(product, style),
		Temperature: titleTemperature,
		MaxTokens:   titleMaxTokens,
	}, PlainText)
	if err != nil {
		return nil, err
	}

	return &TitleResult{Result: *res, Candidates: ParseTitleCandidates(res.Text)}, nil
}

// Revise rewrites existing text following a free-form instruction.
func (g *Gateway) Revise(ctx context.Context, text, instructions string) (*Result, error) {
	if text == "" {
		return nil, errors.New("nothing to revise")
	}

	return g.complete(ctx, ChatRequest{
		Model:       g.textModel,
		System:      revisionSystemPrompt,
		User:        RevisionPrompt(text, instructions),
		Temperature: revisionTemperature,
		MaxTokens:   revisionMaxTokens,
	}, func(s string) string {
		return CleanAlternative(PlainText(s))
	})
}

func (g *Gateway) complete(ctx context.Context, req ChatRequest, normalize func(string) string) (*Result, error) {
	start := time.Now()
	resp, err := g.provider.Complete(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		return nil, err
	}

	text := normalize(resp.Text)
	if text == "" {
		return nil, &ProviderError{Model: req.Model, Err: errors.New("empty completion after cleanup")}
	}

	cost := EstimateCost(req.Model, resp.PromptTokens, resp.CompletionTokens)
	meta := models.GenerationMetadata{
		ModelUsed:        req.Model,
		TokensUsed:       resp.PromptTokens + resp.CompletionTokens,
		PromptTokens:     resp.PromptTokens,
		CompletionTokens: resp.CompletionTokens,
		GenerationTime:   elapsed.Milliseconds(),
		EstimatedCost:    cost.InexactFloat64(),
	}

	g.logger.WithFields(logrus.Fields{
		"model":       req.Model,
		"tokens":      meta.TokensUsed,
		"duration_ms": meta.GenerationTime,
		"cost":        cost.String(),
		"vision":      req.ImageURL != "",
	}).Info("Generation completed")

	return &Result{Text: text, Metadata: meta}, nil
}
