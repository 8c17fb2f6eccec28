// internal/services/campaign_service.go
package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/saileshbalu94/ecommerce-ai/internal/models"
	"github.com/saileshbalu94/ecommerce-ai/internal/repository"
	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

type CampaignService struct {
	repo   repository.CampaignRepository
	logger *logrus.Logger
}

type CampaignRequest struct {
	Name                string                `json:"name" validate:"required,max=255"`
	ProductName         string                `json:"product_name" validate:"max=255"`
	Description         string                `json:"description" validate:"required"`
	Industry            string                `json:"industry" validate:"max=100"`
	CampaignObjective   string                `json:"campaign_objective" validate:"required,max=100"`
	TargetAudience      string                `json:"target_audience"`
	UniqueSellingPoints []string              `json:"unique_selling_points"`
	KeyBenefits         []string              `json:"key_benefits"`
	KeyFeatures         []string              `json:"key_features"`
	ValueProposition    string                `json:"value_proposition"`
	SpecialOffers       string                `json:"special_offers"`
	PricePoint          string                `json:"price_point" validate:"max=50"`
	PrimaryKeywords     []string              `json:"primary_keywords"`
	SecondaryKeywords   []string              `json:"secondary_keywords"`
	BrandTerms          []string              `json:"brand_terms"`
	CompetitorTerms     []string              `json:"competitor_terms"`
	NegativeKeywords    []string              `json:"negative_keywords"`
	CTA                 string                `json:"cta" validate:"max=255"`
	LandingPageURL      string                `json:"landing_page_url" validate:"required,url"`
	DisplayPath         string                `json:"display_path" validate:"max=255"`
	TrackingParameters  datatypes.JSON        `json:"tracking_parameters,omitempty"`
	ChannelType         string                `json:"channel_type" validate:"required,max=50"`
	BrandVoiceID        *uuid.UUID            `json:"brand_voice_id,omitempty"`
	UseBrandVoice       bool                  `json:"use_brand_voice"`
	ToneOverride        string                `json:"tone_override" validate:"omitempty,tone"`
	Status              models.CampaignStatus `json:"status" validate:"omitempty,campaign_status"`
}

type CampaignListParams struct {
	ChannelType string
	utils.PaginationParams
}

func NewCampaignService(repo repository.CampaignRepository, logger *logrus.Logger) *CampaignService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &CampaignService{repo: repo, logger: logger}
}

func (s *CampaignService) List(ctx context.Context, userID uuid.UUID, params CampaignListParams) ([]models.MarketingCampaign, int64, error) {
	return s.repo.List(ctx, repository.CampaignFilter{
		UserID:           userID,
		ChannelType:      params.ChannelType,
		PaginationParams: params.PaginationParams,
	})
}

func (s *CampaignService) Get(ctx context.Context, userID, id uuid.UUID) (*models.MarketingCampaign, error) {
	return s.repo.FindByID(ctx, userID, id)
}

func (s *CampaignService) Create(ctx context.Context, userID uuid.UUID, req *CampaignRequest) (*models.MarketingCampaign, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	campaign := &models.MarketingCampaign{UserID: userID}
	applyCampaign(campaign, req)
	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":      userID,
		"campaign_id":  campaign.ID,
		"channel_type": campaign.ChannelType,
	}).Info("Campaign created")
	return campaign, nil
}

// Update replaces the campaign with the request; the same fields are
// required as on create.
func (s *CampaignService) Update(ctx context.Context, userID, id uuid.UUID, req *CampaignRequest) (*models.MarketingCampaign, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	campaign, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	applyCampaign(campaign, req)
	if err := s.repo.Save(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *CampaignService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{"user_id": userID, "campaign_id": id}).Info("Campaign deleted")
	return nil
}

func applyCampaign(c *models.MarketingCampaign, req *CampaignRequest) {
	c.Name = strings.TrimSpace(req.Name)
	c.ProductName = strings.TrimSpace(req.ProductName)
	c.Description = strings.TrimSpace(req.Description)
	c.Industry = req.Industry
	c.CampaignObjective = req.CampaignObjective
	c.TargetAudience = req.TargetAudience
	c.UniqueSellingPoints = pq.StringArray(nonEmpty(req.UniqueSellingPoints))
	c.KeyBenefits = pq.StringArray(nonEmpty(req.KeyBenefits))
	c.KeyFeatures = pq.StringArray(nonEmpty(req.KeyFeatures))
	c.ValueProposition = req.ValueProposition
	c.SpecialOffers = req.SpecialOffers
	c.PricePoint = req.PricePoint
	c.PrimaryKeywords = pq.StringArray(nonEmpty(req.PrimaryKeywords))
	c.SecondaryKeywords = pq.StringArray(nonEmpty(req.SecondaryKeywords))
	c.BrandTerms = pq.StringArray(nonEmpty(req.BrandTerms))
	c.CompetitorTerms = pq.StringArray(nonEmpty(req.CompetitorTerms))
	c.NegativeKeywords = pq.StringArray(nonEmpty(req.NegativeKeywords))
	c.CTA = req.CTA
	c.LandingPageURL = req.LandingPageURL
	c.DisplayPath = req.DisplayPath
	c.TrackingParameters = req.TrackingParameters
	c.ChannelType = req.ChannelType
	c.BrandVoiceID = req.BrandVoiceID
	c.UseBrandVoice = req.UseBrandVoice
	c.ToneOverride = req.ToneOverride

	c.Status = req.Status
	if c.Status == "" {
		c.Status = models.CampaignStatusDraft
	}
}
