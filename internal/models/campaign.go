// internal/models/campaign.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type MarketingCampaign struct {
	BaseModel
	UserID              uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	Name                string         `json:"name" gorm:"size:255;not null"`
	ProductName         string         `json:"product_name" gorm:"size:255"`
	Description         string         `json:"description" gorm:"type:text;not null"`
	Industry            string         `json:"industry" gorm:"size:100"`
	CampaignObjective   string         `json:"campaign_objective" gorm:"size:100;not null"`
	TargetAudience      string         `json:"target_audience" gorm:"type:text"`
	UniqueSellingPoints pq.StringArray `json:"unique_selling_points" gorm:"type:text[]"`
	KeyBenefits         pq.StringArray `json:"key_benefits" gorm:"type:text[]"`
	KeyFeatures         pq.StringArray `json:"key_features" gorm:"type:text[]"`
	ValueProposition    string         `json:"value_proposition" gorm:"type:text"`
	SpecialOffers       string         `json:"special_offers" gorm:"type:text"`
	PricePoint          string         `json:"price_point" gorm:"size:50"`
	PrimaryKeywords     pq.StringArray `json:"primary_keywords" gorm:"type:text[]"`
	SecondaryKeywords   pq.StringArray `json:"secondary_keywords" gorm:"type:text[]"`
	BrandTerms          pq.StringArray `json:"brand_terms" gorm:"type:text[]"`
	CompetitorTerms     pq.StringArray `json:"competitor_terms" gorm:"type:text[]"`
	NegativeKeywords    pq.StringArray `json:"negative_keywords" gorm:"type:text[]"`
	CTA                 string         `json:"cta" gorm:"size:255"`
	LandingPageURL      string         `json:"landing_page_url" gorm:"type:text;not null"`
	DisplayPath         string         `json:"display_path" gorm:"size:255"`
	TrackingParameters  datatypes.JSON `json:"tracking_parameters,omitempty" gorm:"type:jsonb"`
	ChannelType         string         `json:"channel_type" gorm:"size:50;not null;index"`
	BrandVoiceID        *uuid.UUID     `json:"brand_voice_id" gorm:"type:uuid"`
	UseBrandVoice       bool           `json:"use_brand_voice" gorm:"default:false"`
	ToneOverride        string         `json:"tone_override" gorm:"size:50"`
	Status              CampaignStatus `json:"status" gorm:"type:varchar(20);default:'draft';index"`
}

func (MarketingCampaign) TableName() string {
	return "marketing_campaigns"
}
