// internal/models/brand_voice.go
package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const BrandVoiceSchemaVersion = 1

type BrandVoiceTone struct {
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`
	Formality int    `json:"formality,omitempty"`
	Emotion   int    `json:"emotion,omitempty"`
}

func (t BrandVoiceTone) Value() (driver.Value, error) {
	return json.Marshal(t)
}

func (t *BrandVoiceTone) Scan(value interface{}) error {
	return scanJSON(value, t)
}

type BrandVoiceStyle struct {
	Type       string `json:"type,omitempty"`
	HumorLevel int    `json:"humorLevel,omitempty"`
}

func (s BrandVoiceStyle) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *BrandVoiceStyle) Scan(value interface{}) error {
	return scanJSON(value, s)
}

type BrandVoiceVocabulary struct {
	KeyPhrases []string `json:"keyPhrases,omitempty"`
	PowerWords []string `json:"powerWords,omitempty"`
	AvoidWords []string `json:"avoidWords,omitempty"`
}

func (v BrandVoiceVocabulary) Value() (driver.Value, error) {
	return json.Marshal(v)
}

func (v *BrandVoiceVocabulary) Scan(value interface{}) error {
	return scanJSON(value, v)
}

// BrandVoice is a reusable writing profile. Tone, style and vocabulary are
// typed because generation reads them; the remaining sections are free-form
// documents owned by the client.
type BrandVoice struct {
	BaseModel
	UserID           uuid.UUID            `json:"user_id" gorm:"type:uuid;not null;index"`
	Name             string               `json:"name" gorm:"size:120;not null"`
	Description      string               `json:"description" gorm:"type:text"`
	IsDefault        bool                 `json:"is_default" gorm:"default:false;index"`
	SchemaVersion    int                  `json:"schema_version" gorm:"not null;default:1"`
	BrandIdentity    datatypes.JSON       `json:"brand_identity,omitempty" gorm:"type:jsonb"`
	Tone             BrandVoiceTone       `json:"tone" gorm:"type:jsonb"`
	Style            BrandVoiceStyle      `json:"style" gorm:"type:jsonb"`
	Language         datatypes.JSON       `json:"language,omitempty" gorm:"type:jsonb"`
	ContentStructure datatypes.JSON       `json:"content_structure,omitempty" gorm:"type:jsonb"`
	Vocabulary       BrandVoiceVocabulary `json:"vocabulary" gorm:"type:jsonb"`
	Examples         datatypes.JSON       `json:"examples,omitempty" gorm:"type:jsonb"`
	VisualElements   datatypes.JSON       `json:"visual_elements,omitempty" gorm:"type:jsonb"`
	SEOPreferences   datatypes.JSON       `json:"seo_preferences,omitempty" gorm:"type:jsonb"`
}

func (BrandVoice) TableName() string {
	return "brand_voices"
}
