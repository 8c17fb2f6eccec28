// internal/models/common.go
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Base model with common fields. Records are hard-deleted, so there is no
// DeletedAt column.
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// jsonBytes normalizes what the postgres driver hands back for json/jsonb
// columns.
func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported json column type %T", value)
	}
}

// Enums
type ContentType string

const (
	ContentTypeProductDescription ContentType = "product-description"
	ContentTypeProductTitle       ContentType = "product-title"
	ContentTypeMarketingCopy      ContentType = "marketing-copy"
	ContentTypeSocialPost         ContentType = "social-post"
	ContentTypeEmail              ContentType = "email"
)

type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
	ContentStatusArchived  ContentStatus = "archived"
)

func (s ContentStatus) Valid() bool {
	switch s {
	case ContentStatusDraft, ContentStatusPublished, ContentStatusArchived:
		return true
	}
	return false
}

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type SubscriptionStatus string

const (
	SubscriptionStatusTrial    SubscriptionStatus = "trial"
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
	SubscriptionStatusExpired  SubscriptionStatus = "expired"
)

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusCompleted CampaignStatus = "completed"
)

type TurnRole string

const (
	TurnRoleUser   TurnRole = "user"
	TurnRoleSystem TurnRole = "system"
)

type VersionSource string

const (
	VersionSourceInitial     VersionSource = "initial"
	VersionSourceAlternative VersionSource = "alternative"
	VersionSourceEdit        VersionSource = "edit"
)
