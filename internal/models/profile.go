// internal/models/profile.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	Plan             string             `json:"plan"`
	Status           SubscriptionStatus `json:"status"`
	EndDate          *time.Time         `json:"endDate,omitempty"`
	StripeCustomerID string             `json:"stripeCustomerId,omitempty"`
	StripeSubID      string             `json:"stripeSubscriptionId,omitempty"`
}

func (s Subscription) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Subscription) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// Active reports whether generation is allowed at the given time.
func (s Subscription) Active(now time.Time) bool {
	if s.Status != SubscriptionStatusActive && s.Status != SubscriptionStatusTrial {
		return false
	}
	return s.EndDate == nil || s.EndDate.After(now)
}

func DefaultSubscription() Subscription {
	return Subscription{Plan: "free", Status: SubscriptionStatusTrial}
}

// Profile mirrors an auth-provider user. ID is the provider's user id, not a
// generated one.
type Profile struct {
	ID                uuid.UUID    `json:"id" gorm:"type:uuid;primary_key"`
	Email             string       `json:"email" gorm:"size:255;index"`
	FullName          string       `json:"full_name" gorm:"size:255"`
	CompanyName       string       `json:"company_name" gorm:"size:255"`
	Role              UserRole     `json:"role" gorm:"type:varchar(20);default:'user';index"`
	Subscription      Subscription `json:"subscription" gorm:"type:jsonb"`
	UsageContentCount int64        `json:"-" gorm:"column:usage_content_generated;not null;default:0"`
	UsageAPICalls     int64        `json:"-" gorm:"column:usage_api_calls;not null;default:0"`
	UsageLastUsed     *time.Time   `json:"-" gorm:"column:usage_last_used"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// Usage is the API view of the usage counters, which live in plain columns
// so they can be incremented atomically.
type Usage struct {
	ContentGenerated int64      `json:"contentGenerated"`
	APICalls         int64      `json:"apiCalls"`
	LastUsed         *time.Time `json:"lastUsed,omitempty"`
}

func (p *Profile) Usage() Usage {
	return Usage{
		ContentGenerated: p.UsageContentCount,
		APICalls:         p.UsageAPICalls,
		LastUsed:         p.UsageLastUsed,
	}
}

func (p *Profile) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}
