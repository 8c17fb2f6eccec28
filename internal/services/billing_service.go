// internal/services/billing_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"

	"github.com/saileshbalu94/ecommerce-ai/internal/config"
	"github.com/saileshbalu94/ecommerce-ai/internal/i18n"
	"github.com/saileshbalu94/ecommerce-ai/internal/models"
)

const (
	eventSubscriptionCreated = "customer.subscription.created"
	eventSubscriptionUpdated = "customer.subscription.updated"
	eventSubscriptionDeleted = "customer.subscription.deleted"

	defaultPaidPlan = "pro"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

// SubscriptionStore is the profile side of billing.
type SubscriptionStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	FindByStripeCustomer(ctx context.Context, customerID string) (*models.Profile, error)
	UpdateSubscription(ctx context.Context, id uuid.UUID, sub models.Subscription) error
}

type BillingService struct {
	cfg      config.StripeConfig
	profiles SubscriptionStore
	logger   *logrus.Logger
}

// WebhookResult says what a delivered event changed. Handled is false for
// event types this service ignores.
type WebhookResult struct {
	EventID string    `json:"eventId"`
	Type    string    `json:"type"`
	Handled bool      `json:"handled"`
	UserID  uuid.UUID `json:"userId,omitempty"`
}

func NewBillingService(cfg config.StripeConfig, profiles SubscriptionStore, logger *logrus.Logger) *BillingService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if cfg.SecretKey != "" {
		stripe.Key = cfg.SecretKey
	}
	return &BillingService{cfg: cfg, profiles: profiles, logger: logger}
}

// HandleWebhook verifies the Stripe signature and applies subscription
// lifecycle events to the owning profile.
func (s *BillingService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	if s.cfg.WebhookSecret == "" {
		return nil, errors.New("stripe webhook secret not configured")
	}

	// The endpoint must be pinned to the library's API version; mismatched
	// events are rejected along with bad signatures.
	event, err := webhook.ConstructEvent(payload, signature, s.cfg.WebhookSecret)
	if err != nil {
		s.logger.WithError(err).Warn("Rejected Stripe webhook")
		return nil, ErrInvalidSignature
	}

	result := &WebhookResult{EventID: event.ID, Type: string(event.Type)}
	switch string(event.Type) {
	case eventSubscriptionCreated, eventSubscriptionUpdated, eventSubscriptionDeleted:
	default:
		s.logger.WithFields(logrus.Fields{"event_id": event.ID, "type": event.Type}).Debug("Ignoring Stripe event")
		return result, nil
	}

	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return nil, invalid("data", i18n.KeyValidationInvalid, "malformed subscription object")
	}

	profile, err := s.ownerOf(ctx, &sub)
	if err != nil {
		return nil, err
	}

	next := subscriptionFrom(&sub, string(event.Type) == eventSubscriptionDeleted)
	if err := s.profiles.UpdateSubscription(ctx, profile.ID, next); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"event_id": event.ID,
		"type":     event.Type,
		"user_id":  profile.ID,
		"status":   next.Status,
	}).Info("Subscription synced from Stripe")

	result.Handled = true
	result.UserID = profile.ID
	return result, nil
}

// ownerOf finds the profile from the user_id metadata set at checkout,
// falling back to the stored Stripe customer id.
func (s *BillingService) ownerOf(ctx context.Context, sub *stripe.Subscription) (*models.Profile, error) {
	if raw := sub.Metadata["user_id"]; raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, invalid("metadata.user_id", i18n.KeyValidationInvalid, "user_id metadata is not a uuid")
		}
		return s.profiles.Get(ctx, id)
	}

	if sub.Customer != nil && sub.Customer.ID != "" {
		return s.profiles.FindByStripeCustomer(ctx, sub.Customer.ID)
	}
	return nil, fmt.Errorf("%w: subscription %s has no owner", ErrNotFound, sub.ID)
}

func subscriptionFrom(sub *stripe.Subscription, deleted bool) models.Subscription {
	out := models.Subscription{
		Plan:        planName(sub),
		Status:      mapStripeStatus(sub.Status),
		StripeSubID: sub.ID,
	}
	if deleted {
		out.Status = models.SubscriptionStatusCanceled
	}
	if sub.Customer != nil {
		out.StripeCustomerID = sub.Customer.ID
	}
	if sub.CurrentPeriodEnd > 0 {
		end := time.Unix(sub.CurrentPeriodEnd, 0).UTC()
		out.EndDate = &end
	}
	return out
}

func planName(sub *stripe.Subscription) string {
	if sub.Items != nil {
		for _, item := range sub.Items.Data {
			if item == nil || item.Price == nil {
				continue
			}
			if item.Price.LookupKey != "" {
				return item.Price.LookupKey
			}
			if item.Price.Nickname != "" {
				return item.Price.Nickname
			}
		}
	}
	if plan := sub.Metadata["plan"]; plan != "" {
		return plan
	}
	return defaultPaidPlan
}

func mapStripeStatus(status stripe.SubscriptionStatus) models.SubscriptionStatus {
	switch status {
	case stripe.SubscriptionStatusActive:
		return models.SubscriptionStatusActive
	case stripe.SubscriptionStatusTrialing:
		return models.SubscriptionStatusTrial
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusUnpaid, stripe.SubscriptionStatusIncomplete:
		return models.SubscriptionStatusPastDue
	case stripe.SubscriptionStatusCanceled:
		return models.SubscriptionStatusCanceled
	default:
		return models.SubscriptionStatusExpired
	}
}
