package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saileshbalu94/ecommerce-ai/internal/models"
)

func validCampaign() *CampaignRequest {
	return &CampaignRequest{
		Name:              "Spring launch",
		Description:       "New trail shoes",
		CampaignObjective: "conversions",
		LandingPageURL:    "https://shop.example.com/trail",
		ChannelType:       "google_ads",
		PrimaryKeywords:   []string{"trail shoes", " ", "running"},
	}
}

func TestCampaignCreateDefaultsToDraft(t *testing.T) {
	service := NewCampaignService(newFakeCampaignRepo(), quietLogger())

	c, err := service.Create(context.Background(), uuid.New(), validCampaign())
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusDraft, c.Status)
	assert.Equal(t, []string{"trail shoes", "running"}, []string(c.PrimaryKeywords))
}

func TestCampaignValidation(t *testing.T) {
	service := NewCampaignService(newFakeCampaignRepo(), quietLogger())

	tests := map[string]func(*CampaignRequest){
		"missing name":   func(r *CampaignRequest) { r.Name = "" },
		"bad url":        func(r *CampaignRequest) { r.LandingPageURL = "not a url" },
		"missing action": func(r *CampaignRequest) { r.CampaignObjective = "" },
		"bad status":     func(r *CampaignRequest) { r.Status = "paused" },
		"bad tone":       func(r *CampaignRequest) { r.ToneOverride = "shouty" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			req := validCampaign()
			mutate(req)
			_, err := service.Create(context.Background(), uuid.New(), req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCampaignOwnerScopedUpdateAndList(t *testing.T) {
	ctx := context.Background()
	service := NewCampaignService(newFakeCampaignRepo(), quietLogger())
	owner := uuid.New()

	c, err := service.Create(ctx, owner, validCampaign())
	require.NoError(t, err)

	req := validCampaign()
	req.Status = models.CampaignStatusActive
	_, err = service.Update(ctx, uuid.New(), c.ID, req)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := service.Update(ctx, owner, c.ID, req)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusActive, updated.Status)

	items, total, err := service.List(ctx, owner, CampaignListParams{ChannelType: "meta"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)

	require.NoError(t, service.Delete(ctx, owner, c.ID))
	assert.ErrorIs(t, service.Delete(ctx, owner, c.ID), ErrNotFound)
}
