package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saileshbalu94/ecommerce-ai/internal/cache"
	"github.com/saileshbalu94/ecommerce-ai/internal/models"
)

func newBrandVoiceFixture() (*BrandVoiceService, *fakeBrandVoiceRepo, *cache.MemoryCache) {
	repo := newFakeBrandVoiceRepo()
	c := cache.NewMemoryCache()
	return NewBrandVoiceService(repo, c, 0, quietLogger()), repo, c
}

func TestBrandVoiceDefaultIsExclusive(t *testing.T) {
	ctx := context.Background()
	service, repo, _ := newBrandVoiceFixture()
	owner := uuid.New()

	first, err := service.Create(ctx, owner, &BrandVoiceRequest{Name: "Warm", IsDefault: true})
	require.NoError(t, err)
	second, err := service.Create(ctx, owner, &BrandVoiceRequest{Name: "Crisp", IsDefault: true})
	require.NoError(t, err)

	assert.False(t, repo.rows[first.ID].IsDefault)
	assert.True(t, repo.rows[second.ID].IsDefault)

	got, err := service.SetDefault(ctx, owner, first.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDefault)
	assert.False(t, repo.rows[second.ID].IsDefault)
}

func TestBrandVoiceValidation(t *testing.T) {
	service, _, _ := newBrandVoiceFixture()

	_, err := service.Create(context.Background(), uuid.New(), &BrandVoiceRequest{Name: " "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.Create(context.Background(), uuid.New(), &BrandVoiceRequest{
		Name: "Loud",
		Tone: models.BrandVoiceTone{Formality: 11},
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "tone.formality", ve.Field)
}

func TestBrandVoiceUpdateInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	service, repo, _ := newBrandVoiceFixture()
	owner := uuid.New()

	voice, err := service.Create(ctx, owner, &BrandVoiceRequest{Name: "Before"})
	require.NoError(t, err)

	resolved, err := service.Resolve(ctx, owner, voice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Before", resolved.Name)

	_, err = service.Update(ctx, owner, voice.ID, &BrandVoiceRequest{Name: "After"})
	require.NoError(t, err)

	finds := repo.finds
	resolved, err = service.Resolve(ctx, owner, voice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "After", resolved.Name)
	assert.Equal(t, finds+1, repo.finds)
}

func TestBrandVoiceSetDefaultRefreshesPreviousDefault(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newBrandVoiceFixture()
	owner := uuid.New()

	first, err := service.Create(ctx, owner, &BrandVoiceRequest{Name: "Warm", IsDefault: true})
	require.NoError(t, err)
	second, err := service.Create(ctx, owner, &BrandVoiceRequest{Name: "Crisp"})
	require.NoError(t, err)

	cached, err := service.Resolve(ctx, owner, first.ID.String())
	require.NoError(t, err)
	require.True(t, cached.IsDefault)

	_, err = service.SetDefault(ctx, owner, second.ID)
	require.NoError(t, err)

	resolved, err := service.Resolve(ctx, owner, first.ID.String())
	require.NoError(t, err)
	assert.False(t, resolved.IsDefault)

	// Creating a new default clears the flag on the cached one as well.
	_, err = service.Resolve(ctx, owner, second.ID.String())
	require.NoError(t, err)
	_, err = service.Create(ctx, owner, &BrandVoiceRequest{Name: "Bold", IsDefault: true})
	require.NoError(t, err)

	resolved, err = service.Resolve(ctx, owner, second.ID.String())
	require.NoError(t, err)
	assert.False(t, resolved.IsDefault)
}

func TestBrandVoiceResolveIsOwnerScoped(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newBrandVoiceFixture()
	owner := uuid.New()

	voice, err := service.Create(ctx, owner, &BrandVoiceRequest{Name: "Mine"})
	require.NoError(t, err)

	_, err = service.Resolve(ctx, uuid.New(), voice.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.Resolve(ctx, owner, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBrandVoiceDelete(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newBrandVoiceFixture()
	owner := uuid.New()

	voice, err := service.Create(ctx, owner, &BrandVoiceRequest{Name: "Gone"})
	require.NoError(t, err)
	_, err = service.Resolve(ctx, owner, voice.ID.String())
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, owner, voice.ID))
	_, err = service.Resolve(ctx, owner, voice.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, service.Delete(ctx, owner, voice.ID), ErrNotFound)
}
