package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saileshbalu94/ecommerce-ai/internal/ai"
	"github.com/saileshbalu94/ecommerce-ai/internal/models"
	"github.com/saileshbalu94/ecommerce-ai/internal/repository"
	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fakeContentRepo keeps deep copies so callers cannot mutate stored rows,
// and enforces row_version like the real repository.
type fakeContentRepo struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]models.Content
	updates int
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{rows: map[uuid.UUID]models.Content{}}
}

func cloneContent(c models.Content) models.Content {
	raw, _ := json.Marshal(c)
	var out models.Content
	_ = json.Unmarshal(raw, &out)
	return out
}

func (r *fakeContentRepo) Create(_ context.Context, c *models.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.rows[c.ID] = cloneContent(*c)
	return nil
}

func (r *fakeContentRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*models.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok || row.UserID != userID {
		return nil, repository.ErrNotFound
	}
	out := cloneContent(row)
	return &out, nil
}

func (r *fakeContentRepo) List(_ context.Context, f repository.ContentFilter) ([]models.Content, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Content
	for _, row := range r.rows {
		if row.UserID != f.UserID {
			continue
		}
		if f.ContentType != "" && string(row.ContentType) != f.ContentType {
			continue
		}
		if f.Status != "" && string(row.Status) != f.Status {
			continue
		}
		out = append(out, cloneContent(row))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *fakeContentRepo) Update(_ context.Context, c *models.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[c.ID]
	if !ok || row.UserID != c.UserID {
		return repository.ErrNotFound
	}
	if row.RowVersion != c.RowVersion {
		return repository.ErrConflict
	}
	c.RowVersion++
	r.rows[c.ID] = cloneContent(*c)
	r.updates++
	return nil
}

func (r *fakeContentRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok || row.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeContentRepo) CountByType(_ context.Context, userID uuid.UUID) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]int64{}
	for _, row := range r.rows {
		if row.UserID == userID {
			out[string(row.ContentType)]++
		}
	}
	return out, nil
}

// bumpVersion simulates a concurrent writer.
func (r *fakeContentRepo) bumpVersion(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row := r.rows[id]
	row.RowVersion++
	r.rows[id] = row
}

type fakeProfileRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{rows: map[uuid.UUID]models.Profile{}}
}

func (r *fakeProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProfileRepo) FindByStripeCustomer(_ context.Context, customerID string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.rows {
		if p.Subscription.StripeCustomerID == customerID {
			p := p
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeProfileRepo) Ensure(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	r.mu.Lock()
	if _, ok := r.rows[p.ID]; !ok {
		r.rows[p.ID] = *p
	}
	r.mu.Unlock()
	return r.FindByID(ctx, p.ID)
}

func (r *fakeProfileRepo) update(id uuid.UUID, fn func(*models.Profile)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(&p)
	r.rows[id] = p
	return nil
}

func (r *fakeProfileRepo) UpdateDetails(_ context.Context, id uuid.UUID, fullName, companyName string) error {
	return r.update(id, func(p *models.Profile) {
		p.FullName = fullName
		p.CompanyName = companyName
	})
}

func (r *fakeProfileRepo) UpdateRole(_ context.Context, id uuid.UUID, role models.UserRole) error {
	return r.update(id, func(p *models.Profile) { p.Role = role })
}

func (r *fakeProfileRepo) UpdateSubscription(_ context.Context, id uuid.UUID, sub models.Subscription) error {
	return r.update(id, func(p *models.Profile) { p.Subscription = sub })
}

func (r *fakeProfileRepo) IncrementUsage(_ context.Context, id uuid.UUID, at time.Time) error {
	return r.update(id, func(p *models.Profile) {
		p.UsageContentCount++
		p.UsageAPICalls++
		p.UsageLastUsed = &at
	})
}

func (r *fakeProfileRepo) List(_ context.Context, _ utils.PaginationParams) ([]models.Profile, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Profile
	for _, p := range r.rows {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

type fakeBrandVoiceRepo struct {
	rows  map[uuid.UUID]models.BrandVoice
	finds int
}

func newFakeBrandVoiceRepo() *fakeBrandVoiceRepo {
	return &fakeBrandVoiceRepo{rows: map[uuid.UUID]models.BrandVoice{}}
}

func (r *fakeBrandVoiceRepo) List(_ context.Context, userID uuid.UUID) ([]models.BrandVoice, error) {
	var out []models.BrandVoice
	for _, v := range r.rows {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeBrandVoiceRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*models.BrandVoice, error) {
	r.finds++
	v, ok := r.rows[id]
	if !ok || v.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func (r *fakeBrandVoiceRepo) clearDefault(userID, except uuid.UUID) {
	for id, v := range r.rows {
		if v.UserID == userID && id != except {
			v.IsDefault = false
			r.rows[id] = v
		}
	}
}

func (r *fakeBrandVoiceRepo) Create(_ context.Context, v *models.BrandVoice) error {
	v.ID = uuid.New()
	if v.IsDefault {
		r.clearDefault(v.UserID, v.ID)
	}
	r.rows[v.ID] = *v
	return nil
}

func (r *fakeBrandVoiceRepo) Save(_ context.Context, v *models.BrandVoice) error {
	if old, ok := r.rows[v.ID]; !ok || old.UserID != v.UserID {
		return repository.ErrNotFound
	}
	if v.IsDefault {
		r.clearDefault(v.UserID, v.ID)
	}
	r.rows[v.ID] = *v
	return nil
}

func (r *fakeBrandVoiceRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	if v, ok := r.rows[id]; !ok || v.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeBrandVoiceRepo) SetDefault(_ context.Context, userID, id uuid.UUID) error {
	v, ok := r.rows[id]
	if !ok || v.UserID != userID {
		return repository.ErrNotFound
	}
	r.clearDefault(userID, id)
	v.IsDefault = true
	r.rows[id] = v
	return nil
}

type fakeCampaignRepo struct {
	rows map[uuid.UUID]models.MarketingCampaign
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{rows: map[uuid.UUID]models.MarketingCampaign{}}
}

func (r *fakeCampaignRepo) List(_ context.Context, f repository.CampaignFilter) ([]models.MarketingCampaign, int64, error) {
	var out []models.MarketingCampaign
	for _, c := range r.rows {
		if c.UserID == f.UserID && (f.ChannelType == "" || c.ChannelType == f.ChannelType) {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCampaignRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*models.MarketingCampaign, error) {
	c, ok := r.rows[id]
	if !ok || c.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCampaignRepo) Create(_ context.Context, c *models.MarketingCampaign) error {
	c.ID = uuid.New()
	r.rows[c.ID] = *c
	return nil
}

func (r *fakeCampaignRepo) Save(_ context.Context, c *models.MarketingCampaign) error {
	if old, ok := r.rows[c.ID]; !ok || old.UserID != c.UserID {
		return repository.ErrNotFound
	}
	r.rows[c.ID] = *c
	return nil
}

func (r *fakeCampaignRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	if c, ok := r.rows[id]; !ok || c.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// scriptedProvider answers gateway calls in order.
type scriptedProvider struct {
	calls   []ai.ChatRequest
	replies []func(ai.ChatRequest) (*ai.ChatResponse, error)
}

func (p *scriptedProvider) Complete(_ context.Context, req ai.ChatRequest) (*ai.ChatResponse, error) {
	p.calls = append(p.calls, req)
	if len(p.replies) == 0 {
		return nil, errors.New("unexpected call")
	}
	next := p.replies[0]
	p.replies = p.replies[1:]
	return next(req)
}

func replyText(text string) func(ai.ChatRequest) (*ai.ChatResponse, error) {
	return func(req ai.ChatRequest) (*ai.ChatResponse, error) {
		return &ai.ChatResponse{Text: text, Model: req.Model, PromptTokens: 20, CompletionTokens: 10}, nil
	}
}

func replyError(err error) func(ai.ChatRequest) (*ai.ChatResponse, error) {
	return func(req ai.ChatRequest) (*ai.ChatResponse, error) {
		return nil, &ai.ProviderError{Model: req.Model, StatusCode: 500, Err: err}
	}
}

func newGateway(p ai.Provider) *ai.Gateway {
	return ai.NewGateway(p, ai.GatewayConfig{}, quietLogger())
}
