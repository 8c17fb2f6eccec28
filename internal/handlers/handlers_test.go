package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/saileshbalu94/ecommerce-ai/internal/ai"
	"github.com/saileshbalu94/ecommerce-ai/internal/cache"
	"github.com/saileshbalu94/ecommerce-ai/internal/models"
	"github.com/saileshbalu94/ecommerce-ai/internal/render"
	"github.com/saileshbalu94/ecommerce-ai/internal/repository"
	"github.com/saileshbalu94/ecommerce-ai/internal/services"
	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

type memContentRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]models.Content
}

func clone(c models.Content) models.Content {
	raw, _ := json.Marshal(c)
	var out models.Content
	_ = json.Unmarshal(raw, &out)
	return out
}

func (r *memContentRepo) Create(_ context.Context, c *models.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = uuid.New()
	r.rows[c.ID] = clone(*c)
	return nil
}

func (r *memContentRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*models.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok || row.UserID != userID {
		return nil, repository.ErrNotFound
	}
	out := clone(row)
	return &out, nil
}

func (r *memContentRepo) List(_ context.Context, f repository.ContentFilter) ([]models.Content, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Content
	for _, row := range r.rows {
		if row.UserID == f.UserID {
			out = append(out, clone(row))
		}
	}
	return out, int64(len(out)), nil
}

func (r *memContentRepo) Update(_ context.Context, c *models.Content) error {
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
	r.rows[c.ID] = clone(*c)
	return nil
}

func (r *memContentRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[id]; !ok || row.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memContentRepo) CountByType(context.Context, uuid.UUID) (map[string]int64, error) {
	return map[string]int64{}, nil
}

type memBrandVoiceRepo struct {
	rows map[uuid.UUID]models.BrandVoice
}

func (r *memBrandVoiceRepo) List(_ context.Context, userID uuid.UUID) ([]models.BrandVoice, error) {
	var out []models.BrandVoice
	for _, v := range r.rows {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *memBrandVoiceRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*models.BrandVoice, error) {
	v, ok := r.rows[id]
	if !ok || v.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func (r *memBrandVoiceRepo) Create(_ context.Context, v *models.BrandVoice) error {
	v.ID = uuid.New()
	r.rows[v.ID] = *v
	return nil
}

func (r *memBrandVoiceRepo) Save(_ context.Context, v *models.BrandVoice) error {
	r.rows[v.ID] = *v
	return nil
}

func (r *memBrandVoiceRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	if v, ok := r.rows[id]; !ok || v.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memBrandVoiceRepo) SetDefault(_ context.Context, userID, id uuid.UUID) error {
	for key, v := range r.rows {
		if v.UserID == userID {
			v.IsDefault = key == id
			r.rows[key] = v
		}
	}
	return nil
}

type countingUsage struct {
	calls int
}

func (u *countingUsage) RecordGeneration(context.Context, uuid.UUID) error {
	u.calls++
	return nil
}

// stubProvider replies with the queued texts, or err when set.
type stubProvider struct {
	replies []string
	err     error
}

func (p *stubProvider) Complete(_ context.Context, req ai.ChatRequest) (*ai.ChatResponse, error) {
	if p.err != nil {
		return nil, p.err
	}
	if len(p.replies) == 0 {
		return nil, errors.New("unexpected call")
	}
	text := p.replies[0]
	p.replies = p.replies[1:]
	return &ai.ChatResponse{Text: text, Model: req.Model, PromptTokens: 12, CompletionTokens: 8}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

type HandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	contents *memContentRepo
	provider *stubProvider
	usage    *countingUsage
	userID   uuid.UUID
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s.contents = &memContentRepo{rows: map[uuid.UUID]models.Content{}}
	s.provider = &stubProvider{}
	s.usage = &countingUsage{}
	s.userID = uuid.New()

	gateway := ai.NewGateway(s.provider, ai.GatewayConfig{}, logger)
	voices := services.NewBrandVoiceService(&memBrandVoiceRepo{rows: map[uuid.UUID]models.BrandVoice{}}, cache.NewMemoryCache(), 0, logger)
	contentService := services.NewContentService(s.contents, gateway, s.usage, render.New(), logger)
	generationService := services.NewGenerationService(gateway, voices, s.usage, logger)

	contentHandler := NewContentHandler(contentService)
	generationHandler := NewGenerationHandler(generationService, contentService, nil)
	brandVoiceHandler := NewBrandVoiceHandler(voices)

	r := gin.New()
	api := r.Group("/api", func(c *gin.Context) {
		utils.SetSession(c, &utils.Session{UserID: s.userID, Subscription: models.DefaultSubscription()})
		c.Next()
	})
	api.POST("/content/generate/description", generationHandler.Description)
	api.POST("/content/generate/title", generationHandler.Title)
	api.POST("/content/generate/alternatives", generationHandler.Alternatives)
	api.POST("/content/save", contentHandler.Save)
	api.GET("/content", contentHandler.List)
	api.GET("/content/:id", contentHandler.Get)
	api.PUT("/content/:id", contentHandler.Update)
	api.DELETE("/content/:id", contentHandler.Delete)
	api.POST("/content/:id/feedback", contentHandler.Feedback)
	api.POST("/content/:id/accept", contentHandler.Accept)
	api.GET("/content/:id/preview", contentHandler.Preview)
	api.GET("/brand-voices", brandVoiceHandler.List)
	api.POST("/brand-voices", brandVoiceHandler.Create)
	api.GET("/brand-voices/:id", brandVoiceHandler.Get)
	s.router = r
}

func (s *HandlerTestSuite) request(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func (s *HandlerTestSuite) saveDraft(text string) models.Content {
	w, env := s.request(http.MethodPost, "/api/content/save", gin.H{
		"title":            "Linen Shirt",
		"contentType":      "product-description",
		"generatedContent": gin.H{"text": text},
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var content models.Content
	s.Require().NoError(json.Unmarshal(env.Data, &content))
	return content
}

func (s *HandlerTestSuite) TestGenerateDescription() {
	s.provider.replies = []string{"A breathable linen shirt for warm days."}

	w, env := s.request(http.MethodPost, "/api/content/generate/description", gin.H{
		"productData": gin.H{"productName": "Linen Shirt", "productCategory": "Apparel"},
		"options":     gin.H{"tone": "casual", "length": "short"},
	})

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	s.True(env.Success)

	var res ai.Result
	s.Require().NoError(json.Unmarshal(env.Data, &res))
	s.Equal("A breathable linen shirt for warm days.", res.Text)
	s.Equal(int64(20), res.Metadata.TokensUsed)
	s.Equal(1, s.usage.calls)
}

func (s *HandlerTestSuite) TestGenerateDescriptionValidation() {
	w, env := s.request(http.MethodPost, "/api/content/generate/description", gin.H{
		"productData": gin.H{"productName": "Linen Shirt"},
		"options":     gin.H{"tone": "sarcastic"},
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("VALIDATION_ERROR", env.Error.Code)

	s.Zero(s.usage.calls)
}

func (s *HandlerTestSuite) TestGenerateDescriptionWithoutProductName() {
	s.provider.replies = []string{"A ceramic piece for any kitchen."}

	w, env := s.request(http.MethodPost, "/api/content/generate/description", gin.H{
		"productData": gin.H{"productName": "  ", "productCategory": "Kitchen", "productFeatures": []string{"ceramic"}},
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var res ai.Result
	s.Require().NoError(json.Unmarshal(env.Data, &res))
	s.Equal("A ceramic piece for any kitchen.", res.Text)
	s.Equal(1, s.usage.calls)
}

func (s *HandlerTestSuite) TestGenerateDescriptionProviderFailure() {
	s.provider.err = &ai.ProviderError{Model: "gpt-3.5-turbo", StatusCode: 429, Err: errors.New("quota exceeded")}

	w, env := s.request(http.MethodPost, "/api/content/generate/description", gin.H{
		"productData": gin.H{"productName": "Linen Shirt"},
	})

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("GENERATION_FAILED", env.Error.Code)
	s.Contains(string(env.Error.Details), "quota exceeded")
	s.Zero(s.usage.calls)
}

func (s *HandlerTestSuite) TestGenerateTitleCandidates() {
	s.provider.replies = []string{"1. Breezy Linen Shirt\n2. Summer Linen Button-Up\n3. Classic Linen Tee"}

	w, env := s.request(http.MethodPost, "/api/content/generate/title", gin.H{
		"productData": gin.H{"productName": "Linen Shirt"},
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var res struct {
		Content    string   `json:"content"`
		Candidates []string `json:"candidates"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &res))
	s.Contains(res.Content, "Breezy Linen Shirt")
	s.Len(res.Candidates, 3)
}

func (s *HandlerTestSuite) TestSaveRequiresText() {
	w, env := s.request(http.MethodPost, "/api/content/save", gin.H{
		"title":            "Linen Shirt",
		"generatedContent": gin.H{"text": ""},
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("VALIDATION_ERROR", env.Error.Code)
	s.Empty(s.contents.rows)
}

func (s *HandlerTestSuite) TestContentLifecycle() {
	saved := s.saveDraft("First draft")
	path := "/api/content/" + saved.ID.String()

	w, env := s.request(http.MethodGet, path, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var got models.Content
	s.Require().NoError(json.Unmarshal(env.Data, &got))
	s.Equal("First draft", got.GeneratedContent.Text)
	s.Len(got.GeneratedContent.Versions, 1)

	w, _ = s.request(http.MethodPut, path, gin.H{"generatedContent": gin.H{"text": "Edited draft"}})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w, _ = s.request(http.MethodPost, path+"/feedback", gin.H{"rating": 4, "comments": "good"})
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	w, env = s.request(http.MethodPost, path+"/accept", gin.H{"versionIndex": 0})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Require().NoError(json.Unmarshal(env.Data, &got))
	s.Equal("First draft", got.GeneratedContent.Text)

	w, env = s.request(http.MethodPost, path+"/accept", gin.H{"versionIndex": 7})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("VALIDATION_ERROR", env.Error.Code)

	w, env = s.request(http.MethodPost, path+"/accept", gin.H{})
	s.Equal(http.StatusBadRequest, w.Code)

	w, _ = s.request(http.MethodDelete, path, nil)
	s.Equal(http.StatusOK, w.Code)

	w, env = s.request(http.MethodGet, path, nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("NOT_FOUND", env.Error.Code)
}

func (s *HandlerTestSuite) TestRatingOutOfRange() {
	saved := s.saveDraft("Draft")

	w, env := s.request(http.MethodPost, "/api/content/"+saved.ID.String()+"/feedback", gin.H{"rating": 9})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("VALIDATION_ERROR", env.Error.Code)
}

func (s *HandlerTestSuite) TestMalformedIDIsNotFound() {
	w, env := s.request(http.MethodGet, "/api/content/not-a-uuid", nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("NOT_FOUND", env.Error.Code)

	w, _ = s.request(http.MethodGet, "/api/content/"+uuid.NewString(), nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestOtherOwnersContentIsHidden() {
	saved := s.saveDraft("Mine")
	s.userID = uuid.New()

	path := "/api/content/" + saved.ID.String()
	before := s.contents.rows[saved.ID]
	s.provider.replies = []string{"Hijacked"}

	cases := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodGet, path, nil},
		{http.MethodPut, path, gin.H{"generatedContent": gin.H{"text": "Theirs"}}},
		{http.MethodPost, path + "/feedback", gin.H{"rating": 1, "comments": "bad"}},
		{http.MethodPost, path + "/accept", gin.H{"versionIndex": 0}},
		{http.MethodPost, "/api/content/generate/alternatives", gin.H{"contentId": saved.ID.String(), "feedback": "rewrite"}},
		{http.MethodDelete, path, nil},
	}
	for _, tc := range cases {
		w, env := s.request(tc.method, tc.path, tc.body)
		s.Equal(http.StatusNotFound, w.Code, "%s %s", tc.method, tc.path)
		s.Require().NotNil(env.Error)
		s.Equal("NOT_FOUND", env.Error.Code)

		stored, ok := s.contents.rows[saved.ID]
		s.Require().True(ok, "%s %s removed the row", tc.method, tc.path)
		s.Equal(before.RowVersion, stored.RowVersion)
		s.Len(stored.GeneratedContent.Versions, 1)
		s.Equal("Mine", stored.GeneratedContent.Text)
	}
	s.Zero(s.usage.calls)
	s.Len(s.provider.replies, 1)
}

func (s *HandlerTestSuite) TestAlternativeForSavedContent() {
	saved := s.saveDraft("Long winded draft")
	s.provider.replies = []string{"Short draft"}

	w, env := s.request(http.MethodPost, "/api/content/generate/alternatives", gin.H{
		"contentId": saved.ID.String(),
		"feedback":  "make it shorter",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var res services.AlternativeResult
	s.Require().NoError(json.Unmarshal(env.Data, &res))
	s.Equal("Short draft", res.Text)
	s.Equal(1, res.VersionIndex)
	s.Equal(1, s.usage.calls)

	stored := s.contents.rows[saved.ID]
	s.Len(stored.GeneratedContent.Versions, 2)
	s.Equal("Short draft", stored.GeneratedContent.Text)
}

func (s *HandlerTestSuite) TestAlternativeRequiresFeedback() {
	saved := s.saveDraft("Draft")

	w, env := s.request(http.MethodPost, "/api/content/generate/alternatives", gin.H{
		"contentId": saved.ID.String(),
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("VALIDATION_ERROR", env.Error.Code)
}

func (s *HandlerTestSuite) TestListContent() {
	s.saveDraft("One")
	s.saveDraft("Two")

	w, env := s.request(http.MethodGet, "/api/content?limit=5", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("2", w.Header().Get("X-Total-Count"))

	var data struct {
		Content []models.Content `json:"content"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.Len(data.Content, 2)
}

func (s *HandlerTestSuite) TestPreviewSanitizes() {
	saved := s.saveDraft("**Bold** claim <script>alert(1)</script>")

	w, env := s.request(http.MethodGet, "/api/content/"+saved.ID.String()+"/preview", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var data struct {
		HTML string `json:"html"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.Contains(data.HTML, "<strong>Bold</strong>")
	s.NotContains(data.HTML, "<script>")
}

func (s *HandlerTestSuite) TestBrandVoices() {
	w, env := s.request(http.MethodPost, "/api/brand-voices", gin.H{"name": ""})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("VALIDATION_ERROR", env.Error.Code)

	w, env = s.request(http.MethodPost, "/api/brand-voices", gin.H{"name": "Calm", "description": "Quiet confidence"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var voice models.BrandVoice
	s.Require().NoError(json.Unmarshal(env.Data, &voice))
	s.Equal("Calm", voice.Name)

	w, _ = s.request(http.MethodGet, "/api/brand-voices/"+voice.ID.String(), nil)
	s.Equal(http.StatusOK, w.Code)

	w, env = s.request(http.MethodGet, "/api/brand-voices", nil)
	s.Equal(http.StatusOK, w.Code)
	var voices []models.BrandVoice
	s.Require().NoError(json.Unmarshal(env.Data, &voices))
	s.Len(voices, 1)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
