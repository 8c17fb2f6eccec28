package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/saileshbalu94/ecommerce-ai/internal/config"
	"github.com/saileshbalu94/ecommerce-ai/internal/models"
	"github.com/saileshbalu94/ecommerce-ai/internal/services"
	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuthenticator struct {
	session *utils.Session
	err     error
	tokens  []string
}

func (f *fakeAuthenticator) Authenticate(ctx context.Context, token string) (*utils.Session, error) {
	f.tokens = append(f.tokens, token)
	return f.session, f.err
}

type fakeEnsurer struct{}

func (fakeEnsurer) EnsureProfile(ctx context.Context, id uuid.UUID, email string) (*models.Profile, error) {
	return &models.Profile{ID: id, Email: email, Role: models.UserRoleUser, Subscription: models.DefaultSubscription()}, nil
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		session, _ := utils.GetSession(c)
		if session == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, session.UserID.String())
	})
	r.GET("/", handlers...)
	return r
}

func do(r http.Handler, header, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name   string
		header string
		auth   *fakeAuthenticator
		status int
	}{
		{"missing header", "", &fakeAuthenticator{}, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", &fakeAuthenticator{}, http.StatusUnauthorized},
		{"empty bearer", "Bearer ", &fakeAuthenticator{}, http.StatusUnauthorized},
		{"rejected token", "Bearer bad", &fakeAuthenticator{err: services.ErrUnauthorized}, http.StatusUnauthorized},
		{"expired token", "Bearer old", &fakeAuthenticator{err: services.ErrTokenExpired}, http.StatusUnauthorized},
		{"provider down", "Bearer tok", &fakeAuthenticator{err: errors.New("auth provider unreachable")}, http.StatusInternalServerError},
		{"valid", "Bearer tok", &fakeAuthenticator{session: &utils.Session{UserID: userID}}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(newEngine(AuthRequired(tt.auth)), "Authorization", tt.header)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, userID.String(), w.Body.String())
			}
		})
	}
}

func TestAuthRequiredWithSignedToken(t *testing.T) {
	const secret = "test-secret"
	auth := services.NewAuthService(config.SupabaseConfig{JWTSecret: secret}, fakeEnsurer{}, nil)
	userID := uuid.New()

	token, err := utils.GenerateAccessToken(userID, "shop@example.com", secret, time.Hour)
	require.NoError(t, err)

	w := do(newEngine(AuthRequired(auth)), "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())

	expired, err := utils.GenerateAccessToken(userID, "shop@example.com", secret, -time.Minute)
	require.NoError(t, err)
	w = do(newEngine(AuthRequired(auth)), "Authorization", "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func withSession(s *utils.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.SetSession(c, s)
		c.Next()
	}
}

func TestAdminRequired(t *testing.T) {
	w := do(newEngine(AdminRequired()), "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(newEngine(withSession(&utils.Session{UserID: uuid.New(), Role: models.UserRoleUser}), AdminRequired()), "", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(newEngine(withSession(&utils.Session{UserID: uuid.New(), Role: models.UserRoleAdmin}), AdminRequired()), "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubscriptionRequired(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name   string
		sub    models.Subscription
		status int
	}{
		{"trial", models.DefaultSubscription(), http.StatusOK},
		{"active until later", models.Subscription{Status: models.SubscriptionStatusActive, EndDate: &future}, http.StatusOK},
		{"active but ended", models.Subscription{Status: models.SubscriptionStatusActive, EndDate: &past}, http.StatusForbidden},
		{"canceled", models.Subscription{Status: models.SubscriptionStatusCanceled}, http.StatusForbidden},
		{"past due", models.Subscription{Status: models.SubscriptionStatusPastDue}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &utils.Session{UserID: uuid.New(), Subscription: tt.sub}
			w := do(newEngine(withSession(session), SubscriptionRequired(clock)), "", "")
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(0.001), 2)
	r := newEngine(rl.Middleware())

	assert.Equal(t, http.StatusOK, do(r, "", "").Code)
	assert.Equal(t, http.StatusOK, do(r, "", "").Code)

	w := do(r, "", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}

func TestRateLimiterPerUserKeys(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(0.001), 1)
	first := &utils.Session{UserID: uuid.New()}
	second := &utils.Session{UserID: uuid.New()}

	assert.Equal(t, http.StatusOK, do(newEngine(withSession(first), rl.PerUser()), "", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(newEngine(withSession(first), rl.PerUser()), "", "").Code)
	assert.Equal(t, http.StatusOK, do(newEngine(withSession(second), rl.PerUser()), "", "").Code)
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 1)
	rl.Allow("a")

	rl.cleanup(time.Now())
	assert.Len(t, rl.visitors, 1)

	rl.cleanup(time.Now().Add(visitorIdle + time.Second))
	assert.Empty(t, rl.visitors)
}

func TestNewGenerationLimiterBurst(t *testing.T) {
	rl := NewGenerationLimiter(config.RateLimitConfig{GenerationPerMinute: 3})
	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("u"))
	}
	assert.False(t, rl.Allow("u"))
}

func TestCORS(t *testing.T) {
	r := newEngine(CORS(config.CORSConfig{AllowedOrigins: []string{"https://app.example.com"}}))

	w := do(r, "Origin", "https://app.example.com")
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Total-Count")

	w = do(r, "Origin", "https://evil.example.com")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestResolveLanguage(t *testing.T) {
	assert.Equal(t, "en", ResolveLanguage(""))
	assert.Equal(t, "en", ResolveLanguage("fr-FR,fr;q=0.9"))
	assert.Equal(t, "en", ResolveLanguage("EN-us"))
}

func TestExtractResource(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, "content", extractResourceType("/api/content/"+id.String()+"/feedback"))
	assert.Equal(t, "health", extractResourceType("/health"))
	assert.Equal(t, id, extractResourceID("/api/content/"+id.String()+"/feedback"))
	assert.Equal(t, uuid.Nil, extractResourceID("/api/content/save"))
}

type recordingAudits struct {
	entries chan *models.AuditLog
}

func (r *recordingAudits) Create(ctx context.Context, entry *models.AuditLog) error {
	r.entries <- entry
	return nil
}

func TestAuditLogMiddleware(t *testing.T) {
	audits := &recordingAudits{entries: make(chan *models.AuditLog, 1)}
	userID := uuid.New()

	r := gin.New()
	r.Use(withSession(&utils.Session{UserID: userID}), AuditLogMiddleware(audits))
	r.POST("/api/brand-voices", func(c *gin.Context) {
		var body map[string]interface{}
		require.NoError(t, c.ShouldBindJSON(&body))
		c.JSON(http.StatusCreated, body)
	})
	r.GET("/api/brand-voices", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/api/brand-voices", strings.NewReader(`{"name":"Calm"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"name":"Calm"}`, w.Body.String())

	select {
	case entry := <-audits.entries:
		assert.Equal(t, "POST /api/brand-voices", entry.Action)
		assert.Equal(t, "brand-voices", entry.ResourceType)
		assert.Equal(t, http.StatusCreated, entry.Status)
		require.NotNil(t, entry.UserID)
		assert.Equal(t, userID, *entry.UserID)
		assert.JSONEq(t, `{"name":"Calm"}`, string(entry.Payload))
	case <-time.After(time.Second):
		t.Fatal("audit entry not written")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/brand-voices", nil))
	select {
	case <-audits.entries:
		t.Fatal("GET requests are not audited")
	case <-time.After(50 * time.Millisecond):
	}
}
