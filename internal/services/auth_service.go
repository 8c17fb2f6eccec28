// internal/services/auth_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saileshbalu94/ecommerce-ai/internal/config"
	"github.com/saileshbalu94/ecommerce-ai/internal/models"
	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

var ErrTokenExpired = fmt.Errorf("%w: token expired", ErrUnauthorized)

// ProfileEnsurer loads or creates the profile behind an authenticated id.
type ProfileEnsurer interface {
	EnsureProfile(ctx context.Context, id uuid.UUID, email string) (*models.Profile, error)
}

// AuthService turns a bearer token from the auth provider into a session.
// Tokens are verified locally when the JWT secret is known; otherwise the
// provider's user endpoint is asked.
type AuthService struct {
	cfg      config.SupabaseConfig
	profiles ProfileEnsurer
	client   *http.Client
	logger   *logrus.Logger
}

type providerUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func NewAuthService(cfg config.SupabaseConfig, profiles ProfileEnsurer, logger *logrus.Logger) *AuthService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AuthService{
		cfg:      cfg,
		profiles: profiles,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*utils.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrUnauthorized
	}

	var (
		user *providerUser
		err  error
	)
	if s.cfg.JWTSecret != "" {
		user, err = s.verifyLocally(token)
	} else {
		user, err = s.fetchUser(ctx, token)
	}
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(user.ID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	profile, err := s.profiles.EnsureProfile(ctx, id, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	return &utils.Session{
		UserID:       profile.ID,
		Email:        profile.Email,
		Role:         profile.Role,
		Subscription: profile.Subscription,
	}, nil
}

func (s *AuthService) verifyLocally(token string) (*providerUser, error) {
	claims, err := utils.ValidateAccessToken(token, s.cfg.JWTSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrUnauthorized
	}
	return &providerUser{ID: claims.Subject, Email: claims.Email}, nil
}

func (s *AuthService) fetchUser(ctx context.Context, token string) (*providerUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build auth request: %w", err)
	}
	apiKey := s.cfg.ServiceKey
	if apiKey == "" {
		apiKey = s.cfg.AnonKey
	}
	req.Header.Set("apikey", apiKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(body),
		}).Warn("Auth provider returned an unexpected status")
		return nil, fmt.Errorf("auth provider returned status %d", resp.StatusCode)
	}

	var user providerUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode auth provider user: %w", err)
	}
	if user.ID == "" {
		return nil, ErrUnauthorized
	}
	return &user, nil
}
