package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
	"github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// AuthService signs agents in. The session it issues is what attributes
// audit entries to a display name.
type AuthService struct {
	agents repository.AgentRepository
	tokens *auth.TokenManager
}

// NewAuthService constructs the service.
func NewAuthService(agents repository.AgentRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{agents: agents, tokens: tokens}
}

// LoginResult carries the issued session token.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Agent     *domain.Agent
}

// Login verifies credentials and issues a JWT. Deactivated agents cannot
// sign in, though tickets may still reference them.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	agent, err := s.agents.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if !agent.Active {
		return nil, errorutil.NewUnauthorized("agent is deactivated")
	}
	if agent.PasswordHash == "" || auth.ComparePassword(agent.PasswordHash, password) != nil {
		return nil, errorutil.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(agent.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Agent: agent}, nil
}

// TokenManager exposes the underlying manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
