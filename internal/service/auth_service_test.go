package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/pkg/util/errorutil"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeAgentRepo) {
	t.Helper()
	agents := &fakeAgentRepo{agents: map[string]domain.Agent{}}
	tokens := auth.NewTokenManager("test-secret", 60)
	return NewAuthService(agents, tokens), agents
}

func seedAgentWithPassword(t *testing.T, agents *fakeAgentRepo, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)
	agents.agents["agent-1"] = domain.Agent{
		ID:           "agent-1",
		Name:         "Sarah Kim",
		Email:        "sarah@example.com",
		Active:       active,
		PasswordHash: string(hash),
	}
}

func TestLoginIssuesToken(t *testing.T) {
	svc, agents := newAuthFixture(t)
	seedAgentWithPassword(t, agents, true)

	result, err := svc.Login(context.Background(), "sarah@example.com", "correct-password")
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "agent-1", result.Agent.ID)

	claims, err := svc.TokenManager().ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "agent-1", claims.AgentID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, agents := newAuthFixture(t)
	seedAgentWithPassword(t, agents, true)

	_, err := svc.Login(context.Background(), "sarah@example.com", "wrong")
	require.Error(t, err)

	var domainErr *errorutil.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	require.Error(t, err)

	var domainErr *errorutil.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestLoginRejectsDeactivatedAgent(t *testing.T) {
	svc, agents := newAuthFixture(t)
	seedAgentWithPassword(t, agents, false)

	_, err := svc.Login(context.Background(), "sarah@example.com", "correct-password")
	require.Error(t, err)

	var domainErr *errorutil.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}
