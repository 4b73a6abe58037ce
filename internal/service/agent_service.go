package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
	"github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// AgentService manages the roster admin screen.
type AgentService struct {
	agents     repository.AgentRepository
	bcryptCost int
	listCache  ListingCache
}

// NewAgentService constructs the service. Agent edits invalidate the ticket
// listing cache because cached pages embed resolved assignee records.
func NewAgentService(agents repository.AgentRepository, bcryptCost int, listCache ListingCache) *AgentService {
	return &AgentService{agents: agents, bcryptCost: bcryptCost, listCache: listCache}
}

// AgentInput describes roster create/edit payloads.
type AgentInput struct {
	Name      string
	Email     string
	AvatarURL *string
	Active    *bool
	Password  *string
}

// List returns the roster ordered by name with derived ticket counts.
func (s *AgentService) List(ctx context.Context) ([]domain.Agent, error) {
	return s.agents.List(ctx)
}

// Create adds an agent. Active defaults to true.
func (s *AgentService) Create(ctx context.Context, input AgentInput) (*domain.Agent, error) {
	if err := validateAgentInput(input); err != nil {
		return nil, err
	}

	agent := &domain.Agent{
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		AvatarURL: input.AvatarURL,
		Active:    true,
	}
	if input.Active != nil {
		agent.Active = *input.Active
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		agent.PasswordHash = hash
	}

	if err := s.agents.Create(ctx, agent); err != nil {
		return nil, err
	}
	return agent, nil
}

// Update edits an existing agent. Deactivation is non-destructive: tickets
// keep their assignee reference regardless of the active flag.
func (s *AgentService) Update(ctx context.Context, id string, input AgentInput) (*domain.Agent, error) {
	if err := validateAgentInput(input); err != nil {
		return nil, err
	}

	agent, err := s.agents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	agent.Name = strings.TrimSpace(input.Name)
	agent.Email = strings.TrimSpace(input.Email)
	agent.AvatarURL = input.AvatarURL
	if input.Active != nil {
		agent.Active = *input.Active
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		agent.PasswordHash = hash
	}

	if err := s.agents.Update(ctx, agent); err != nil {
		return nil, err
	}
	s.invalidateListings(ctx)
	return agent, nil
}

// SetActive toggles the active flag without touching other fields.
func (s *AgentService) SetActive(ctx context.Context, id string, active bool) (*domain.Agent, error) {
	agent, err := s.agents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	agent.Active = active
	if err := s.agents.Update(ctx, agent); err != nil {
		return nil, err
	}
	s.invalidateListings(ctx)
	return agent, nil
}

func (s *AgentService) invalidateListings(ctx context.Context) {
	if s.listCache != nil {
		s.listCache.Invalidate(ctx)
	}
}

func validateAgentInput(input AgentInput) error {
	fieldErrors := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		fieldErrors["name"] = "name is required"
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(input.Email)); err != nil {
		fieldErrors["email"] = "valid email is required"
	}
	if len(fieldErrors) > 0 {
		return errorutil.NewValidationError("invalid agent", fieldErrors)
	}
	return nil
}
