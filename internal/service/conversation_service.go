package service

import (
	"context"
	"strings"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
	"github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// ConversationService appends and lists ticket thread messages.
type ConversationService struct {
	conversations repository.ConversationRepository
	tickets       repository.TicketRepository
}

// NewConversationService constructs the service.
func NewConversationService(conversations repository.ConversationRepository, tickets repository.TicketRepository) *ConversationService {
	return &ConversationService{conversations: conversations, tickets: tickets}
}

// MessageInput describes one thread entry to append.
type MessageInput struct {
	SenderType     domain.SenderType
	SenderName     string
	SenderEmail    string
	Message        string
	IsInternalNote bool
}

// AddMessage appends a message to a ticket's thread. The body is trimmed
// and must be non-empty; messages are immutable once created.
func (s *ConversationService) AddMessage(ctx context.Context, ticketID string, input MessageInput) (*domain.ConversationMessage, error) {
	body := strings.TrimSpace(input.Message)
	if body == "" {
		return nil, errorutil.NewValidationError("message cannot be empty", nil)
	}
	if input.SenderType != domain.SenderCustomer && input.SenderType != domain.SenderAgent {
		return nil, errorutil.NewValidationError("unknown sender type", map[string]any{"sender_type": input.SenderType})
	}

	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		return nil, err
	}

	msg := &domain.ConversationMessage{
		TicketID:       ticketID,
		SenderType:     input.SenderType,
		SenderName:     strings.TrimSpace(input.SenderName),
		SenderEmail:    strings.TrimSpace(input.SenderEmail),
		Message:        body,
		IsInternalNote: input.IsInternalNote,
	}
	if err := s.conversations.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListByTicket returns the thread in creation order ascending. Internal
// notes are included: this is the agent-facing surface; the customer
// channel is served elsewhere.
func (s *ConversationService) ListByTicket(ctx context.Context, ticketID string) ([]domain.ConversationMessage, error) {
	return s.conversations.ListByTicket(ctx, ticketID)
}
