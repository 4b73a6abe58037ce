package dto

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// CreateMessageRequest payload.
type CreateMessageRequest struct {
	SenderType     domain.SenderType `json:"sender_type"`
	SenderName     string            `json:"sender_name"`
	SenderEmail    string            `json:"sender_email"`
	Message        string            `json:"message"`
	IsInternalNote bool              `json:"is_internal_note"`
}

// MessageResponse represents one thread message.
type MessageResponse struct {
	ID             string            `json:"id"`
	TicketID       string            `json:"ticket_id"`
	SenderType     domain.SenderType `json:"sender_type"`
	SenderName     string            `json:"sender_name"`
	SenderEmail    string            `json:"sender_email"`
	Message        string            `json:"message"`
	IsInternalNote bool              `json:"is_internal_note"`
	CreatedAt      time.Time         `json:"created_at"`
}
