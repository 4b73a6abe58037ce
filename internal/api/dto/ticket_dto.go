package dto

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Subject       string                `json:"subject"`
	CustomerName  string                `json:"customer_name"`
	CustomerEmail string                `json:"customer_email"`
	Channel       domain.TicketChannel  `json:"channel"`
	Priority      domain.TicketPriority `json:"priority"`
	Description   *string               `json:"description"`
	Tags          []string              `json:"tags"`
	AssigneeID    *string               `json:"assignee_id"`
	OrderNumber   *string               `json:"order_number"`
}

// UpdateTicketFieldRequest carries one inline field edit.
type UpdateTicketFieldRequest struct {
	Field    string `json:"field"`
	OldValue any    `json:"old_value"`
	Value    any    `json:"value"`
}

// TicketResponse is the full ticket representation.
type TicketResponse struct {
	ID            string                `json:"id"`
	TicketNumber  int64                 `json:"ticket_number"`
	Subject       string                `json:"subject"`
	CustomerName  string                `json:"customer_name"`
	CustomerEmail string                `json:"customer_email"`
	Channel       domain.TicketChannel  `json:"channel"`
	Priority      domain.TicketPriority `json:"priority"`
	Status        domain.TicketStatus   `json:"status"`
	Description   *string               `json:"description"`
	Tags          []string              `json:"tags"`
	AssigneeID    *string               `json:"assignee_id"`
	Assignee      *AgentResponse        `json:"assignee,omitempty"`
	OrderNumber   *string               `json:"order_number"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// TicketPageResponse wraps one listing window with its pagination metadata.
type TicketPageResponse struct {
	Tickets    []TicketResponse `json:"tickets"`
	TotalCount int              `json:"total_count"`
	TotalPages int              `json:"total_pages"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
}

// UpdateTicketFieldResponse reports whether the edit wrote anything.
type UpdateTicketFieldResponse struct {
	Ticket  TicketResponse `json:"ticket"`
	Changed bool           `json:"changed"`
}

// ActivityEntryResponse is one audit trail row.
type ActivityEntryResponse struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	UserName  string    `json:"user_name"`
	Action    string    `json:"action"`
	FieldName string    `json:"field_name"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	CreatedAt time.Time `json:"created_at"`
}
