package domain

import "time"

// SenderType indicates who authored a conversation message.
type SenderType string

const (
	SenderCustomer SenderType = "customer"
	SenderAgent    SenderType = "agent"
)

// ConversationMessage captures one entry in a ticket thread. Messages are
// immutable once created and displayed in creation order ascending.
// Internal notes are never exposed to the customer-facing channel.
type ConversationMessage struct {
	ID             string
	TicketID       string
	SenderType     SenderType
	SenderName     string
	SenderEmail    string
	Message        string
	IsInternalNote bool
	CreatedAt      time.Time
}
