package domain

import "time"

// Agent models a support staff member who may be assigned tickets.
// Deactivation is non-destructive: tickets keep their reference regardless
// of the active flag.
type Agent struct {
	ID        string
	Name      string
	Email     string
	AvatarURL *string
	Active    bool
	// Never serialized; the hash must not leave the process, including
	// into cache payloads.
	PasswordHash string `json:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// TicketCount is derived on read by counting tickets whose assignee
	// reference equals this agent. Never stored.
	TicketCount int64
}
