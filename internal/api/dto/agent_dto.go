package dto

import "time"

// CreateAgentRequest payload.
type CreateAgentRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url"`
	Active    *bool   `json:"active"`
	Password  *string `json:"password"`
}

// UpdateAgentRequest payload.
type UpdateAgentRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url"`
	Active    *bool   `json:"active"`
	Password  *string `json:"password"`
}

// SetAgentActiveRequest toggles roster availability.
type SetAgentActiveRequest struct {
	Active bool `json:"active"`
}

// AgentResponse is one roster member with the derived open workload.
type AgentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	AvatarURL   *string   `json:"avatar_url"`
	Active      bool      `json:"active"`
	TicketCount int64     `json:"ticket_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
