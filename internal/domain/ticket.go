package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusWaiting    TicketStatus = "waiting"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// TicketChannel enumerates the medium a ticket originated through.
type TicketChannel string

const (
	ChannelEmail  TicketChannel = "email"
	ChannelChat   TicketChannel = "chat"
	ChannelPhone  TicketChannel = "phone"
	ChannelWeb    TicketChannel = "web"
	ChannelSocial TicketChannel = "social"
)

// ValidStatus reports whether s is a known status value.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusWaiting, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// ValidPriority reports whether p is a known priority value.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// ValidChannel reports whether c is a known channel value. "web" is a valid
// stored value even though the intake form never offers it.
func ValidChannel(c TicketChannel) bool {
	switch c {
	case ChannelEmail, ChannelChat, ChannelPhone, ChannelWeb, ChannelSocial:
		return true
	}
	return false
}

// IntakeChannels lists the channels the creation endpoint accepts.
var IntakeChannels = []TicketChannel{ChannelEmail, ChannelPhone, ChannelChat, ChannelSocial}

// ValidIntakeChannel reports whether c may be used when creating a ticket.
func ValidIntakeChannel(c TicketChannel) bool {
	for _, candidate := range IntakeChannels {
		if c == candidate {
			return true
		}
	}
	return false
}

// Ticket is the aggregate for customer support cases. TicketNumber is the
// sequential human-facing identity, assigned once and never reused.
type Ticket struct {
	ID            string
	TicketNumber  int64
	Subject       string
	CustomerName  string
	CustomerEmail string
	Channel       TicketChannel
	Priority      TicketPriority
	Status        TicketStatus
	Description   *string
	Tags          []string
	AssigneeID    *string
	OrderNumber   *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Assignee is populated on reads when the reference resolves.
	Assignee *Agent
}
