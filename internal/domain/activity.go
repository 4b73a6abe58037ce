package domain

import "time"

// ActivityAction is the verb recorded for an audit entry. Field edits are
// currently the only audited mutation.
const ActivityAction = "updated"

// ActivityEntry is an append-only audit record of a field-level ticket
// change. Old and new values are stored as display strings, already
// resolved (assignee names, comma-joined tags). Listed descending.
type ActivityEntry struct {
	ID        string
	TicketID  string
	UserName  string
	Action    string
	FieldName string
	OldValue  string
	NewValue  string
	CreatedAt time.Time
}
