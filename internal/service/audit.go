package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
)

// fieldLabels maps editable ticket fields to their fixed display labels.
// Unknown fields fall back to the raw field identifier.
var fieldLabels = map[string]string{
	"subject":     "Subject",
	"status":      "Status",
	"priority":    "Priority",
	"assignee_id": "Assignee",
	"description": "Description",
	"tags":        "Tags",
}

// unassignedDisplay is shown when an assignee reference is absent or does
// not resolve against the roster.
const unassignedDisplay = "Unassigned"

// AuditRecorder turns a field change into one human-readable activity
// entry. The actor is an explicit parameter sourced from the authenticated
// session, never process-wide state.
type AuditRecorder struct {
	activity repository.ActivityRepository
	agents   repository.AgentRepository
}

// NewAuditRecorder constructs the recorder.
func NewAuditRecorder(activity repository.ActivityRepository, agents repository.AgentRepository) *AuditRecorder {
	return &AuditRecorder{activity: activity, agents: agents}
}

// RecordFieldChange appends exactly one entry for a committed field edit.
// Assignee ids are resolved to display names, tag sets render comma-joined,
// everything else takes its default string form with nil as empty.
func (r *AuditRecorder) RecordFieldChange(ctx context.Context, actorName, ticketID, field string, oldValue, newValue any) error {
	label, known := fieldLabels[field]
	if !known {
		label = field
	}

	var oldDisplay, newDisplay string
	if field == "assignee_id" {
		oldDisplay = r.resolveAgentName(ctx, oldValue)
		newDisplay = r.resolveAgentName(ctx, newValue)
	} else {
		oldDisplay = displayValue(oldValue)
		newDisplay = displayValue(newValue)
	}

	entry := &domain.ActivityEntry{
		TicketID:  ticketID,
		UserName:  actorName,
		Action:    domain.ActivityAction,
		FieldName: label,
		OldValue:  oldDisplay,
		NewValue:  newDisplay,
	}
	return r.activity.Create(ctx, entry)
}

func (r *AuditRecorder) resolveAgentName(ctx context.Context, value any) string {
	id := displayValue(value)
	if id == "" {
		return unassignedDisplay
	}
	agent, err := r.agents.GetByID(ctx, id)
	if err != nil {
		return unassignedDisplay
	}
	return agent.Name
}

func displayValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case []string:
		return strings.Join(v, ", ")
	default:
		return fmt.Sprint(v)
	}
}
