package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-desk/internal/domain"
)

func newAuditFixture() (*AuditRecorder, *fakeActivityRepo, *fakeAgentRepo) {
	activity := &fakeActivityRepo{}
	agents := &fakeAgentRepo{agents: map[string]domain.Agent{}}
	return NewAuditRecorder(activity, agents), activity, agents
}

func TestRecordFieldChangeUsesDisplayLabel(t *testing.T) {
	recorder, activity, _ := newAuditFixture()

	err := recorder.RecordFieldChange(context.Background(), "Sarah Kim", "t1", "priority", "low", "urgent")
	require.NoError(t, err)

	require.Len(t, activity.entries, 1)
	entry := activity.entries[0]
	assert.Equal(t, "Priority", entry.FieldName)
	assert.Equal(t, domain.ActivityAction, entry.Action)
	assert.Equal(t, "low", entry.OldValue)
	assert.Equal(t, "urgent", entry.NewValue)
}

func TestRecordFieldChangeUnknownFieldKeepsRawName(t *testing.T) {
	recorder, activity, _ := newAuditFixture()

	err := recorder.RecordFieldChange(context.Background(), "Sarah Kim", "t1", "escalation_level", "1", "2")
	require.NoError(t, err)

	require.Len(t, activity.entries, 1)
	assert.Equal(t, "escalation_level", activity.entries[0].FieldName)
}

func TestRecordFieldChangeJoinsTagSets(t *testing.T) {
	recorder, activity, _ := newAuditFixture()

	err := recorder.RecordFieldChange(context.Background(), "Sarah Kim", "t1", "tags",
		[]string{"bug"}, []string{"bug", "urgent"})
	require.NoError(t, err)

	require.Len(t, activity.entries, 1)
	assert.Equal(t, "bug", activity.entries[0].OldValue)
	assert.Equal(t, "bug, urgent", activity.entries[0].NewValue)
}

func TestRecordFieldChangeResolvesAssigneeNames(t *testing.T) {
	recorder, activity, agents := newAuditFixture()
	agents.agents["agent-1"] = domain.Agent{ID: "agent-1", Name: "Sarah Kim"}

	err := recorder.RecordFieldChange(context.Background(), "Lee Wong", "t1", "assignee_id", nil, "agent-1")
	require.NoError(t, err)

	require.Len(t, activity.entries, 1)
	assert.Equal(t, "Assignee", activity.entries[0].FieldName)
	assert.Equal(t, "Unassigned", activity.entries[0].OldValue)
	assert.Equal(t, "Sarah Kim", activity.entries[0].NewValue)
}

func TestRecordFieldChangeUnresolvedAssigneeShowsUnassigned(t *testing.T) {
	recorder, activity, _ := newAuditFixture()

	err := recorder.RecordFieldChange(context.Background(), "Lee Wong", "t1", "assignee_id", "deleted-agent", nil)
	require.NoError(t, err)

	require.Len(t, activity.entries, 1)
	assert.Equal(t, "Unassigned", activity.entries[0].OldValue)
	assert.Equal(t, "Unassigned", activity.entries[0].NewValue)
}

func TestRecordFieldChangeNilValuesDisplayEmpty(t *testing.T) {
	recorder, activity, _ := newAuditFixture()

	err := recorder.RecordFieldChange(context.Background(), "Sarah Kim", "t1", "description", nil, "Replacement shipped")
	require.NoError(t, err)

	require.Len(t, activity.entries, 1)
	assert.Equal(t, "Description", activity.entries[0].FieldName)
	assert.Equal(t, "", activity.entries[0].OldValue)
	assert.Equal(t, "Replacement shipped", activity.entries[0].NewValue)
}
