package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/query"
	"github.com/spec-kit/support-desk/pkg/dashboard"
	"github.com/spec-kit/support-desk/pkg/util/errorutil"
)

type fakeTicketRepo struct {
	tickets    map[string]*domain.Ticket
	updates    []map[string]any
	updateErr  error
	listResult []domain.Ticket
	listTotal  int
	listSpec   *query.Spec
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	ticket.ID = "new-ticket"
	ticket.TicketNumber = 1042
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeTicketRepo) UpdateFields(_ context.Context, id string, fields map[string]any) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	f.updates = append(f.updates, fields)
	return nil
}

func (f *fakeTicketRepo) List(_ context.Context, spec query.Spec) ([]domain.Ticket, int, error) {
	f.listSpec = &spec
	return f.listResult, f.listTotal, nil
}

type fakeAgentRepo struct {
	agents map[string]domain.Agent
}

func (f *fakeAgentRepo) Create(_ context.Context, _ *domain.Agent) error { return nil }
func (f *fakeAgentRepo) Update(_ context.Context, _ *domain.Agent) error { return nil }

func (f *fakeAgentRepo) GetByID(_ context.Context, id string) (*domain.Agent, error) {
	agent, ok := f.agents[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &agent, nil
}

func (f *fakeAgentRepo) GetByEmail(_ context.Context, email string) (*domain.Agent, error) {
	for _, agent := range f.agents {
		if agent.Email == email {
			return &agent, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAgentRepo) List(_ context.Context) ([]domain.Agent, error) {
	roster := make([]domain.Agent, 0, len(f.agents))
	for _, agent := range f.agents {
		roster = append(roster, agent)
	}
	return roster, nil
}

type fakeActivityRepo struct {
	entries   []domain.ActivityEntry
	createErr error
}

func (f *fakeActivityRepo) Create(_ context.Context, entry *domain.ActivityEntry) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeActivityRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.ActivityEntry, error) {
	var out []domain.ActivityEntry
	for _, entry := range f.entries {
		if entry.TicketID == ticketID {
			out = append(out, entry)
		}
	}
	return out, nil
}

type spyListCache struct {
	entries       map[string][]byte
	invalidations int
}

func newSpyListCache() *spyListCache {
	return &spyListCache{entries: map[string][]byte{}}
}

func (c *spyListCache) Get(_ context.Context, signature string) ([]byte, bool) {
	payload, ok := c.entries[signature]
	return payload, ok
}

func (c *spyListCache) Set(_ context.Context, signature string, payload []byte) {
	c.entries[signature] = payload
}

func (c *spyListCache) Invalidate(_ context.Context) {
	c.invalidations++
	c.entries = map[string][]byte{}
}

type serviceFixture struct {
	service  *TicketService
	tickets  *fakeTicketRepo
	agents   *fakeAgentRepo
	activity *fakeActivityRepo
	cache    *spyListCache
}

func newFixture() *serviceFixture {
	tickets := &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
	agents := &fakeAgentRepo{agents: map[string]domain.Agent{}}
	activity := &fakeActivityRepo{}
	listCache := newSpyListCache()
	svc := NewTicketService(TicketDependencies{
		TicketRepo:   tickets,
		AgentRepo:    agents,
		ActivityRepo: activity,
		Audit:        NewAuditRecorder(activity, agents),
		ListCache:    listCache,
	})
	return &serviceFixture{service: svc, tickets: tickets, agents: agents, activity: activity, cache: listCache}
}

func seedTicket(f *serviceFixture, id string) *domain.Ticket {
	ticket := &domain.Ticket{
		ID:            id,
		TicketNumber:  1001,
		Subject:       "Printer on fire",
		CustomerName:  "Pat Doe",
		CustomerEmail: "pat@example.com",
		Channel:       domain.ChannelEmail,
		Priority:      domain.TicketPriorityHigh,
		Status:        domain.TicketStatusOpen,
		Tags:          []string{"hardware"},
	}
	f.tickets.tickets[id] = ticket
	return ticket
}

func defaultRequest() dashboard.Request {
	return dashboard.Request{
		Filters:    dashboard.NewFilterState(),
		SortField:  "created_at",
		Descending: true,
		Page:       1,
		PageSize:   10,
	}
}

func TestListRejectsUnknownSortField(t *testing.T) {
	f := newFixture()
	req := defaultRequest()
	req.SortField = "customer_email"

	_, err := f.service.List(context.Background(), req)
	require.Error(t, err)

	var domainErr *errorutil.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestListDerivesPageMetadata(t *testing.T) {
	f := newFixture()
	f.tickets.listResult = make([]domain.Ticket, 3)
	f.tickets.listTotal = 23

	req := defaultRequest()
	req.Page = 3

	page, err := f.service.List(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 23, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 10, page.PageSize)
	require.NotNil(t, f.tickets.listSpec)
	assert.Equal(t, uint64(20), f.tickets.listSpec.Offset())
}

func TestListResolvesAssigneesFromRoster(t *testing.T) {
	f := newFixture()
	f.agents.agents["agent-1"] = domain.Agent{ID: "agent-1", Name: "Sarah Kim"}
	assignee := "agent-1"
	missing := "agent-gone"
	f.tickets.listResult = []domain.Ticket{
		{ID: "t1", AssigneeID: &assignee},
		{ID: "t2"},
		{ID: "t3", AssigneeID: &missing},
	}
	f.tickets.listTotal = 3

	page, err := f.service.List(context.Background(), defaultRequest())
	require.NoError(t, err)

	require.NotNil(t, page.Tickets[0].Assignee)
	assert.Equal(t, "Sarah Kim", page.Tickets[0].Assignee.Name)
	assert.Nil(t, page.Tickets[1].Assignee)
	assert.Nil(t, page.Tickets[2].Assignee)
}

func TestCreateValidatesInput(t *testing.T) {
	f := newFixture()

	_, err := f.service.Create(context.Background(), TicketCreateInput{
		Subject:       "",
		CustomerName:  "Pat Doe",
		CustomerEmail: "not-an-email",
		Channel:       domain.ChannelWeb,
	})
	require.Error(t, err)

	var domainErr *errorutil.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Contains(t, domainErr.Details, "subject")
	assert.Contains(t, domainErr.Details, "customer_email")
	// "web" is stored and filterable but never offered at intake.
	assert.Contains(t, domainErr.Details, "channel")
}

func TestCreateDefaultsPriorityAndStatus(t *testing.T) {
	f := newFixture()

	ticket, err := f.service.Create(context.Background(), TicketCreateInput{
		Subject:       "Order never arrived",
		CustomerName:  "Pat Doe",
		CustomerEmail: "pat@example.com",
		Channel:       domain.ChannelEmail,
		Tags:          []string{"shipping", " shipping ", "vip"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	assert.Equal(t, []string{"shipping", "vip"}, ticket.Tags)
	assert.Equal(t, int64(1042), ticket.TicketNumber)
}

func TestUpdateFieldUnchangedValueWritesNothing(t *testing.T) {
	f := newFixture()
	seedTicket(f, "t1")

	ticket, changed, err := f.service.UpdateField(context.Background(), "Sarah Kim", "t1", "status", "open", "open")
	require.NoError(t, err)

	assert.False(t, changed)
	assert.Equal(t, "t1", ticket.ID)
	assert.Empty(t, f.tickets.updates)
	assert.Empty(t, f.activity.entries)
	assert.Zero(t, f.cache.invalidations)
}

func TestUpdateFieldEquivalentTagSetsWriteNothing(t *testing.T) {
	f := newFixture()
	seedTicket(f, "t1")

	// JSON-decoded payloads arrive as []any; order and duplicates are
	// ignored for the comparison.
	_, changed, err := f.service.UpdateField(context.Background(), "Sarah Kim", "t1", "tags",
		[]any{"hardware", "urgent"}, []any{"urgent", "hardware", "urgent"})
	require.NoError(t, err)

	assert.False(t, changed)
	assert.Empty(t, f.tickets.updates)
	assert.Empty(t, f.activity.entries)
}

func TestUpdateFieldEmptyDescriptionStoresNull(t *testing.T) {
	f := newFixture()
	ticket := seedTicket(f, "t1")
	description := "Old details"
	ticket.Description = &description

	_, changed, err := f.service.UpdateField(context.Background(), "Sarah Kim", "t1", "description", "Old details", "")
	require.NoError(t, err)

	assert.True(t, changed)
	require.Len(t, f.tickets.updates, 1)
	assert.Equal(t, map[string]any{"description": nil}, f.tickets.updates[0])
}

func TestUpdateFieldEmptyDescriptionMatchesAbsent(t *testing.T) {
	f := newFixture()
	seedTicket(f, "t1")

	// "" normalizes to NULL, so clearing an already-empty description is
	// not a change.
	_, changed, err := f.service.UpdateField(context.Background(), "Sarah Kim", "t1", "description", nil, "")
	require.NoError(t, err)

	assert.False(t, changed)
	assert.Empty(t, f.tickets.updates)
	assert.Empty(t, f.activity.entries)
}

func TestUpdateFieldChangedValueWritesOnceAndAudits(t *testing.T) {
	f := newFixture()
	seedTicket(f, "t1")

	_, changed, err := f.service.UpdateField(context.Background(), "Sarah Kim", "t1", "status", "open", "resolved")
	require.NoError(t, err)

	assert.True(t, changed)
	require.Len(t, f.tickets.updates, 1)
	assert.Equal(t, map[string]any{"status": "resolved"}, f.tickets.updates[0])

	require.Len(t, f.activity.entries, 1)
	entry := f.activity.entries[0]
	assert.Equal(t, "Sarah Kim", entry.UserName)
	assert.Equal(t, domain.ActivityAction, entry.Action)
	assert.Equal(t, "Status", entry.FieldName)
	assert.Equal(t, "open", entry.OldValue)
	assert.Equal(t, "resolved", entry.NewValue)
}

func TestUpdateFieldAuditFailureFailsOperation(t *testing.T) {
	f := newFixture()
	seedTicket(f, "t1")
	f.activity.createErr = errors.New("activity insert failed")

	_, _, err := f.service.UpdateField(context.Background(), "Sarah Kim", "t1", "status", "open", "resolved")
	require.Error(t, err)

	// The field update already landed; only the audit write failed.
	assert.Len(t, f.tickets.updates, 1)
	assert.Empty(t, f.activity.entries)

	// Cached listings went stale the moment the update landed, so they
	// must be invalidated regardless of the audit outcome.
	assert.Equal(t, 1, f.cache.invalidations)
}

func TestListCachePayloadOmitsPasswordHash(t *testing.T) {
	f := newFixture()
	f.agents.agents["agent-1"] = domain.Agent{
		ID:           "agent-1",
		Name:         "Sarah Kim",
		PasswordHash: "$2a$12$sealed-credential",
	}
	assignee := "agent-1"
	f.tickets.listResult = []domain.Ticket{{ID: "t1", AssigneeID: &assignee}}
	f.tickets.listTotal = 1

	req := defaultRequest()
	_, err := f.service.List(context.Background(), req)
	require.NoError(t, err)

	payload, ok := f.cache.entries[req.Signature()]
	require.True(t, ok)
	assert.Contains(t, string(payload), "Sarah Kim")
	assert.NotContains(t, string(payload), "sealed-credential")
}

func TestUpdateFieldRejectsNonEditableField(t *testing.T) {
	f := newFixture()
	seedTicket(f, "t1")

	_, _, err := f.service.UpdateField(context.Background(), "Sarah Kim", "t1", "ticket_number", int64(1001), int64(9999))
	require.Error(t, err)

	var domainErr *errorutil.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Empty(t, f.tickets.updates)
}

func TestUpdateFieldRejectsUnknownStatus(t *testing.T) {
	f := newFixture()
	seedTicket(f, "t1")

	_, _, err := f.service.UpdateField(context.Background(), "Sarah Kim", "t1", "status", "open", "escalated")
	require.Error(t, err)
	assert.Empty(t, f.tickets.updates)
}

func TestUpdateFieldClearingAssignee(t *testing.T) {
	f := newFixture()
	ticket := seedTicket(f, "t1")
	assignee := "agent-1"
	ticket.AssigneeID = &assignee
	f.agents.agents["agent-1"] = domain.Agent{ID: "agent-1", Name: "Sarah Kim"}

	_, changed, err := f.service.UpdateField(context.Background(), "Lee Wong", "t1", "assignee_id", "agent-1", nil)
	require.NoError(t, err)

	assert.True(t, changed)
	require.Len(t, f.tickets.updates, 1)
	assert.Equal(t, map[string]any{"assignee_id": nil}, f.tickets.updates[0])

	require.Len(t, f.activity.entries, 1)
	assert.Equal(t, "Assignee", f.activity.entries[0].FieldName)
	assert.Equal(t, "Sarah Kim", f.activity.entries[0].OldValue)
	assert.Equal(t, "Unassigned", f.activity.entries[0].NewValue)
}

func TestActivityRequiresExistingTicket(t *testing.T) {
	f := newFixture()

	_, err := f.service.Activity(context.Background(), "missing")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestActivityReturnsEntries(t *testing.T) {
	f := newFixture()
	seedTicket(f, "t1")
	f.activity.entries = []domain.ActivityEntry{
		{TicketID: "t1", FieldName: "Status"},
		{TicketID: "other", FieldName: "Subject"},
	}

	entries, err := f.service.Activity(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Status", entries[0].FieldName)
}
