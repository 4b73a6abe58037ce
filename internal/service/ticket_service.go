package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/mail"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/query"
	"github.com/spec-kit/support-desk/internal/repository"
	"github.com/spec-kit/support-desk/pkg/dashboard"
	"github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// ListingCache is the slice of the listing cache the services depend on.
// cache.ListCache satisfies it; a nil value disables caching.
type ListingCache interface {
	Get(ctx context.Context, signature string) ([]byte, bool)
	Set(ctx context.Context, signature string, payload []byte)
	Invalidate(ctx context.Context)
}

// TicketService coordinates the listing pipeline, ticket creation and the
// inline-edit commit with its audit trail.
type TicketService struct {
	tickets   repository.TicketRepository
	agents    repository.AgentRepository
	activity  repository.ActivityRepository
	audit     *AuditRecorder
	listCache ListingCache
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	AgentRepo    repository.AgentRepository
	ActivityRepo repository.ActivityRepository
	Audit        *AuditRecorder
	ListCache    ListingCache
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:   deps.TicketRepo,
		agents:    deps.AgentRepo,
		activity:  deps.ActivityRepo,
		audit:     deps.Audit,
		listCache: deps.ListCache,
	}
}

// TicketPage is one window of a filtered, sorted listing plus the metadata
// pagination is derived from.
type TicketPage struct {
	Tickets    []domain.Ticket
	TotalCount int
	TotalPages int
	Page       int
	PageSize   int
}

// List executes one listing read for the given request signature. Filters
// AND together; the free-text search ORs across subject, customer name and
// customer email. The result carries the exact total ignoring pagination.
func (s *TicketService) List(ctx context.Context, req dashboard.Request) (*TicketPage, error) {
	spec := query.Spec{
		Predicates: query.FromFilters(req.Filters),
		Sort:       query.Sort{Field: query.SortField(req.SortField), Descending: req.Descending},
		Page:       req.Page,
		PageSize:   req.PageSize,
	}
	if err := spec.Validate(); err != nil {
		return nil, errorutil.NewValidationError(err.Error(), nil)
	}

	signature := req.Signature()
	if s.listCache != nil {
		if payload, ok := s.listCache.Get(ctx, signature); ok {
			var page TicketPage
			if err := json.Unmarshal(payload, &page); err == nil {
				return &page, nil
			}
		}
	}

	tickets, totalCount, err := s.tickets.List(ctx, spec)
	if err != nil {
		return nil, err
	}
	if err := s.attachAssignees(ctx, tickets); err != nil {
		return nil, err
	}

	page := &TicketPage{
		Tickets:    tickets,
		TotalCount: totalCount,
		TotalPages: dashboard.TotalPages(totalCount, req.PageSize),
		Page:       req.Page,
		PageSize:   req.PageSize,
	}
	if s.listCache != nil {
		if payload, err := json.Marshal(page); err == nil {
			s.listCache.Set(ctx, signature, payload)
		}
	}
	return page, nil
}

// TicketCreateInput describes the new-ticket form payload.
type TicketCreateInput struct {
	Subject       string
	CustomerName  string
	CustomerEmail string
	Channel       domain.TicketChannel
	Priority      domain.TicketPriority
	Description   *string
	Tags          []string
	AssigneeID    *string
	OrderNumber   *string
}

// Create validates and inserts a new ticket. Status always starts open and
// the sequential ticket number is assigned by the store.
func (s *TicketService) Create(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	fieldErrors := map[string]any{}

	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		fieldErrors["subject"] = "subject is required"
	} else if len(subject) > 200 {
		fieldErrors["subject"] = "subject must be at most 200 characters"
	}

	customerName := strings.TrimSpace(input.CustomerName)
	if customerName == "" {
		fieldErrors["customer_name"] = "customer name is required"
	} else if len(customerName) > 100 {
		fieldErrors["customer_name"] = "customer name must be at most 100 characters"
	}

	customerEmail := strings.TrimSpace(input.CustomerEmail)
	if _, err := mail.ParseAddress(customerEmail); err != nil || customerEmail == "" {
		fieldErrors["customer_email"] = "valid customer email is required"
	} else if len(customerEmail) > 255 {
		fieldErrors["customer_email"] = "customer email must be at most 255 characters"
	}

	// The intake allowlist is narrower than the stored enum: "web" exists
	// as a stored and filterable channel but is never offered at creation.
	if !domain.ValidIntakeChannel(input.Channel) {
		fieldErrors["channel"] = "channel must be one of email, phone, chat, social"
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !domain.ValidPriority(priority) {
		fieldErrors["priority"] = "priority must be one of low, medium, high, urgent"
	}

	if input.OrderNumber != nil && len(*input.OrderNumber) > 50 {
		fieldErrors["order_number"] = "order number must be at most 50 characters"
	}

	if len(fieldErrors) > 0 {
		return nil, errorutil.NewValidationError("invalid ticket", fieldErrors)
	}

	ticket := &domain.Ticket{
		Subject:       subject,
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		Channel:       input.Channel,
		Priority:      priority,
		Status:        domain.TicketStatusOpen,
		Description:   input.Description,
		Tags:          dedupTags(input.Tags),
		AssigneeID:    input.AssigneeID,
		OrderNumber:   input.OrderNumber,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.invalidateListings(ctx)
	return ticket, nil
}

// Get returns one ticket with its assignee resolved.
func (s *TicketService) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachAssignee(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// UpdateField commits one inline edit. The attempted value is compared
// against the original the client captured when it entered edit mode: an
// unchanged value returns the current record without writing or auditing.
// A changed value issues the partial update and then the audit write; if
// the audit write fails the whole operation is reported as failed, even
// though the field update already landed.
func (s *TicketService) UpdateField(ctx context.Context, actorName, ticketID, field string, oldValue, newValue any) (*domain.Ticket, bool, error) {
	if _, editable := fieldLabels[field]; !editable {
		return nil, false, errorutil.NewValidationError("field is not editable", map[string]any{"field": field})
	}

	normalizedNew, err := normalizeFieldValue(field, newValue)
	if err != nil {
		return nil, false, err
	}
	normalizedOld := coerceValue(oldValue)

	if dashboard.ValuesEqual(normalizedOld, normalizedNew) {
		ticket, err := s.Get(ctx, ticketID)
		if err != nil {
			return nil, false, err
		}
		return ticket, false, nil
	}

	if err := s.tickets.UpdateFields(ctx, ticketID, map[string]any{field: normalizedNew}); err != nil {
		return nil, false, err
	}
	// The field update has landed, so cached listings are stale from this
	// point on. Invalidate before the audit write: a failed audit still
	// fails the operation, but must not leave pre-update pages served.
	s.invalidateListings(ctx)
	if err := s.audit.RecordFieldChange(ctx, actorName, ticketID, field, normalizedOld, normalizedNew); err != nil {
		return nil, false, err
	}

	ticket, err := s.Get(ctx, ticketID)
	if err != nil {
		return nil, false, err
	}
	return ticket, true, nil
}

// Activity returns the ticket's audit trail, newest first.
func (s *TicketService) Activity(ctx context.Context, ticketID string) ([]domain.ActivityEntry, error) {
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		return nil, err
	}
	return s.activity.ListByTicket(ctx, ticketID)
}

func (s *TicketService) invalidateListings(ctx context.Context) {
	if s.listCache != nil {
		s.listCache.Invalidate(ctx)
	}
}

func (s *TicketService) attachAssignee(ctx context.Context, ticket *domain.Ticket) error {
	if ticket.AssigneeID == nil {
		return nil
	}
	agent, err := s.agents.GetByID(ctx, *ticket.AssigneeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	ticket.Assignee = agent
	return nil
}

func (s *TicketService) attachAssignees(ctx context.Context, tickets []domain.Ticket) error {
	assigned := false
	for i := range tickets {
		if tickets[i].AssigneeID != nil {
			assigned = true
			break
		}
	}
	if !assigned {
		return nil
	}

	roster, err := s.agents.List(ctx)
	if err != nil {
		return err
	}
	byID := make(map[string]*domain.Agent, len(roster))
	for i := range roster {
		byID[roster[i].ID] = &roster[i]
	}
	for i := range tickets {
		if tickets[i].AssigneeID != nil {
			tickets[i].Assignee = byID[*tickets[i].AssigneeID]
		}
	}
	return nil
}

// normalizeFieldValue coerces and validates an attempted field value.
func normalizeFieldValue(field string, value any) (any, error) {
	switch field {
	case "subject":
		subject, ok := coerceValue(value).(string)
		subject = strings.TrimSpace(subject)
		if !ok || subject == "" {
			return nil, errorutil.NewValidationError("subject is required", nil)
		}
		if len(subject) > 200 {
			return nil, errorutil.NewValidationError("subject must be at most 200 characters", nil)
		}
		return subject, nil
	case "status":
		status, _ := coerceValue(value).(string)
		if !domain.ValidStatus(domain.TicketStatus(status)) {
			return nil, errorutil.NewValidationError("unknown status", map[string]any{"status": status})
		}
		return status, nil
	case "priority":
		priority, _ := coerceValue(value).(string)
		if !domain.ValidPriority(domain.TicketPriority(priority)) {
			return nil, errorutil.NewValidationError("unknown priority", map[string]any{"priority": priority})
		}
		return priority, nil
	case "assignee_id":
		if value == nil {
			return nil, nil
		}
		id, ok := coerceValue(value).(string)
		if !ok || id == "" {
			return nil, nil
		}
		return id, nil
	case "description":
		if value == nil {
			return nil, nil
		}
		description, _ := coerceValue(value).(string)
		// Clearing the field with an empty string stores NULL, so "" and
		// absent compare as the same value.
		if description == "" {
			return nil, nil
		}
		return description, nil
	case "tags":
		tags, ok := coerceValue(value).([]string)
		if !ok {
			return nil, errorutil.NewValidationError("tags must be a list of strings", nil)
		}
		return dedupTags(tags), nil
	default:
		return nil, errorutil.NewValidationError("field is not editable", map[string]any{"field": field})
	}
}

// coerceValue maps JSON-decoded values onto the comparison types.
func coerceValue(value any) any {
	switch v := value.(type) {
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
		return tags
	default:
		return value
	}
}

// dedupTags drops duplicate entries, case-sensitive, keeping first
// occurrence order.
func dedupTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}
