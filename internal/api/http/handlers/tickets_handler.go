package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/service"
	"github.com/spec-kit/support-desk/pkg/dashboard"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// TicketsHandler manages the ticket listing, detail and inline-edit endpoints.
type TicketsHandler struct {
	service         *service.TicketService
	defaultPageSize int
	maxPageSize     int
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService, defaultPageSize, maxPageSize int) *TicketsHandler {
	return &TicketsHandler{service: ticketService, defaultPageSize: defaultPageSize, maxPageSize: maxPageSize}
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	req := h.parseListQuery(c)
	page, err := h.service.List(c.UserContext(), req)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(page.Tickets))
	for i := range page.Tickets {
		items = append(items, ticketResponse(&page.Tickets[i]))
	}
	return c.JSON(fiber.Map{"data": dto.TicketPageResponse{
		Tickets:    items,
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
		Page:       page.Page,
		PageSize:   page.PageSize,
	}})
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.TicketCreateInput{
		Subject:       req.Subject,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Channel:       req.Channel,
		Priority:      req.Priority,
		Description:   req.Description,
		Tags:          req.Tags,
		AssigneeID:    req.AssigneeID,
		OrderNumber:   req.OrderNumber,
	}
	ticket, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// UpdateTicketField PATCH /tickets/:id.
func (h *TicketsHandler) UpdateTicketField(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Agent == nil {
		return apperrors.NewUnauthorized("agent required")
	}
	var req dto.UpdateTicketFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Field) == "" {
		return apperrors.NewValidationError("field required", nil)
	}

	ticket, changed, err := h.service.UpdateField(c.UserContext(), principal.Agent.Name, c.Params("id"), req.Field, req.OldValue, req.Value)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UpdateTicketFieldResponse{
		Ticket:  ticketResponse(ticket),
		Changed: changed,
	}})
}

// ListActivity GET /tickets/:id/activity.
func (h *TicketsHandler) ListActivity(c *fiber.Ctx) error {
	entries, err := h.service.Activity(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.ActivityEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.ActivityEntryResponse{
			ID:        entry.ID,
			TicketID:  entry.TicketID,
			UserName:  entry.UserName,
			Action:    entry.Action,
			FieldName: entry.FieldName,
			OldValue:  entry.OldValue,
			NewValue:  entry.NewValue,
			CreatedAt: entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func (h *TicketsHandler) parseListQuery(c *fiber.Ctx) dashboard.Request {
	filters := dashboard.NewFilterState()
	if search := c.Query("search"); search != "" {
		filters = filters.With(dashboard.FilterSearch, search)
	}
	if status := c.Query("status"); status != "" {
		filters = filters.With(dashboard.FilterStatus, status)
	}
	if priority := c.Query("priority"); priority != "" {
		filters = filters.With(dashboard.FilterPriority, priority)
	}
	if channel := c.Query("channel"); channel != "" {
		filters = filters.With(dashboard.FilterChannel, channel)
	}
	if assignee := c.Query("assignee"); assignee != "" {
		filters = filters.With(dashboard.FilterAssignee, assignee)
	}

	sortField := c.Query("sort", "created_at")
	descending := !strings.EqualFold(c.Query("sort_dir", "desc"), "asc")

	pageSize := parseInt(c.Query("page_size"), h.defaultPageSize)
	if pageSize > h.maxPageSize {
		pageSize = h.maxPageSize
	}

	return dashboard.Request{
		Filters:    filters,
		SortField:  sortField,
		Descending: descending,
		Page:       parseInt(c.Query("page"), 1),
		PageSize:   pageSize,
	}
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	resp := dto.TicketResponse{
		ID:            ticket.ID,
		TicketNumber:  ticket.TicketNumber,
		Subject:       ticket.Subject,
		CustomerName:  ticket.CustomerName,
		CustomerEmail: ticket.CustomerEmail,
		Channel:       ticket.Channel,
		Priority:      ticket.Priority,
		Status:        ticket.Status,
		Description:   ticket.Description,
		Tags:          ticket.Tags,
		AssigneeID:    ticket.AssigneeID,
		OrderNumber:   ticket.OrderNumber,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
	}
	if ticket.Assignee != nil {
		assignee := agentResponse(ticket.Assignee)
		resp.Assignee = &assignee
	}
	return resp
}
