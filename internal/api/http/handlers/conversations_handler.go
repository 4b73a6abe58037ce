package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/service"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// ConversationsHandler manages ticket thread endpoints.
type ConversationsHandler struct {
	service *service.ConversationService
}

// NewConversationsHandler constructs handler.
func NewConversationsHandler(conversationService *service.ConversationService) *ConversationsHandler {
	return &ConversationsHandler{service: conversationService}
}

// ListMessages GET /tickets/:id/conversations.
func (h *ConversationsHandler) ListMessages(c *fiber.Ctx) error {
	messages, err := h.service.ListByTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, messageResponse(&messages[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddMessage POST /tickets/:id/conversations.
func (h *ConversationsHandler) AddMessage(c *fiber.Ctx) error {
	var req dto.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	msg, err := h.service.AddMessage(c.UserContext(), c.Params("id"), service.MessageInput{
		SenderType:     req.SenderType,
		SenderName:     req.SenderName,
		SenderEmail:    req.SenderEmail,
		Message:        req.Message,
		IsInternalNote: req.IsInternalNote,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": messageResponse(msg)})
}

func messageResponse(msg *domain.ConversationMessage) dto.MessageResponse {
	return dto.MessageResponse{
		ID:             msg.ID,
		TicketID:       msg.TicketID,
		SenderType:     msg.SenderType,
		SenderName:     msg.SenderName,
		SenderEmail:    msg.SenderEmail,
		Message:        msg.Message,
		IsInternalNote: msg.IsInternalNote,
		CreatedAt:      msg.CreatedAt,
	}
}
