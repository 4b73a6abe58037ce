package repository

import (
	"context"

	"github.com/spec-kit/support-desk/internal/domain"
)

// ConversationRepository manages ticket thread messages.
type ConversationRepository interface {
	Create(ctx context.Context, msg *domain.ConversationMessage) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.ConversationMessage, error)
}

type conversationRepository struct {
	db DB
}

// NewConversationRepository builds repository.
func NewConversationRepository(db DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(ctx context.Context, msg *domain.ConversationMessage) error {
	const q = `
        INSERT INTO conversations (ticket_id, sender_type, sender_name, sender_email, message, is_internal_note)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, q,
		msg.TicketID,
		msg.SenderType,
		msg.SenderName,
		msg.SenderEmail,
		msg.Message,
		msg.IsInternalNote,
	).Scan(&msg.ID, &msg.CreatedAt)
}

func (r *conversationRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.ConversationMessage, error) {
	const q = `
        SELECT id, ticket_id, sender_type, sender_name, sender_email, message, is_internal_note, created_at
        FROM conversations WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, q, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ConversationMessage
	for rows.Next() {
		var msg domain.ConversationMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.TicketID,
			&msg.SenderType,
			&msg.SenderName,
			&msg.SenderEmail,
			&msg.Message,
			&msg.IsInternalNote,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
