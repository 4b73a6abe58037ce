package repository

import (
	"context"

	"github.com/spec-kit/support-desk/internal/domain"
)

// ActivityRepository stores the append-only audit trail.
type ActivityRepository interface {
	Create(ctx context.Context, entry *domain.ActivityEntry) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.ActivityEntry, error)
}

type activityRepository struct {
	db DB
}

// NewActivityRepository builds repository.
func NewActivityRepository(db DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, entry *domain.ActivityEntry) error {
	const q = `
        INSERT INTO activity_log (ticket_id, user_name, action, field_name, old_value, new_value)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, q,
		entry.TicketID,
		entry.UserName,
		entry.Action,
		entry.FieldName,
		entry.OldValue,
		entry.NewValue,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *activityRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.ActivityEntry, error) {
	const q = `
        SELECT id, ticket_id, user_name, action, field_name, old_value, new_value, created_at
        FROM activity_log WHERE ticket_id=$1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, q, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ActivityEntry
	for rows.Next() {
		var entry domain.ActivityEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.UserName,
			&entry.Action,
			&entry.FieldName,
			&entry.OldValue,
			&entry.NewValue,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
