package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/query"
)

const ticketColumns = `id, ticket_number, subject, customer_name, customer_email,
               channel, priority, status, description, tags, assignee_id, order_number,
               created_at, updated_at`

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	List(ctx context.Context, spec query.Spec) ([]domain.Ticket, int, error)
}

type ticketRepository struct {
	db DB
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(db DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const q = `
        INSERT INTO tickets (subject, customer_name, customer_email, channel, priority, status, description, tags, assignee_id, order_number)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, ticket_number, created_at, updated_at`
	return r.db.QueryRow(ctx, q,
		ticket.Subject,
		ticket.CustomerName,
		ticket.CustomerEmail,
		ticket.Channel,
		ticket.Priority,
		ticket.Status,
		ticket.Description,
		ticket.Tags,
		ticket.AssigneeID,
		ticket.OrderNumber,
	).Scan(&ticket.ID, &ticket.TicketNumber, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const q = `
        SELECT ` + ticketColumns + `
        FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := scanTicket(r.db.QueryRow(ctx, q, id), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// UpdateFields applies a partial update and refreshes updated_at. The last
// writer wins; no concurrency token is checked.
func (r *ticketRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	builder := query.Builder().
		Update("tickets").
		SetMap(fields).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id})

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// List executes a composed listing spec as a single request. The exact
// total row count ignoring the pagination window rides along on every row
// via a window aggregate.
func (r *ticketRepository) List(ctx context.Context, spec query.Spec) ([]domain.Ticket, int, error) {
	builder := query.Builder().
		Select(ticketColumns + `, COUNT(*) OVER() AS total_count`).
		From("tickets")

	builder, err := spec.Apply(builder)
	if err != nil {
		return nil, 0, err
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Ticket
	totalCount := 0
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.TicketNumber,
			&ticket.Subject,
			&ticket.CustomerName,
			&ticket.CustomerEmail,
			&ticket.Channel,
			&ticket.Priority,
			&ticket.Status,
			&ticket.Description,
			&ticket.Tags,
			&ticket.AssigneeID,
			&ticket.OrderNumber,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// An out-of-range window returns zero rows with no window aggregate, so
	// the count falls back to a separate read only in that case.
	if len(result) == 0 {
		totalCount, err = r.count(ctx, spec)
		if err != nil {
			return nil, 0, err
		}
	}
	return result, totalCount, nil
}

func (r *ticketRepository) count(ctx context.Context, spec query.Spec) (int, error) {
	builder := query.Builder().Select("COUNT(*)").From("tickets")
	if len(spec.Predicates) > 0 {
		builder = builder.Where(query.And(spec.Predicates))
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanTicket(row pgx.Row, ticket *domain.Ticket) error {
	return row.Scan(
		&ticket.ID,
		&ticket.TicketNumber,
		&ticket.Subject,
		&ticket.CustomerName,
		&ticket.CustomerEmail,
		&ticket.Channel,
		&ticket.Priority,
		&ticket.Status,
		&ticket.Description,
		&ticket.Tags,
		&ticket.AssigneeID,
		&ticket.OrderNumber,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
}
