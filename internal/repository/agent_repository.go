package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-desk/internal/domain"
)

// AgentRepository handles persistence for the agent roster.
type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) error
	Update(ctx context.Context, agent *domain.Agent) error
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
	GetByEmail(ctx context.Context, email string) (*domain.Agent, error)
	List(ctx context.Context) ([]domain.Agent, error)
}

type agentRepository struct {
	db DB
}

// NewAgentRepository instantiates the repository.
func NewAgentRepository(db DB) AgentRepository {
	return &agentRepository{db: db}
}

func (r *agentRepository) Create(ctx context.Context, agent *domain.Agent) error {
	const q = `
        INSERT INTO assignees (name, email, avatar_url, active, password_hash)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, q,
		agent.Name,
		agent.Email,
		agent.AvatarURL,
		agent.Active,
		agent.PasswordHash,
	).Scan(&agent.ID, &agent.CreatedAt, &agent.UpdatedAt)
}

func (r *agentRepository) Update(ctx context.Context, agent *domain.Agent) error {
	const q = `
        UPDATE assignees
        SET name=$1, email=$2, avatar_url=$3, active=$4, password_hash=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.db.Exec(ctx, q,
		agent.Name,
		agent.Email,
		agent.AvatarURL,
		agent.Active,
		agent.PasswordHash,
		agent.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *agentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	const q = `
        SELECT id, name, email, avatar_url, active, password_hash, created_at, updated_at
        FROM assignees WHERE id=$1`
	return r.fetchSingle(ctx, q, id)
}

func (r *agentRepository) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	const q = `
        SELECT id, name, email, avatar_url, active, password_hash, created_at, updated_at
        FROM assignees WHERE email=$1`
	return r.fetchSingle(ctx, q, email)
}

func (r *agentRepository) fetchSingle(ctx context.Context, q string, arg any) (*domain.Agent, error) {
	var agent domain.Agent
	if err := r.db.QueryRow(ctx, q, arg).Scan(
		&agent.ID,
		&agent.Name,
		&agent.Email,
		&agent.AvatarURL,
		&agent.Active,
		&agent.PasswordHash,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &agent, nil
}

// List returns the roster ordered by name. The per-agent ticket count is
// recomputed on every read, never stored.
func (r *agentRepository) List(ctx context.Context) ([]domain.Agent, error) {
	const q = `
        SELECT a.id, a.name, a.email, a.avatar_url, a.active, a.password_hash, a.created_at, a.updated_at,
               (SELECT COUNT(*) FROM tickets t WHERE t.assignee_id = a.id) AS ticket_count
        FROM assignees a
        ORDER BY a.name ASC`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Agent
	for rows.Next() {
		var agent domain.Agent
		if err := rows.Scan(
			&agent.ID,
			&agent.Name,
			&agent.Email,
			&agent.AvatarURL,
			&agent.Active,
			&agent.PasswordHash,
			&agent.CreatedAt,
			&agent.UpdatedAt,
			&agent.TicketCount,
		); err != nil {
			return nil, err
		}
		result = append(result, agent)
	}
	return result, rows.Err()
}
