package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-desk/internal/domain"
)

func TestAgentRepositoryListDerivesTicketCount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	rows := pgxmock.NewRows([]string{
		"id", "name", "email", "avatar_url", "active", "password_hash",
		"created_at", "updated_at", "ticket_count",
	}).
		AddRow("agent-1", "Lee Wong", "lee@example.com", (*string)(nil), true, "", now, now, int64(0)).
		AddRow("agent-2", "Sarah Kim", "sarah@example.com", (*string)(nil), false, "", now, now, int64(7))

	mock.ExpectQuery(`(?s)SELECT a\.id, .+ FROM assignees a.+ORDER BY a\.name ASC`).
		WillReturnRows(rows)

	repo := NewAgentRepository(mock)
	agents, err := repo.List(context.Background())
	require.NoError(t, err)

	require.Len(t, agents, 2)
	assert.Equal(t, int64(0), agents[0].TicketCount)
	assert.Equal(t, int64(7), agents[1].TicketCount)
	// Deactivated agents stay on the roster.
	assert.False(t, agents[1].Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgentRepositoryGetByEmailMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`(?s)SELECT .+ FROM assignees WHERE email=\$1`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	repo := NewAgentRepository(mock)
	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestAgentRepositoryUpdateMissingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`(?s)UPDATE assignees`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewAgentRepository(mock)
	err = repo.Update(context.Background(), &domain.Agent{ID: "missing"})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
