package query

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderWhere(t *testing.T, predicates []Predicate) (string, []interface{}) {
	t.Helper()
	sql, args, err := sq.Select("*").From("tickets").Where(And(predicates)).ToSql()
	require.NoError(t, err)
	return sql, args
}

func TestEqualsRendersParameterized(t *testing.T) {
	sql, args := renderWhere(t, []Predicate{Equals{Column: ColStatus, Value: "open"}})
	assert.Contains(t, sql, "status = ?")
	assert.Equal(t, []interface{}{"open"}, args)
}

func TestIsNullRendersIsNull(t *testing.T) {
	sql, args := renderWhere(t, []Predicate{IsNull{Column: ColAssigneeID}})
	assert.Contains(t, sql, "assignee_id IS NULL")
	assert.Empty(t, args)
}

func TestContainsWrapsAndEscapesTerm(t *testing.T) {
	sql, args := renderWhere(t, []Predicate{Contains{Column: ColSubject, Term: "50%_off\\deal"}})
	assert.Contains(t, sql, "subject ILIKE ?")
	assert.Equal(t, []interface{}{`%50\%\_off\\deal%`}, args)
}

func TestOrGroupAndsWithSiblings(t *testing.T) {
	sql, args := renderWhere(t, []Predicate{
		OrGroup{Predicates: []Predicate{
			Contains{Column: ColSubject, Term: "refund"},
			Contains{Column: ColCustomerName, Term: "refund"},
		}},
		Equals{Column: ColPriority, Value: "high"},
	})
	assert.Contains(t, sql, "subject ILIKE ? OR customer_name ILIKE ?")
	assert.Contains(t, sql, "AND priority = ?")
	assert.Equal(t, []interface{}{"%refund%", "%refund%", "high"}, args)
}
