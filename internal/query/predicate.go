package query

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Predicate is a structured filter clause. Predicates are translated to SQL
// only at the store boundary, so no user input is ever interpolated into
// query text.
type Predicate interface {
	sqlizer() sq.Sqlizer
}

// Equals constrains a column to one value.
type Equals struct {
	Column string
	Value  any
}

func (p Equals) sqlizer() sq.Sqlizer {
	return sq.Eq{p.Column: p.Value}
}

// IsNull constrains a column to be absent.
type IsNull struct {
	Column string
}

func (p IsNull) sqlizer() sq.Sqlizer {
	return sq.Eq{p.Column: nil}
}

// Contains is a case-insensitive substring match.
type Contains struct {
	Column string
	Term   string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (p Contains) sqlizer() sq.Sqlizer {
	return sq.ILike{p.Column: "%" + likeEscaper.Replace(p.Term) + "%"}
}

// OrGroup combines predicates with OR. Groups nested inside the top-level
// predicate list still AND with their siblings.
type OrGroup struct {
	Predicates []Predicate
}

func (p OrGroup) sqlizer() sq.Sqlizer {
	or := make(sq.Or, 0, len(p.Predicates))
	for _, inner := range p.Predicates {
		or = append(or, inner.sqlizer())
	}
	return or
}

// And renders predicates as a single AND-combined sqlizer.
func And(predicates []Predicate) sq.Sqlizer {
	and := make(sq.And, 0, len(predicates))
	for _, p := range predicates {
		and = append(and, p.sqlizer())
	}
	return and
}
