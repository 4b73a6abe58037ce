package query

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// SortField enumerates the columns a ticket listing may be ordered by.
type SortField string

const (
	SortTicketNumber SortField = "ticket_number"
	SortSubject      SortField = "subject"
	SortStatus       SortField = "status"
	SortPriority     SortField = "priority"
	SortCreatedAt    SortField = "created_at"
)

// ValidSortField reports whether f is in the sortable allowlist.
func ValidSortField(f SortField) bool {
	switch f {
	case SortTicketNumber, SortSubject, SortStatus, SortPriority, SortCreatedAt:
		return true
	}
	return false
}

// Sort holds the single-field ordering for a listing. Ties are left to the
// store's natural row order; ticket_number is effectively unique per row so
// no secondary key is applied.
type Sort struct {
	Field      SortField
	Descending bool
}

// Spec describes one ticket listing read: filter predicates, ordering and
// an offset/limit pagination window. Executed as a single request that also
// yields the exact total row count ignoring the window.
type Spec struct {
	Predicates []Predicate
	Sort       Sort
	Page       int
	PageSize   int
}

// Validate checks the pagination window and sort field.
func (s Spec) Validate() error {
	if s.Page < 1 {
		return fmt.Errorf("page must be >= 1, got %d", s.Page)
	}
	if s.PageSize < 1 {
		return fmt.Errorf("page_size must be > 0, got %d", s.PageSize)
	}
	if !ValidSortField(s.Sort.Field) {
		return fmt.Errorf("unsupported sort field %q", s.Sort.Field)
	}
	return nil
}

// Offset is the zero-based row offset of the window.
func (s Spec) Offset() uint64 {
	return uint64(s.Page-1) * uint64(s.PageSize)
}

// Apply attaches the spec's WHERE, ORDER BY, LIMIT and OFFSET clauses to a
// select builder.
func (s Spec) Apply(builder sq.SelectBuilder) (sq.SelectBuilder, error) {
	if err := s.Validate(); err != nil {
		return builder, err
	}
	if len(s.Predicates) > 0 {
		builder = builder.Where(And(s.Predicates))
	}
	direction := "ASC"
	if s.Sort.Descending {
		direction = "DESC"
	}
	return builder.
		OrderBy(string(s.Sort.Field) + " " + direction).
		Limit(uint64(s.PageSize)).
		Offset(s.Offset()), nil
}
