package dashboard

// Sorter tracks the active sort column and direction of the listing.
type Sorter struct {
	Field      string
	Descending bool
}

// NewSorter returns the default ordering: newest tickets first.
func NewSorter() Sorter {
	return Sorter{Field: "created_at", Descending: true}
}

// Toggle re-invoked on the active field flips direction; invoked on a
// different field it switches the active field and resets to descending.
func (s *Sorter) Toggle(field string) {
	if s.Field == field {
		s.Descending = !s.Descending
		return
	}
	s.Field = field
	s.Descending = true
}
