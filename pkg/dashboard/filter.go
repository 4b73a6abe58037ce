// Package dashboard holds the view-state types behind the ticket listing
// and detail screens: filter state, sort toggling, pagination math and the
// single-field inline-edit controller. The types are plain state machines
// with no transport or storage concerns, shared by the HTTP layer and by
// clients embedding the dashboard behavior.
package dashboard

// FilterAll is the sentinel meaning a categorical filter applies no
// constraint.
const FilterAll = "all"

// AssigneeUnassigned is the only assignee filter value that constrains the
// query; it matches tickets with no assignee reference.
const AssigneeUnassigned = "unassigned"

// FilterKey names one field of the filter state.
type FilterKey string

const (
	FilterSearch   FilterKey = "search"
	FilterStatus   FilterKey = "status"
	FilterPriority FilterKey = "priority"
	FilterChannel  FilterKey = "channel"
	FilterAssignee FilterKey = "assignee"
)

// FilterState is the full filter predicate of the listing: a free-text
// search plus four categorical filters.
type FilterState struct {
	Search   string
	Status   string
	Priority string
	Channel  string
	Assignee string
}

// NewFilterState returns the cleared defaults.
func NewFilterState() FilterState {
	return FilterState{
		Status:   FilterAll,
		Priority: FilterAll,
		Channel:  FilterAll,
		Assignee: FilterAll,
	}
}

// With replaces one field and returns the full new state.
func (f FilterState) With(key FilterKey, value string) FilterState {
	switch key {
	case FilterSearch:
		f.Search = value
	case FilterStatus:
		f.Status = value
	case FilterPriority:
		f.Priority = value
	case FilterChannel:
		f.Channel = value
	case FilterAssignee:
		f.Assignee = value
	}
	return f
}

// HasActiveFilters is true iff the search is non-empty or any categorical
// field differs from "all".
func (f FilterState) HasActiveFilters() bool {
	return f.Search != "" ||
		f.Status != FilterAll ||
		f.Priority != FilterAll ||
		f.Channel != FilterAll ||
		f.Assignee != FilterAll
}

// FilterListener observes filter changes.
type FilterListener func(FilterState)

// Filters owns the current filter state and notifies listeners on every
// change with the full new state.
type Filters struct {
	state     FilterState
	listeners []FilterListener
}

// NewFilters starts from cleared defaults.
func NewFilters() *Filters {
	return &Filters{state: NewFilterState()}
}

// State returns the current filter state.
func (m *Filters) State() FilterState {
	return m.state
}

// Subscribe registers a change listener.
func (m *Filters) Subscribe(l FilterListener) {
	m.listeners = append(m.listeners, l)
}

// Update replaces one field and emits the new state.
func (m *Filters) Update(key FilterKey, value string) {
	m.state = m.state.With(key, value)
	m.emit()
}

// Clear resets all fields to their defaults and emits.
func (m *Filters) Clear() {
	m.state = NewFilterState()
	m.emit()
}

func (m *Filters) emit() {
	for _, l := range m.listeners {
		l(m.state)
	}
}
