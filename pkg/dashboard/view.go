package dashboard

import (
	"fmt"
	"strings"
)

// Request is the full signature of one listing read. Responses are keyed by
// it: a stale in-flight response whose signature no longer matches the
// current view state must be discarded instead of rendered.
type Request struct {
	Filters    FilterState
	SortField  string
	Descending bool
	Page       int
	PageSize   int
}

// Signature renders a stable cache/dedup key for the request.
func (r Request) Signature() string {
	direction := "asc"
	if r.Descending {
		direction = "desc"
	}
	return strings.Join([]string{
		"q=" + r.Filters.Search,
		"status=" + r.Filters.Status,
		"priority=" + r.Filters.Priority,
		"channel=" + r.Filters.Channel,
		"assignee=" + r.Filters.Assignee,
		"sort=" + r.SortField + "." + direction,
		fmt.Sprintf("page=%d", r.Page),
		fmt.Sprintf("size=%d", r.PageSize),
	}, "|")
}

// ListView coordinates the filter state, sorter and pager of the listing
// screen, enforcing the cross-component contracts: any filter change and
// any page-size change reset to page 1, while page changes alone leave
// filters and page size untouched.
type ListView struct {
	Filters *Filters
	Sorter  Sorter
	Pager   *Pager
}

// NewListView builds a view with defaults: no filters, newest first, page 1.
func NewListView(pageSize int) *ListView {
	v := &ListView{
		Filters: NewFilters(),
		Sorter:  NewSorter(),
		Pager:   NewPager(pageSize),
	}
	v.Filters.Subscribe(func(FilterState) {
		v.Pager.Reset()
	})
	return v
}

// UpdateFilter replaces one filter field.
func (v *ListView) UpdateFilter(key FilterKey, value string) {
	v.Filters.Update(key, value)
}

// ClearFilters resets the filter state.
func (v *ListView) ClearFilters() {
	v.Filters.Clear()
}

// ToggleSort flips or switches the active sort column.
func (v *ListView) ToggleSort(field string) {
	v.Sorter.Toggle(field)
}

// Request snapshots the current state as a read signature.
func (v *ListView) Request() Request {
	return Request{
		Filters:    v.Filters.State(),
		SortField:  v.Sorter.Field,
		Descending: v.Sorter.Descending,
		Page:       v.Pager.Page(),
		PageSize:   v.Pager.PageSize(),
	}
}

// Accept reports whether a response with the given signature still matches
// the current view state and should be rendered.
func (v *ListView) Accept(signature string) bool {
	return signature == v.Request().Signature()
}
