package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListViewFilterChangeResetsPage(t *testing.T) {
	v := NewListView(10)
	v.Pager.SetTotal(100)
	v.Pager.SetPage(5)

	v.UpdateFilter(FilterStatus, "open")
	assert.Equal(t, 1, v.Pager.Page())

	v.Pager.SetPage(3)
	v.ClearFilters()
	assert.Equal(t, 1, v.Pager.Page())
}

func TestListViewPageChangeLeavesFiltersAlone(t *testing.T) {
	v := NewListView(10)
	v.UpdateFilter(FilterPriority, "urgent")
	v.Pager.SetTotal(100)

	v.Pager.SetPage(4)
	assert.Equal(t, "urgent", v.Filters.State().Priority)
	assert.Equal(t, 4, v.Pager.Page())
}

func TestRequestSignatureIsStable(t *testing.T) {
	v := NewListView(10)
	v.UpdateFilter(FilterSearch, "refund")
	v.UpdateFilter(FilterStatus, "open")

	req := v.Request()
	assert.Equal(t,
		"q=refund|status=open|priority=all|channel=all|assignee=all|sort=created_at.desc|page=1|size=10",
		req.Signature())
}

func TestAcceptRejectsStaleResponses(t *testing.T) {
	v := NewListView(10)
	stale := v.Request().Signature()

	v.UpdateFilter(FilterSearch, "refund")
	assert.False(t, v.Accept(stale))
	assert.True(t, v.Accept(v.Request().Signature()))
}
