package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(23, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 0, TotalPages(-5, 10))
	assert.Equal(t, 0, TotalPages(10, 0))
}

func TestPagerDefaults(t *testing.T) {
	p := NewPager(10)
	assert.Equal(t, 1, p.Page())
	assert.Equal(t, 10, p.PageSize())
	assert.Equal(t, 0, p.TotalPages())
}

func TestPagerWindow(t *testing.T) {
	p := NewPager(10)
	p.SetTotal(23)

	assert.Equal(t, 3, p.TotalPages())

	p.SetPage(3)
	assert.Equal(t, 3, p.Page())

	// Out-of-range requests clamp instead of failing.
	p.SetPage(7)
	assert.Equal(t, 3, p.Page())
	p.SetPage(0)
	assert.Equal(t, 1, p.Page())
}

func TestPagerShrinkingTotalClampsPage(t *testing.T) {
	p := NewPager(10)
	p.SetTotal(50)
	p.SetPage(5)

	p.SetTotal(23)
	assert.Equal(t, 3, p.Page())
}

func TestPagerSetPageSizeResetsToFirstPage(t *testing.T) {
	p := NewPager(10)
	p.SetTotal(100)
	p.SetPage(4)

	p.SetPageSize(25)
	assert.Equal(t, 1, p.Page())
	assert.Equal(t, 25, p.PageSize())
	assert.Equal(t, 4, p.TotalPages())
}

func TestPagerZeroPageSizeIgnored(t *testing.T) {
	p := NewPager(0)
	assert.Equal(t, 10, p.PageSize())

	p.SetPageSize(-1)
	assert.Equal(t, 10, p.PageSize())
}
