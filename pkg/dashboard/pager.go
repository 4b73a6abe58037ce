package dashboard

// TotalPages derives the page count from a total row count and page size.
// A zero total means zero pages, not one empty page.
func TotalPages(totalCount, pageSize int) int {
	if totalCount <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}

// Pager tracks the pagination window of the listing.
type Pager struct {
	page       int
	pageSize   int
	totalCount int
}

// NewPager starts on page 1 with the given page size.
func NewPager(pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Pager{page: 1, pageSize: pageSize}
}

// Page returns the current page, 1-based.
func (p *Pager) Page() int { return p.page }

// PageSize returns the window size.
func (p *Pager) PageSize() int { return p.pageSize }

// TotalCount returns the last known total row count.
func (p *Pager) TotalCount() int { return p.totalCount }

// TotalPages returns the page count for the last known total.
func (p *Pager) TotalPages() int { return TotalPages(p.totalCount, p.pageSize) }

// SetTotal records the exact total row count reported by the store and
// clamps the current page into range.
func (p *Pager) SetTotal(totalCount int) {
	if totalCount < 0 {
		totalCount = 0
	}
	p.totalCount = totalCount
	p.clamp()
}

// SetPage moves within the known page range; out-of-range requests clamp
// rather than fail.
func (p *Pager) SetPage(page int) {
	p.page = page
	p.clamp()
}

// SetPageSize changes the window size and resets to page 1.
func (p *Pager) SetPageSize(pageSize int) {
	if pageSize <= 0 {
		return
	}
	p.pageSize = pageSize
	p.page = 1
}

// Reset returns to page 1. Invoked on every filter change.
func (p *Pager) Reset() {
	p.page = 1
}

func (p *Pager) clamp() {
	if p.page < 1 {
		p.page = 1
	}
	if last := p.TotalPages(); last > 0 && p.page > last {
		p.page = last
	}
}
