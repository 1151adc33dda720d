package ports

// Pagination bounds shared by every list operation.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ClampPage normalizes a page/page-size pair: page is at least 1, page
// size falls back to the default when missing or non-positive and is
// capped at the maximum.
func ClampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Normalize clamps the pagination fields into their valid ranges.
func (p *WalletListParams) Normalize() {
	p.Page, p.PageSize = ClampPage(p.Page, p.PageSize)
}

// Normalize clamps the pagination fields into their valid ranges.
func (p *TransactionListParams) Normalize() {
	p.Page, p.PageSize = ClampPage(p.Page, p.PageSize)
}
