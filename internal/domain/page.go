package domain

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// PageParams selects one page of the trip catalog.
// Page is 1-indexed.
type PageParams struct {
	Page  int
	Limit int
}

// NewPageParams builds PageParams from optional query values.
// Missing or non-positive values fall back to page 1 and a limit of 20;
// limits above 100 are clamped.
func NewPageParams(page, limit *int) PageParams {
	p := PageParams{Page: 1, Limit: defaultPageLimit}
	if page != nil && *page > 0 {
		p.Page = *page
	}
	if limit != nil && *limit > 0 {
		p.Limit = min(*limit, maxPageLimit)
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
