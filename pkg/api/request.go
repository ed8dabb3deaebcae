package api

// SearchDatasets carries the query parameters of GET /api/datasets.
// Page and Limit are pointers so that an explicit out-of-range zero is
// rejected instead of being mistaken for "not provided".
type SearchDatasets struct {
	Page         *int   `query:"page"         validate:"omitempty,min=1"`
	Limit        *int   `query:"limit"        validate:"omitempty,min=1,max=100"`
	Search       string `query:"search"`
	BusinessLine string `query:"businessLine"`
	DataDomain   string `query:"dataDomain"`
}

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// PageOrDefault returns the requested page, or DefaultPage when absent.
func (s SearchDatasets) PageOrDefault() int {
	if s.Page == nil {
		return DefaultPage
	}
	return *s.Page
}

// LimitOrDefault returns the requested page size, or DefaultLimit when absent.
func (s SearchDatasets) LimitOrDefault() int {
	if s.Limit == nil {
		return DefaultLimit
	}
	return *s.Limit
}
