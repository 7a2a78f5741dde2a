package request

// PaginatedRequest is decoded from ?page=&per_page=. A zero Page means the
// caller did not ask for paging.
type PaginatedRequest struct {
	Page    int `schema:"page" validate:"gte=0"`
	PerPage int `schema:"per_page" validate:"gte=0,max=100"`
}

func (p PaginatedRequest) Enabled() bool {
	return p.Page > 0
}

func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return 10
	}
	if p.PerPage > 100 {
		return 100
	}
	return p.PerPage
}
