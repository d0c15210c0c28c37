package request

import "greenmart/pkg/utils"

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	// MaxPage keeps (page-1)*per_page far from integer overflow.
	MaxPage = 1_000_000
)

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1,max=1000000"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Limit())
}

func (p PaginatedRequest) Limit() int {
	return utils.ClampPerPage(p.PerPage, DefaultPerPage)
}
