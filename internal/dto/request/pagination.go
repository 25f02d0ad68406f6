package request

import (
	"net/url"

	"chakai-booking/pkg/utils"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// PaginatedRequest is a 1-based page window. Out-of-range values are
// clamped rather than rejected so list links never 400.
type PaginatedRequest struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// PageFromQuery reads ?page= and ?per_page=.
func PageFromQuery(query url.Values) PaginatedRequest {
	return PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), DefaultPerPage),
	}
}

func (p PaginatedRequest) CurrentPage() int {
	return max(p.Page, 1)
}

func (p PaginatedRequest) Limit() int {
	switch {
	case p.PerPage < 1:
		return DefaultPerPage
	case p.PerPage > MaxPerPage:
		return MaxPerPage
	default:
		return p.PerPage
	}
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.CurrentPage(), p.Limit())
}
