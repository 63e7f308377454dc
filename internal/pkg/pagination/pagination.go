package pagination

import (
	"math"
	"strconv"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params are the page/limit values resolved from a list request.
type Params struct {
	Page  int
	Limit int
}

// FromRequest parses page/limit query values, clamping them to sane bounds.
func FromRequest(pageStr, limitStr string) Params {
	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

// Offset returns the number of documents to skip.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pages returns the total page count for the given result size.
func (p Params) Pages(total int64) int {
	pages := int(math.Ceil(float64(total) / float64(p.Limit)))
	if pages < 1 {
		pages = 1
	}
	return pages
}
