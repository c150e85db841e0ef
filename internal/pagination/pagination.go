// Package pagination holds the page/size arithmetic shared by every list endpoint.
// Callers pass 1-based pages; the response reports a 0-based page number.
package pagination

import (
	"math"

	apperrors "github.com/ikkim/camping-backend/internal/errors"
)

// MaxSize upper bound for a single page
const MaxSize = 100

// Request validated page request
type Request struct {
	Page int
	Size int
}

// New validates page and size. Both must be >= 1, size at most MaxSize,
// and the offset must fit in an int.
func New(page, size int) (Request, error) {
	if page < 1 {
		return Request{}, apperrors.InvalidArgument("page must be >= 1 (got %d)", page)
	}
	if size < 1 {
		return Request{}, apperrors.InvalidArgument("size must be >= 1 (got %d)", size)
	}
	if size > MaxSize {
		return Request{}, apperrors.InvalidArgument("size must be <= %d (got %d)", MaxSize, size)
	}
	if page-1 > math.MaxInt/size {
		return Request{}, apperrors.InvalidArgument("page %d is too large for size %d", page, size)
	}
	return Request{Page: page, Size: size}, nil
}

func (r Request) Offset() int {
	return (r.Page - 1) * r.Size
}

func (r Request) Limit() int {
	return r.Size
}

// TotalPages ceil(total/size); 0 when there are no rows
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// Page list response wrapper
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	IsFirst       bool  `json:"isFirst"`
	IsLast        bool  `json:"isLast"`
}

// NewPage builds the wrapper. A page past the end is not an error; it has empty content.
func NewPage[T any](content []T, total int64, req Request) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := TotalPages(total, req.Size)
	return Page[T]{
		Content:       content,
		TotalPages:    totalPages,
		TotalElements: total,
		PageNumber:    req.Page - 1,
		PageSize:      req.Size,
		IsFirst:       req.Page == 1,
		IsLast:        req.Page >= totalPages,
	}
}

// Map converts page content while keeping the paging metadata
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Content))
	for _, item := range p.Content {
		out = append(out, fn(item))
	}
	return Page[U]{
		Content:       out,
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
		PageNumber:    p.PageNumber,
		PageSize:      p.PageSize,
		IsFirst:       p.IsFirst,
		IsLast:        p.IsLast,
	}
}
