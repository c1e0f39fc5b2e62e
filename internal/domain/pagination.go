package domain

import "math"

// DefaultPageSize is the page size used when a caller does not specify one.
const DefaultPageSize = 25

// SortDirection orders listing results by name.
type SortDirection string

const (
	SortAscending  SortDirection = "ascending"
	SortDescending SortDirection = "descending"
)

// ParseSortDirection maps a request token to a SortDirection.
// Only "descending" selects descending order; every other token, including
// the empty string, yields ascending.
func ParseSortDirection(s string) SortDirection {
	if SortDirection(s) == SortDescending {
		return SortDescending
	}
	return SortAscending
}

// PageRequest holds pagination and sort parameters for list operations.
type PageRequest struct {
	Number    int // zero-based page index
	Size      int
	Direction SortDirection
}

// Validate checks that the page coordinates are in domain.
func (p PageRequest) Validate() error {
	if p.Number < 0 {
		return ErrValidation("page number must not be negative")
	}
	if p.Size <= 0 {
		return ErrValidation("page size must be positive")
	}
	if p.Number > math.MaxInt/p.Size {
		return ErrValidation("page number %d is too large for page size %d", p.Number, p.Size)
	}
	return nil
}

// Offset returns the index of the first element on the requested page. It
// saturates at math.MaxInt instead of wrapping.
func (p PageRequest) Offset() int {
	if p.Number <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Number > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Number * p.Size
}

// Descending reports whether results are sorted in descending name order.
func (p PageRequest) Descending() bool {
	return p.Direction == SortDescending
}

// PageInfo describes where a page sits in the full result set.
type PageInfo struct {
	Size          int
	Number        int
	TotalElements int64
	TotalPages    int
	IsFirst       bool
	IsLast        bool
}

// Page is one slice of an ordered result set plus its metadata.
type Page[T any] struct {
	Content []T
	Info    PageInfo
}

// NewPage assembles a Page from the content fetched for req and the total
// number of matching elements.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if req.Size > 0 && total > 0 {
		size := int64(req.Size)
		pages := total / size
		if total%size != 0 {
			pages++
		}
		totalPages = int(pages)
	}
	return Page[T]{
		Content: content,
		Info: PageInfo{
			Size:          req.Size,
			Number:        req.Number,
			TotalElements: total,
			TotalPages:    totalPages,
			IsFirst:       req.Number == 0,
			IsLast:        req.Number >= totalPages-1,
		},
	}
}

// MapPage converts every element of p with fn, keeping the metadata.
func MapPage[A, B any](p Page[A], fn func(A) B) Page[B] {
	out := make([]B, len(p.Content))
	for i, v := range p.Content {
		out[i] = fn(v)
	}
	return Page[B]{Content: out, Info: p.Info}
}
