package service

// PageRequest selects one page of a listing.
type PageRequest struct {
	Page int // zero-based
	Size int
}

// maxPageSize caps how many items a single page may request.
const maxPageSize = 100

// Normalize clamps the request to sane bounds, using defaultSize when
// no size was given.
func (p PageRequest) Normalize(defaultSize int) PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = defaultSize
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	return p
}

func (p PageRequest) limit() int {
	return p.Size
}

func (p PageRequest) offset() int {
	return p.Page * p.Size
}

// Page is one page of results plus the totals needed by clients to
// render pagination controls.
type Page[T any] struct {
	Items         []T
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

func newPage[T any](items []T, req PageRequest, total int64) Page[T] {
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Items:         items,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
