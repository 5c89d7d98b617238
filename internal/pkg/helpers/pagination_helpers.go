package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/alumnihub/internal/app/models/dto"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is a 1-based window over an in-memory listing.
// The zero value means "no paging": callers return everything.
type Page struct {
	Number int
	Size   int
}

// PageFromQuery reads ?page= and ?size=. A request naming neither is unpaged.
func PageFromQuery(c *gin.Context) Page {
	rawPage, hasPage := c.GetQuery("page")
	rawSize, hasSize := c.GetQuery("size")
	if !hasPage && !hasSize {
		return Page{}
	}

	p := Page{Number: 1, Size: DefaultPageSize}
	if n, err := strconv.Atoi(rawPage); err == nil && n > 0 {
		p.Number = n
	}
	if n, err := strconv.Atoi(rawSize); err == nil && n > 0 && n <= MaxPageSize {
		p.Size = n
	}
	return p
}

// Paged reports whether p selects a window
func (p Page) Paged() bool {
	return p.Size > 0
}

// Bounds returns the half-open slice range of p within total items,
// clamped so that a page past the end is empty.
func (p Page) Bounds(total int) (start, end int) {
	p = p.normalized()
	start = min((p.Number-1)*p.Size, total)
	end = min(start+p.Size, total)
	return start, end
}

// Info describes p for the response envelope. An empty listing has one empty page.
func (p Page) Info(total int) dto.PaginationInfo {
	p = p.normalized()
	pages := max((total+p.Size-1)/p.Size, 1)
	return dto.PaginationInfo{
		CurrentPage: min(p.Number, pages),
		TotalPages:  pages,
		PageSize:    p.Size,
		TotalItems:  int64(total),
	}
}

func (p Page) normalized() Page {
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Number < 1 {
		p.Number = 1
	}
	return p
}
