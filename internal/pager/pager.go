// Package pager splits a command list into fixed size pages and tracks the
// highlighted row.
package pager

// Direction of a page turn or highlight move.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Paginator tracks the current page (1-based) and the highlighted row
// within it (0-based). An empty list has zero pages and keeps the page at 1.
type Paginator struct {
	Page        int
	Highlighted int
	capacity    int
}

// New returns a paginator showing capacity rows per page.
func New(capacity int) *Paginator {
	p := &Paginator{Page: 1}
	p.SetCapacity(capacity)
	return p
}

// Capacity is the number of rows per page.
func (p *Paginator) Capacity() int {
	return p.capacity
}

// SetCapacity changes the page size, for example after a terminal resize.
// Values below one are treated as one.
func (p *Paginator) SetCapacity(capacity int) {
	p.capacity = max(capacity, 1)
}

// Reset goes back to the first row of the first page.
func (p *Paginator) Reset() {
	p.Page = 1
	p.Highlighted = 0
}

// TotalPages is ceil(len(list) / capacity); zero for an empty list.
func (p *Paginator) TotalPages(list []string) int {
	return (len(list) + p.capacity - 1) / p.capacity
}

// Contents returns the slice of list shown on the given 1-based page.
func (p *Paginator) Contents(list []string, page int) []string {
	if page < 1 {
		return nil
	}
	start := (page - 1) * p.capacity
	if start >= len(list) {
		return nil
	}
	end := min(start+p.capacity, len(list))
	return list[start:end]
}

// PageContents returns the rows of the current page.
func (p *Paginator) PageContents(list []string) []string {
	return p.Contents(list, p.Page)
}

// TurnPage moves one page in dir, wrapping around at both ends.
func (p *Paginator) TurnPage(list []string, dir Direction) {
	total := p.TotalPages(list)
	if total == 0 {
		p.Page = 1
		return
	}
	next := (p.Page - 1 + int(dir)) % total
	if next < 0 {
		next += total
	}
	p.Page = next + 1
}

// MoveHighlighted moves the highlight one row in dir. Moving past the end
// of a page turns to the next page and highlights its first row; moving
// before the start turns to the previous page and highlights its last row.
func (p *Paginator) MoveHighlighted(list []string, dir Direction) {
	size := len(p.PageContents(list))
	if size == 0 {
		p.Highlighted = 0
		return
	}

	next := p.Highlighted + int(dir)
	switch {
	case next < 0:
		p.TurnPage(list, Backward)
		p.Highlighted = max(len(p.PageContents(list))-1, 0)
	case next >= size:
		p.TurnPage(list, Forward)
		p.Highlighted = 0
	default:
		p.Highlighted = next
	}
}

// RetainSelection is called before the highlighted row is removed from
// list. When that row is the last one on the page the highlight steps back
// one row; otherwise the row below moves up under it.
func (p *Paginator) RetainSelection(list []string) {
	size := len(p.PageContents(list))
	if p.Highlighted > 0 && p.Highlighted == size-1 {
		p.Highlighted--
	}
}

// Clamp restores the page and highlight invariants after list shrank or
// the capacity changed, without resetting the position.
func (p *Paginator) Clamp(list []string) {
	total := p.TotalPages(list)
	switch {
	case total == 0:
		p.Page = 1
	case p.Page > total:
		p.Page = total
	case p.Page < 1:
		p.Page = 1
	}

	size := len(p.PageContents(list))
	if p.Highlighted >= size {
		p.Highlighted = max(size-1, 0)
	}
	if p.Highlighted < 0 {
		p.Highlighted = 0
	}
}

// Selected returns the highlighted command, if any.
func (p *Paginator) Selected(list []string) (string, bool) {
	rows := p.PageContents(list)
	if p.Highlighted < 0 || p.Highlighted >= len(rows) {
		return "", false
	}
	return rows[p.Highlighted], true
}
