// Package pagination implements the two list styles the API offers: numbered
// pages with a total count, and keyset cursors for long, append-mostly
// tables such as bills.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"
)

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// ErrInvalidCursor is returned for a cursor the server did not issue.
var ErrInvalidCursor = errors.New("invalid cursor")

func clampPerPage(n int) int {
	switch {
	case n < 1:
		return DefaultPerPage
	case n > MaxPerPage:
		return MaxPerPage
	}
	return n
}

// Pagination is the page metadata returned with a page of items
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// PaginationParams is the page request read from the query string
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

func DefaultPagination() *PaginationParams {
	return &PaginationParams{Page: 1, PerPage: DefaultPerPage}
}

// Validate clamps the request into range instead of rejecting it
func (p *PaginationParams) Validate() {
	p.Page = max(p.Page, 1)
	p.PerPage = clampPerPage(p.PerPage)
}

func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

func NewPagination(page, perPage int, total int64) *Pagination {
	pages := 0
	if perPage > 0 {
		pages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  pages,
		HasNext:     page < pages,
		HasPrev:     page > 1,
	}
}

type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

func NewPaginatedResult[T any](items []T, pagination *Pagination) *PaginatedResult[T] {
	return &PaginatedResult[T]{Items: items, Pagination: pagination}
}

// CursorDirection is the way a cursor request walks from its cursor
type CursorDirection string

const (
	CursorDirectionNext CursorDirection = "next"
	CursorDirectionPrev CursorDirection = "prev"
)

// Cursor is a position in a keyset: the sort timestamp of a row plus its id
// to break ties between rows written in the same instant.
type Cursor struct {
	At time.Time `json:"t"`
	ID string    `json:"id"`
}

// EncodeCursor returns the opaque form of a cursor handed to clients
func EncodeCursor(id string, at time.Time) string {
	data, _ := json.Marshal(Cursor{At: at, ID: id})
	return base64.RawURLEncoding.EncodeToString(data)
}

// CursorParams is the cursor request read from the query string
type CursorParams struct {
	Cursor    string          `form:"cursor" json:"cursor"`
	Direction CursorDirection `form:"direction" json:"direction"`
	Limit     int             `form:"limit" json:"limit"`
}

func DefaultCursorParams() *CursorParams {
	return &CursorParams{Direction: CursorDirectionNext, Limit: DefaultPerPage}
}

// Validate clamps the limit and treats anything but "prev" as "next"
func (c *CursorParams) Validate() {
	c.Limit = clampPerPage(c.Limit)
	if c.Direction != CursorDirectionPrev {
		c.Direction = CursorDirectionNext
	}
}

// DecodeCursor returns nil for the first page and ErrInvalidCursor for
// anything that does not decode to a cursor with an id.
func (c *CursorParams) DecodeCursor() (*Cursor, error) {
	if c.Cursor == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(c.Cursor)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	var cursor Cursor
	if err := json.Unmarshal(raw, &cursor); err != nil || cursor.ID == "" {
		return nil, ErrInvalidCursor
	}
	return &cursor, nil
}

// Keyset is a sort order over (Column, id) that cursors resume from.
type Keyset struct {
	Column     string
	Descending bool
}

// OrderBy returns the ORDER BY clause for a page walked in direction d.
// Previous pages are read in reverse and flipped back by NewCursorPagination.
func (k Keyset) OrderBy(d CursorDirection) string {
	dir := "ASC"
	if k.Descending != (d == CursorDirectionPrev) {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, id %s", k.Column, dir, dir)
}

// After returns the WHERE clause selecting the rows beyond cursor in
// direction d.
func (k Keyset) After(cursor *Cursor, d CursorDirection) (string, []any) {
	op := ">"
	if k.Descending != (d == CursorDirectionPrev) {
		op = "<"
	}
	return fmt.Sprintf("(%s, id) %s (?, ?)", k.Column, op), []any{cursor.At, cursor.ID}
}

// CursorPagination is the cursor metadata returned with a page of items
type CursorPagination struct {
	NextCursor *string `json:"next_cursor,omitempty"`
	PrevCursor *string `json:"prev_cursor,omitempty"`
	HasNext    bool    `json:"has_next"`
	HasPrev    bool    `json:"has_prev"`
	Limit      int     `json:"limit"`
}

type CursorPaginatedResult[T any] struct {
	Items      []T               `json:"items"`
	Pagination *CursorPagination `json:"pagination"`
}

// NewCursorPagination builds the page from rows fetched with Limit+1 in the
// order Keyset.OrderBy gave for params.Direction. The extra row only signals
// that more exist and is dropped.
func NewCursorPagination[T any](items []T, params *CursorParams, key func(T) Cursor) (*CursorPagination, []T) {
	more := len(items) > params.Limit
	if more {
		items = items[:params.Limit]
	}

	resumed := params.Cursor != ""
	pag := &CursorPagination{Limit: params.Limit, HasNext: more, HasPrev: resumed}
	if params.Direction == CursorDirectionPrev {
		slices.Reverse(items)
		pag.HasNext, pag.HasPrev = resumed, more
	}

	if len(items) > 0 {
		first, last := key(items[0]), key(items[len(items)-1])
		next := EncodeCursor(last.ID, last.At)
		prev := EncodeCursor(first.ID, first.At)
		pag.NextCursor = &next
		pag.PrevCursor = &prev
	}
	return pag, items
}

func NewCursorPaginatedResult[T any](items []T, pagination *CursorPagination) *CursorPaginatedResult[T] {
	return &CursorPaginatedResult[T]{Items: items, Pagination: pagination}
}
