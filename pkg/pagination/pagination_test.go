package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationParamsValidate(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 500}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPerPage, p.PerPage)
	assert.Equal(t, 0, p.Offset())

	p = &PaginationParams{Page: 3, PerPage: 20}
	p.Validate()
	assert.Equal(t, 40, p.Offset())

	p = &PaginationParams{}
	p.Validate()
	assert.Equal(t, DefaultPerPage, p.PerPage)
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 15, 31)
	assert.Equal(t, 3, pag.TotalPages)
	assert.True(t, pag.HasNext)
	assert.True(t, pag.HasPrev)

	pag = NewPagination(1, 15, 0)
	assert.Equal(t, 0, pag.TotalPages)
	assert.False(t, pag.HasNext)
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	params := &CursorParams{Cursor: EncodeCursor("bill-7", at)}

	cursor, err := params.DecodeCursor()
	require.NoError(t, err)
	assert.Equal(t, "bill-7", cursor.ID)
	assert.True(t, at.Equal(cursor.At))

	empty, err := (&CursorParams{}).DecodeCursor()
	assert.NoError(t, err)
	assert.Nil(t, empty)

	_, err = (&CursorParams{Cursor: "%%%"}).DecodeCursor()
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestKeyset(t *testing.T) {
	cursor := &Cursor{At: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), ID: "b"}

	testCases := []struct {
		name      string
		keyset    Keyset
		direction CursorDirection
		order     string
		where     string
	}{
		{"ascending next", Keyset{Column: "created_at"}, CursorDirectionNext, "created_at ASC, id ASC", "(created_at, id) > (?, ?)"},
		{"ascending prev", Keyset{Column: "created_at"}, CursorDirectionPrev, "created_at DESC, id DESC", "(created_at, id) < (?, ?)"},
		{"descending next", Keyset{Column: "billed_at", Descending: true}, CursorDirectionNext, "billed_at DESC, id DESC", "(billed_at, id) < (?, ?)"},
		{"descending prev", Keyset{Column: "billed_at", Descending: true}, CursorDirectionPrev, "billed_at ASC, id ASC", "(billed_at, id) > (?, ?)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.order, tc.keyset.OrderBy(tc.direction))
			where, args := tc.keyset.After(cursor, tc.direction)
			assert.Equal(t, tc.where, where)
			assert.Equal(t, []any{cursor.At, "b"}, args)
		})
	}
}

func TestNewCursorPagination(t *testing.T) {
	at := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	key := func(s string) Cursor { return Cursor{At: at, ID: s} }

	t.Run("first page", func(t *testing.T) {
		pag, page := NewCursorPagination([]string{"a", "b", "c"}, &CursorParams{Limit: 2, Direction: CursorDirectionNext}, key)
		assert.Equal(t, []string{"a", "b"}, page)
		assert.True(t, pag.HasNext)
		assert.False(t, pag.HasPrev)
		require.NotNil(t, pag.NextCursor)

		next, err := (&CursorParams{Cursor: *pag.NextCursor}).DecodeCursor()
		require.NoError(t, err)
		assert.Equal(t, "b", next.ID)
	})

	t.Run("walking back", func(t *testing.T) {
		params := &CursorParams{Cursor: EncodeCursor("d", at), Limit: 2, Direction: CursorDirectionPrev}
		// rows arrive nearest first
		pag, page := NewCursorPagination([]string{"c", "b", "a"}, params, key)
		assert.Equal(t, []string{"b", "c"}, page)
		assert.True(t, pag.HasPrev)
		assert.True(t, pag.HasNext)

		prev, err := (&CursorParams{Cursor: *pag.PrevCursor}).DecodeCursor()
		require.NoError(t, err)
		assert.Equal(t, "b", prev.ID)
	})
}
