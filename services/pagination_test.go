package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(0, 0, 10)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Offset())

	p = NewPagination(3, 25, 10)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, 50, p.Offset())

	p = NewPagination(1, 5000, 10)
	assert.Equal(t, MaxPageSize, p.Limit)

	p = NewPagination(-4, -1, 20)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
}

func TestBuildMeta(t *testing.T) {
	cases := []struct {
		name       string
		total      int64
		page       int
		limit      int
		totalPages int
		hasMore    bool
	}{
		{"empty", 0, 1, 10, 0, false},
		{"exact fit", 20, 1, 10, 2, true},
		{"last page", 20, 2, 10, 2, false},
		{"partial last page", 21, 2, 10, 3, true},
		{"single page", 7, 1, 10, 1, false},
		{"beyond last page", 15, 5, 10, 2, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta := BuildMeta(tc.total, Pagination{Page: tc.page, Limit: tc.limit})
			assert.Equal(t, tc.total, meta.Total)
			assert.Equal(t, tc.totalPages, meta.TotalPages)
			assert.Equal(t, tc.hasMore, meta.HasMore)
			assert.Equal(t, tc.page, meta.Page)
			assert.Equal(t, tc.limit, meta.Limit)
		})
	}
}
