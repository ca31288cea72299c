package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageBounds(t *testing.T) {
	tests := []struct {
		name                           string
		total, page, size              int
		wantStart, wantEnd, wantP, wantN int
	}{
		{"first page", 12, 1, 5, 0, 5, 1, 3},
		{"middle page", 12, 2, 5, 5, 10, 2, 3},
		{"short last page", 12, 3, 5, 10, 12, 3, 3},
		{"page beyond range clamps to last", 12, 99, 5, 10, 12, 3, 3},
		{"page below one clamps to first", 12, 0, 5, 0, 5, 1, 3},
		{"negative page clamps to first", 12, -3, 5, 0, 5, 1, 3},
		{"exact multiple", 10, 2, 5, 5, 10, 2, 2},
		{"empty collection has one empty page", 0, 1, 5, 0, 0, 1, 1},
		{"empty collection any page", 0, 7, 5, 0, 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, page, pages := PageBounds(tt.total, tt.page, tt.size)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
			assert.Equal(t, tt.wantP, page)
			assert.Equal(t, tt.wantN, pages)
		})
	}
}

func TestPaginate(t *testing.T) {
	tasks := make([]Task, 7)
	for i := range tasks {
		tasks[i].ID = i + 1
	}

	page, n, pages := Paginate(tasks, 2, 5)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, pages)
	assert.Len(t, page, 2)
	assert.Equal(t, 6, page[0].ID)

	// shrinking the data clamps the remembered page
	page, n, pages = Paginate(tasks[:3], 2, 5)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, pages)
	assert.Len(t, page, 3)
}
