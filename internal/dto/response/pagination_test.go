package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page := Paginate(items, 2, 2)
	assert.Equal(t, []int{3, 4}, page.Data)
	assert.Equal(t, int64(5), page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)

	last := Paginate(items, 3, 2)
	assert.Equal(t, []int{5}, last.Data)

	beyond := Paginate(items, 9, 2)
	assert.Empty(t, beyond.Data)
	assert.Equal(t, 3, beyond.Pagination.TotalPages)
}
