package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	page, size := NormalizePage(0, 0)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, size)

	page, size = NormalizePage(3, 500)
	assert.Equal(t, 3, page)
	assert.Equal(t, DefaultPageSize, size)

	page, size = NormalizePage(2, 50)
	assert.Equal(t, 2, page)
	assert.Equal(t, 50, size)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(1, 20, 0)
	assert.Equal(t, 0, p.TotalPages)

	p = NewPagination(1, 20, 41)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(41), p.Total)
}
