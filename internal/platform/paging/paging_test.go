package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, Page{Offset: 0, Limit: 100}, Page{Offset: -3}.Normalize(100, 200))
	assert.Equal(t, Page{Offset: 5, Limit: 200}, Page{Offset: 5, Limit: 999}.Normalize(100, 200))
	assert.Equal(t, Page{Offset: 1, Limit: 10}, Page{Offset: 1, Limit: 10}.Normalize(100, 200))
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{2, 3}, Slice(items, Page{Offset: 1, Limit: 2}))
	assert.Equal(t, []int{4, 5}, Slice(items, Page{Offset: 3, Limit: 10}))
	assert.Empty(t, Slice(items, Page{Offset: 9, Limit: 1}))
}
