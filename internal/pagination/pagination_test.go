package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, DefaultPerPage, Clamp(0))
	assert.Equal(t, DefaultPerPage, Clamp(-5))
	assert.Equal(t, 25, Clamp(25))
	assert.Equal(t, MaxPerPage, Clamp(500))
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(25, 1, 10)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, int64(25), meta.TotalItems)

	meta = NewMeta(30, 2, 10)
	assert.Equal(t, 3, meta.TotalPages)

	meta = NewMeta(0, 1, 10)
	assert.Equal(t, 0, meta.TotalPages)
}

func TestSlice(t *testing.T) {
	offset, limit := Slice(25, 1, 10)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 10, limit)

	offset, limit = Slice(25, 3, 10)
	assert.Equal(t, 20, offset)
	assert.Equal(t, 10, limit)

	// Beyond the last page: empty slice, not an error.
	_, limit = Slice(25, 4, 10)
	assert.Equal(t, 0, limit)

	_, limit = Slice(25, 0, 10)
	assert.Equal(t, 0, limit)

	_, limit = Slice(25, -1, 10)
	assert.Equal(t, 0, limit)
}

func TestNewLinks(t *testing.T) {
	query := url.Values{"q": []string{"pasta"}}

	links := NewLinks("/api/v1/recipes/search", query, NewMeta(25, 2, 10))
	assert.Contains(t, links.Self, "page=2")
	assert.Contains(t, links.Self, "q=pasta")
	assert.Contains(t, links.Next, "page=3")
	assert.Contains(t, links.Prev, "page=1")
}

func TestNewLinksFirstAndLastPage(t *testing.T) {
	links := NewLinks("/api/v1/recipes", nil, NewMeta(25, 1, 10))
	assert.Empty(t, links.Prev)
	assert.NotEmpty(t, links.Next)

	links = NewLinks("/api/v1/recipes", nil, NewMeta(25, 3, 10))
	assert.Empty(t, links.Next)
	assert.NotEmpty(t, links.Prev)
}
