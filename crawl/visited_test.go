package crawl_test

import (
	"testing"

	"github.com/fwojciec/sitecrawl/crawl"
	"github.com/stretchr/testify/assert"
)

func TestVisitedSet(t *testing.T) {
	t.Parallel()

	t.Run("stores spellings verbatim", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewVisitedSet()
		s.Add("/a", "https://example.com/a", "https://example.com/a/")

		assert.Equal(t, 3, s.Len())
		assert.True(t, s.Contains("/a"))
		assert.True(t, s.Contains("https://example.com/a/"))
		assert.False(t, s.Contains("https://EXAMPLE.com/a"))
	})

	t.Run("ignores repeated values", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewVisitedSet()
		s.Add("/a", "/a")
		s.Add("/a")

		assert.Equal(t, 1, s.Len())
	})

	t.Run("lists values in sorted order", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewVisitedSet()
		s.Add("/b", "https://example.com/a", "/a")

		assert.Equal(t, []string{"/a", "/b", "https://example.com/a"}, s.Values())
	})

	t.Run("empty set", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewVisitedSet()

		assert.Equal(t, 0, s.Len())
		assert.Empty(t, s.Values())
		assert.False(t, s.Contains(""))
	})
}
