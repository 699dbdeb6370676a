package bmsync

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func urls(marks []Bookmark) []string {
	var out []string
	for _, m := range marks {
		out = append(out, m.URL)
	}
	return out
}

func Test_Merge(t *testing.T) {
	listA := []Bookmark{
		{Title: "A", URL: "http://a.com", Origin: OriginSafari},
		{Title: "B", URL: "http://b.com", Origin: OriginSafari},
	}
	listB := []Bookmark{
		{Title: "B2", URL: "http://b.com", Origin: OriginChrome},
		{Title: "C", URL: "http://c.com", Origin: OriginChrome},
	}

	t.Run("union with first-seen order", func(t *testing.T) {
		merged := Merge(listA, listB)

		want := []Bookmark{
			{Title: "A", URL: "http://a.com", Origin: OriginSafari},
			{Title: "B", URL: "http://b.com", Origin: OriginSafari},
			{Title: "C", URL: "http://c.com", Origin: OriginChrome},
		}
		if diff := cmp.Diff(want, merged); diff != "" {
			t.Errorf("merge mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("first list wins on conflicting titles", func(t *testing.T) {
		a := []Bookmark{{Title: "Old", URL: "http://x.com"}}
		b := []Bookmark{{Title: "New", URL: "http://x.com"}}

		merged := Merge(a, b)
		assert.Equal(t, []Bookmark{{Title: "Old", URL: "http://x.com"}}, merged)
	})

	t.Run("inputs not mutated", func(t *testing.T) {
		a := []Bookmark{{Title: "A", URL: "http://a.com"}}
		b := []Bookmark{{Title: "A dup", URL: "http://a.com"}}

		Merge(a, b)
		assert.Equal(t, "A", a[0].Title)
		assert.Equal(t, "A dup", b[0].Title)
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Empty(t, Merge(nil, nil))
		assert.Equal(t, urls(listA), urls(Merge(listA, nil)))
		assert.Equal(t, urls(listB), urls(Merge(nil, listB)))
	})

	t.Run("empty url records pass through", func(t *testing.T) {
		// Validation belongs to the adapters, the engine must not drop
		// records on its own.
		a := []Bookmark{{Title: "no url"}}
		b := []Bookmark{{Title: "also no url"}}

		merged := Merge(a, b)
		assert.Len(t, merged, 1)
		assert.Equal(t, "no url", merged[0].Title)
	})
}

func Test_MergeNoDuplicates(t *testing.T) {
	a := []Bookmark{
		{URL: "http://a.com"},
		{URL: "http://b.com"},
		{URL: "http://a.com", Title: "self dup"},
	}
	b := []Bookmark{
		{URL: "http://b.com"},
		{URL: "http://c.com"},
		{URL: "http://c.com", Title: "self dup"},
	}

	merged := Merge(a, b)

	counts := map[string]int{}
	for _, m := range merged {
		counts[m.URL]++
	}
	for url, n := range counts {
		assert.Equalf(t, 1, n, "url %s emitted %d times", url, n)
	}

	// URL set equals the union of both inputs.
	assert.ElementsMatch(t,
		[]string{"http://a.com", "http://b.com", "http://c.com"},
		urls(merged))
}

// Re-running the pipeline must not grow the merged set: merging the merged
// result with one of the original inputs is a fixed point.
func Test_MergeIdempotent(t *testing.T) {
	var a, b []Bookmark
	for i := range 20 {
		a = append(a, Bookmark{
			Title: fmt.Sprintf("a%d", i),
			URL:   fmt.Sprintf("http://site-%d.com", i),
		})
		b = append(b, Bookmark{
			Title: fmt.Sprintf("b%d", i),
			URL:   fmt.Sprintf("http://site-%d.com", i+10),
		})
	}

	merged := Merge(a, b)
	again := Merge(merged, a)

	if diff := cmp.Diff(merged, again); diff != "" {
		t.Errorf("second merge changed the result (-first +second):\n%s", diff)
	}
}

func Test_MergeCaseSensitive(t *testing.T) {
	a := []Bookmark{{URL: "http://a.com/Page"}}
	b := []Bookmark{{URL: "http://a.com/page"}}

	// URLs compare byte-exact, these are distinct bookmarks.
	assert.Len(t, Merge(a, b), 2)
}
