package catalog

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(books []Book) []int {
	out := make([]int, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}

func TestStatic_Shape(t *testing.T) {
	books := Static()
	require.Len(t, books, 8)

	perCategory := map[Category]int{}
	for _, b := range books {
		perCategory[b.Category]++
		assert.GreaterOrEqual(t, b.Rating, 0.0)
		assert.LessOrEqual(t, b.Rating, 5.0)
	}
	assert.Equal(t, 3, perCategory[CategoryClassic])
	assert.Equal(t, 2, perCategory[CategoryDystopian])
	assert.Equal(t, 1, perCategory[CategoryRomance])
	assert.Equal(t, 2, perCategory[CategoryFantasy])
}

func TestFilter(t *testing.T) {
	books := Static()

	tests := []struct {
		name   string
		filter FilterState
		want   []int
	}{
		{"empty search, all categories", FilterState{Category: CategoryAll}, []int{1, 2, 3, 4, 5, 6, 7, 8}},
		{"zero value matches everything", FilterState{}, []int{1, 2, 3, 4, 5, 6, 7, 8}},
		{"classic keeps catalog order", FilterState{Category: CategoryClassic}, []int{1, 2, 5}},
		{"title match is case-insensitive", FilterState{Search: "GREAT"}, []int{1}},
		{"author match", FilterState{Search: "orwell"}, []int{3}},
		{"title or author", FilterState{Search: "the"}, []int{1, 5, 7, 8}},
		{"search and category combine", FilterState{Search: "the", Category: CategoryFantasy}, []int{7, 8}},
		{"no matches", FilterState{Search: "dune"}, []int{}},
		{"no matches in category", FilterState{Search: "gatsby", Category: CategoryRomance}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(books, tt.filter))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilter_MembershipProperty(t *testing.T) {
	books := Static()
	searches := []string{"", "a", "the", "J.", "rowling", "NEW", "zzz"}
	categories := append([]Category{CategoryAll}, Categories...)

	for _, s := range searches {
		for _, c := range categories {
			f := FilterState{Search: s, Category: c}
			got := map[int]bool{}
			for _, b := range Filter(books, f) {
				got[b.ID] = true
			}
			for _, b := range books {
				needle := strings.ToLower(s)
				searchOK := s == "" ||
					strings.Contains(strings.ToLower(b.Title), needle) ||
					strings.Contains(strings.ToLower(b.Author), needle)
				categoryOK := c == CategoryAll || c == b.Category
				assert.Equal(t, searchOK && categoryOK, got[b.ID], "search=%q category=%q book=%d", s, c, b.ID)
			}
		}
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryAll, c)

	c, err = ParseCategory(" Classic ")
	require.NoError(t, err)
	assert.Equal(t, CategoryClassic, c)
	assert.Equal(t, "Classic Fiction", c.Label())

	_, err = ParseCategory("horror")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestListQuery(t *testing.T) {
	t.Run("no filters", func(t *testing.T) {
		sql, args, err := listQuery(FilterState{Category: CategoryAll})
		require.NoError(t, err)
		assert.NotContains(t, sql, "WHERE")
		assert.Contains(t, sql, `ORDER BY "id" ASC`)
		assert.Empty(t, args)
	})

	t.Run("category and escaped search", func(t *testing.T) {
		sql, args, err := listQuery(FilterState{Search: "50%_off", Category: CategoryClassic})
		require.NoError(t, err)
		assert.Contains(t, sql, `"category" = $1`)
		assert.Contains(t, sql, `"title" ILIKE $2`)
		assert.Contains(t, sql, `"author" ILIKE $3`)
		assert.Equal(t, []any{"classic", `%50\%\_off%`, `%50\%\_off%`}, args)
	})
}
