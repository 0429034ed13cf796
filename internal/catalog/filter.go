package catalog

import "strings"

// FilterState is the catalog view's search box and category selector.
type FilterState struct {
	Search   string   `json:"search"`
	Category Category `json:"category"`
}

// Matches reports whether b is visible under f. Search is a case-insensitive
// substring test against title or author.
func (f FilterState) Matches(b Book) bool {
	if f.Category != "" && f.Category != CategoryAll && f.Category != b.Category {
		return false
	}
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(b.Title), needle) ||
		strings.Contains(strings.ToLower(b.Author), needle)
}

// Filter returns the books matching f in catalog order.
func Filter(books []Book, f FilterState) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if f.Matches(b) {
			out = append(out, b)
		}
	}
	return out
}
