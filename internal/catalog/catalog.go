package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a book id is not in the catalog.
var ErrNotFound = errors.New("book not found")

// ErrInvalidCategory is returned when a category selector is outside the enumeration.
var ErrInvalidCategory = errors.New("invalid category")

// Category is the fixed genre enumeration of the catalog.
type Category string

const (
	CategoryAll       Category = "all"
	CategoryClassic   Category = "classic"
	CategoryDystopian Category = "dystopian"
	CategoryRomance   Category = "romance"
	CategoryFantasy   Category = "fantasy"
)

// Categories lists the selectable categories in display order, without the "all" sentinel.
var Categories = []Category{CategoryClassic, CategoryDystopian, CategoryRomance, CategoryFantasy}

var categoryLabels = map[Category]string{
	CategoryAll:       "All Categories",
	CategoryClassic:   "Classic Fiction",
	CategoryDystopian: "Dystopian",
	CategoryRomance:   "Romance",
	CategoryFantasy:   "Fantasy",
}

// ParseCategory maps a selector value to a Category. An empty selector means all.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c == "" {
		return CategoryAll, nil
	}
	if _, ok := categoryLabels[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// Label returns the human readable name shown in the category selector.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Book is an immutable catalog record.
type Book struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Category  Category `json:"category"`
	Rating    float64  `json:"rating"`
	Available bool     `json:"available"`
}

// Result is a filtered view over the catalog.
type Result struct {
	Books []Book `json:"books"`
	Total int    `json:"total"`
}

// Static returns the fixed catalog served when no database is configured.
func Static() []Book {
	return []Book{
		{ID: 1, Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Category: CategoryClassic, Rating: 4.5, Available: true},
		{ID: 2, Title: "To Kill a Mockingbird", Author: "Harper Lee", Category: CategoryClassic, Rating: 4.8, Available: true},
		{ID: 3, Title: "1984", Author: "George Orwell", Category: CategoryDystopian, Rating: 4.6, Available: false},
		{ID: 4, Title: "Pride and Prejudice", Author: "Jane Austen", Category: CategoryRomance, Rating: 4.7, Available: true},
		{ID: 5, Title: "The Catcher in the Rye", Author: "J.D. Salinger", Category: CategoryClassic, Rating: 4.3, Available: true},
		{ID: 6, Title: "Brave New World", Author: "Aldous Huxley", Category: CategoryDystopian, Rating: 4.4, Available: true},
		{ID: 7, Title: "The Hobbit", Author: "J.R.R. Tolkien", Category: CategoryFantasy, Rating: 4.7, Available: false},
		{ID: 8, Title: "Harry Potter and the Philosopher's Stone", Author: "J.K. Rowling", Category: CategoryFantasy, Rating: 4.8, Available: true},
	}
}
