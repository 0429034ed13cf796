package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func activePaths(b Bar) []string {
	var out []string
	for _, l := range append(b.Links, b.Actions...) {
		if l.Active {
			out = append(out, l.Path)
		}
	}
	return out
}

func TestBuild_HighlightsExactRoute(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{"/"}},
		{"/books", []string{"/books"}},
		{"/dashboard", []string{"/dashboard"}},
		{"/books/1", nil},
		{"/profile", nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, activePaths(Build(tt.path, false)))
		})
	}
}

func TestBuild_DoesNotMutateTemplateLinks(t *testing.T) {
	_ = Build("/cart", true)
	for _, l := range links {
		assert.False(t, l.Active)
	}
}

func TestMenu_ToggleAndClose(t *testing.T) {
	var m Menu
	assert.False(t, m.Open())
	assert.True(t, m.Toggle())
	assert.True(t, m.Open())
	m.Close()
	assert.False(t, m.Open())
	assert.True(t, m.Toggle())
	assert.False(t, m.Toggle())
}

func TestRoutes(t *testing.T) {
	assert.Equal(t, []string{"/", "/books", "/cart", "/contact", "/login", "/dashboard"}, Routes())
}
