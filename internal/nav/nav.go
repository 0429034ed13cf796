package nav

import "sync"

// Link is one entry of the navigation bar.
type Link struct {
	Path   string
	Label  string
	Icon   string
	Active bool
}

// Bar is the rendered navigation for one page.
type Bar struct {
	Links    []Link
	Actions  []Link
	MenuOpen bool
}

var links = []Link{
	{Path: "/", Label: "Home", Icon: "home"},
	{Path: "/books", Label: "Books", Icon: "book-open"},
	{Path: "/cart", Label: "Cart", Icon: "shopping-cart"},
	{Path: "/contact", Label: "Contact", Icon: "phone"},
}

var actions = []Link{
	{Path: "/login", Label: "Login", Icon: "log-in"},
	{Path: "/dashboard", Label: "Dashboard", Icon: "user"},
}

// Build marks the link whose route equals path as active.
func Build(path string, menuOpen bool) Bar {
	return Bar{
		Links:    mark(links, path),
		Actions:  mark(actions, path),
		MenuOpen: menuOpen,
	}
}

func mark(src []Link, path string) []Link {
	out := make([]Link, len(src))
	for i, l := range src {
		l.Active = l.Path == path
		out[i] = l
	}
	return out
}

// Routes lists every path the navigation points at.
func Routes() []string {
	out := make([]string, 0, len(links)+len(actions))
	for _, l := range links {
		out = append(out, l.Path)
	}
	for _, l := range actions {
		out = append(out, l.Path)
	}
	return out
}

// Menu is the open/closed state of the small-viewport menu.
type Menu struct {
	mu   sync.Mutex
	open bool
}

// Toggle flips the menu and returns the new state.
func (m *Menu) Toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = !m.open
	return m.open
}

// Close is called when a link is followed from the menu.
func (m *Menu) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
}

func (m *Menu) Open() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}
