package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"libraryhub/internal/catalog"
	"libraryhub/internal/httpx"
	"libraryhub/internal/loan"
	"libraryhub/internal/testutil"
)

const secret = "test-secret"

func newClock() *testutil.Clock {
	return testutil.NewClock(time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC))
}

func TestToken_RoundTrip(t *testing.T) {
	now := time.Now()
	token, err := IssueToken(secret, "abc", now, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(secret, token, now)
	require.NoError(t, err)
	assert.Equal(t, "abc", claims.Subject)

	_, err = ParseToken("other-secret", token, now)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken(secret, token, now.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken(secret, "garbage", now)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestStore_Expiry(t *testing.T) {
	clk := newClock()
	var expired []string
	st := NewStore(Config{TTL: time.Hour, Now: clk.Now}, zaptest.NewLogger(t), WithExpiryHook(func(id string) {
		expired = append(expired, id)
	}))

	a := st.Create(context.Background())
	b := st.Create(context.Background())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, st.Len())

	clk.Advance(40 * time.Minute)
	_, ok := st.Get(a.ID())
	require.True(t, ok)

	clk.Advance(40 * time.Minute)
	_, ok = st.Get(b.ID())
	assert.False(t, ok, "b idled past the TTL")

	assert.Equal(t, 1, st.Sweep())
	assert.Equal(t, []string{b.ID()}, expired)

	st.Delete(a.ID())
	assert.Zero(t, st.Len())
	assert.Equal(t, []string{b.ID(), a.ID()}, expired)
}

func TestStore_NewSessionDefaults(t *testing.T) {
	st := NewStore(Config{}, nil)
	s := st.Create(context.Background())

	assert.True(t, s.Cart().Empty())
	assert.Equal(t, catalog.CategoryAll, s.Filter().Category)
	assert.False(t, s.Menu().Open())
	assert.Equal(t, "John Doe", s.Profile().Details().Name)
	assert.False(t, s.Contact().Busy())

	s.SetFilter(catalog.FilterState{Search: "gatsby", Category: catalog.CategoryClassic})
	assert.Equal(t, "gatsby", s.Filter().Search)
}

func TestStore_RunStopsOnCancel(t *testing.T) {
	st := NewStore(Config{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- st.Run(ctx, time.Millisecond) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestDemoSeeder(t *testing.T) {
	clk := newClock()
	books := catalog.NewService(catalog.NewMemoryRepo(catalog.Static()))
	loans := loan.NewService(loan.NewMemoryRepo(), 14*24*time.Hour, clk.Now)
	st := NewStore(Config{Now: clk.Now}, nil, WithSeeder(DemoSeeder(books, loans, clk.Now)))

	s := st.Create(context.Background())

	entries := s.Cart().Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "The Great Gatsby", entries[0].Title)
	assert.Equal(t, "To Kill a Mockingbird", entries[1].Title)

	history, err := loans.History(context.Background(), s.ID())
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "1984", history[0].Title)
	assert.Equal(t, "The Catcher in the Rye", history[2].Title)
}

func TestMiddleware(t *testing.T) {
	clk := newClock()
	st := NewStore(Config{TTL: time.Hour, Now: clk.Now}, nil)
	var seen []string
	h := Middleware(st, CookieConfig{Secret: secret}, zaptest.NewLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := FromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, s.ID(), httpx.SessionIDFrom(r))
		seen = append(seen, s.ID())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	r := httptest.NewRequest(http.MethodGet, "/cart", nil)
	r.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Empty(t, w.Result().Cookies(), "fresh cookie is not reissued")

	r = httptest.NewRequest(http.MethodGet, "/cart", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "tampered"})
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Len(t, w.Result().Cookies(), 1)

	require.Len(t, seen, 3)
	assert.Equal(t, seen[0], seen[1])
	assert.NotEqual(t, seen[0], seen[2])
	assert.Equal(t, 2, st.Len())
}

func TestFromContext_Missing(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
}

func TestMiddleware_ReissuesAgingCookie(t *testing.T) {
	clk := newClock()
	st := NewStore(Config{TTL: time.Hour, Now: clk.Now}, nil)
	s := st.Create(context.Background())
	h := Middleware(st, CookieConfig{Secret: secret}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := FromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, s.ID(), got.ID())
	}))

	clk.Advance(40 * time.Minute)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: testutil.SessionToken(secret, s.ID(), clk.Now().Add(-40*time.Minute), time.Hour)})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	claims, err := ParseToken(secret, cookies[0].Value, clk.Now())
	require.NoError(t, err)
	assert.Equal(t, s.ID(), claims.Subject)
	assert.Equal(t, 1, st.Len())
}

func TestMiddleware_ExpiredCookieStartsNewSession(t *testing.T) {
	clk := newClock()
	st := NewStore(Config{TTL: time.Hour, Now: clk.Now}, nil)
	old := st.Create(context.Background())
	var got string
	h := Middleware(st, CookieConfig{Secret: secret}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, _ := FromContext(r.Context())
		got = s.ID()
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: testutil.SessionToken(secret, old.ID(), clk.Now().Add(-2*time.Hour), time.Hour)})
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.NotEmpty(t, got)
	assert.NotEqual(t, old.ID(), got)
}
