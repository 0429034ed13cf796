package cart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"libraryhub/internal/loan"
	"libraryhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	id   string
	cart *Cart
}

func (f *fakeSession) ID() string  { return f.id }
func (f *fakeSession) Cart() *Cart { return f.cart }

func newHandler(s *fakeSession) *HTTPHandler {
	return NewHTTPHandler(newService(loan.NewMemoryRepo()), func(context.Context) (Session, bool) {
		if s == nil {
			return nil, false
		}
		return s, true
	})
}

func TestHTTPHandler_AddItem(t *testing.T) {
	sess := &fakeSession{id: "s1", cart: New(WithClock(clock))}
	handler := newHandler(sess)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"added", `{"book_id":1}`, http.StatusCreated},
		{"duplicate", `{"book_id":1}`, http.StatusConflict},
		{"unavailable", `{"book_id":3}`, http.StatusConflict},
		{"unknown book", `{"book_id":99}`, http.StatusNotFound},
		{"missing id", `{}`, http.StatusBadRequest},
		{"bad json", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/v1/cart/items", strings.NewReader(tt.body))

			handler.AddItem(w, r)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.code < 300, testutil.DecodeEnvelope(t, w).Success)
		})
	}
	assert.Equal(t, 1, sess.cart.Len())
}

func TestHTTPHandler_RemoveAndCheckout(t *testing.T) {
	sess := &fakeSession{id: "s1", cart: New(WithClock(clock))}
	_, _ = sess.cart.Add(book(1))
	_, _ = sess.cart.Add(book(2))
	handler := newHandler(sess)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/v1/cart/items/1", nil)
	r.SetPathValue("id", "1")
	handler.RemoveItem(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Removed from Cart")

	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodDelete, "/v1/cart/items/1", nil)
	r.SetPathValue("id", "1")
	handler.RemoveItem(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	handler.Checkout(w, httptest.NewRequest(http.MethodPost, "/v1/cart/checkout", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You have borrowed 1 book")
	assert.True(t, sess.cart.Empty())

	w = httptest.NewRecorder()
	handler.Checkout(w, httptest.NewRequest(http.MethodPost, "/v1/cart/checkout", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CART_EMPTY")
}

func TestHTTPHandler_Get(t *testing.T) {
	sess := &fakeSession{id: "s1", cart: New(WithClock(clock))}
	_, _ = sess.cart.Add(book(4))
	handler := newHandler(sess)

	w := httptest.NewRecorder()
	handler.Get(w, testutil.NewJSONRequest(http.MethodGet, "/v1/cart", nil))

	require.Equal(t, http.StatusOK, w.Code)
	env := testutil.DecodeEnvelope(t, w)
	assert.True(t, env.Success)

	var view cartView
	env.DecodeData(t, &view)
	require.Len(t, view.Entries, 1)
	assert.Equal(t, "Pride and Prejudice", view.Entries[0].Title)
	assert.Equal(t, Summary{TotalBooks: 1, PeriodDays: 14, LateFeePerDay: 1}, view.Summary)
}

func TestHTTPHandler_NoSession(t *testing.T) {
	handler := newHandler(nil)

	w := httptest.NewRecorder()
	handler.Get(w, httptest.NewRequest(http.MethodGet, "/v1/cart", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
