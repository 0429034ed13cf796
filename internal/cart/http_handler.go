package cart

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"libraryhub/internal/catalog"
	"libraryhub/internal/httpx"
	"libraryhub/internal/notify"
)

// Session is the slice of visitor state the cart endpoints need.
type Session interface {
	ID() string
	Cart() *Cart
}

// SessionFunc resolves the visitor session from a request context.
type SessionFunc func(ctx context.Context) (Session, bool)

type HTTPHandler struct {
	service *Service
	session SessionFunc
}

func NewHTTPHandler(service *Service, session SessionFunc) *HTTPHandler {
	return &HTTPHandler{service: service, session: session}
}

type addItemReq struct {
	BookID int `json:"book_id" validate:"required,gt=0"`
}

type cartView struct {
	Entries []Entry `json:"entries"`
	Summary Summary `json:"summary"`
}

type entryView struct {
	Entry Entry        `json:"entry"`
	Toast notify.Toast `json:"toast"`
}

type receiptView struct {
	Receipt Receipt      `json:"receipt"`
	Toast   notify.Toast `json:"toast"`
}

func (h *HTTPHandler) resolve(w http.ResponseWriter, r *http.Request) (Session, bool) {
	s, ok := h.session(r.Context())
	if !ok {
		httpx.JSONError(w, r, http.StatusInternalServerError, "NO_SESSION", "Session unavailable", nil)
		return nil, false
	}
	return s, true
}

// Get handles GET /v1/cart
// @Summary Show cart
// @Tags cart
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/cart [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.resolve(w, r)
	if !ok {
		return
	}
	c := s.Cart()
	httpx.JSONSuccess(w, r, cartView{Entries: c.Entries(), Summary: c.Summary()}, nil)
}

// AddItem handles POST /v1/cart/items
// @Summary Add an available book to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param request body addItemReq true "Book to add"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /v1/cart/items [post]
func (h *HTTPHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req addItemReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", details)
		return
	}

	var rec notify.Recorder
	e, err := h.service.Add(r.Context(), s.Cart(), &rec, req.BookID)
	if err != nil {
		writeCartError(w, r, err)
		return
	}
	toast, _ := rec.Last()
	httpx.JSONSuccessCreated(w, r, entryView{Entry: e, Toast: toast})
}

// RemoveItem handles DELETE /v1/cart/items/{id}
// @Summary Remove a book from the cart
// @Tags cart
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/cart/items/{id} [delete]
func (h *HTTPHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.resolve(w, r)
	if !ok {
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid book ID", nil)
		return
	}

	var rec notify.Recorder
	e, err := h.service.Remove(r.Context(), s.Cart(), &rec, id)
	if err != nil {
		writeCartError(w, r, err)
		return
	}
	toast, _ := rec.Last()
	httpx.JSONSuccess(w, r, entryView{Entry: e, Toast: toast}, nil)
}

// Checkout handles POST /v1/cart/checkout
// @Summary Borrow every book in the cart
// @Tags cart
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /v1/cart/checkout [post]
func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	s, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var rec notify.Recorder
	receipt, err := h.service.Checkout(r.Context(), s.ID(), s.Cart(), &rec)
	if err != nil {
		writeCartError(w, r, err)
		return
	}
	toast, _ := rec.Last()
	httpx.JSONSuccess(w, r, receiptView{Receipt: receipt, Toast: toast}, nil)
}

func writeCartError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found in catalog", nil)
	case errors.Is(err, ErrNotInCart):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_IN_CART", "Book is not in the cart", nil)
	case errors.Is(err, ErrUnavailable):
		httpx.JSONError(w, r, http.StatusConflict, "BOOK_UNAVAILABLE", "Book is currently borrowed", nil)
	case errors.Is(err, ErrAlreadyInCart):
		httpx.JSONError(w, r, http.StatusConflict, "ALREADY_IN_CART", "Book is already in the cart", nil)
	case errors.Is(err, ErrEmptyCart):
		httpx.JSONError(w, r, http.StatusConflict, "CART_EMPTY", "Add some books before checking out", nil)
	default:
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
