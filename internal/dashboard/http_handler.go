package dashboard

import (
	"context"
	"errors"
	"net/http"

	"libraryhub/internal/httpx"
	"libraryhub/internal/loan"
	"libraryhub/internal/notify"
)

// Session is the slice of visitor state the dashboard endpoints need.
type Session interface {
	ID() string
}

type SessionFunc func(ctx context.Context) (Session, bool)

type HTTPHandler struct {
	service *Service
	session SessionFunc
}

func NewHTTPHandler(service *Service, session SessionFunc) *HTTPHandler {
	return &HTTPHandler{service: service, session: session}
}

type loanView struct {
	Loan  loan.Loan    `json:"loan"`
	Toast notify.Toast `json:"toast"`
}

func (h *HTTPHandler) readerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	s, ok := h.session(r.Context())
	if !ok {
		httpx.JSONError(w, r, http.StatusInternalServerError, "NO_SESSION", "Session unavailable", nil)
		return "", false
	}
	return s.ID(), true
}

// Get handles GET /v1/dashboard
// @Summary Reader dashboard
// @Tags dashboard
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/dashboard [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	readerID, ok := h.readerID(w, r)
	if !ok {
		return
	}
	sum, err := h.service.Summary(r.Context(), readerID)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, sum, nil)
}

// Renew handles POST /v1/loans/{id}/renew
// @Summary Extend a loan by one borrowing period
// @Tags dashboard
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /v1/loans/{id}/renew [post]
func (h *HTTPHandler) Renew(w http.ResponseWriter, r *http.Request) {
	readerID, ok := h.readerID(w, r)
	if !ok {
		return
	}
	var rec notify.Recorder
	l, err := h.service.Renew(r.Context(), readerID, r.PathValue("id"), &rec)
	if err != nil {
		writeLoanError(w, r, err)
		return
	}
	toast, _ := rec.Last()
	httpx.JSONSuccess(w, r, loanView{Loan: l, Toast: toast}, nil)
}

// Return handles POST /v1/loans/{id}/return
// @Summary Return a borrowed book
// @Tags dashboard
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /v1/loans/{id}/return [post]
func (h *HTTPHandler) Return(w http.ResponseWriter, r *http.Request) {
	readerID, ok := h.readerID(w, r)
	if !ok {
		return
	}
	var rec notify.Recorder
	l, err := h.service.Return(r.Context(), readerID, r.PathValue("id"), &rec)
	if err != nil {
		writeLoanError(w, r, err)
		return
	}
	toast, _ := rec.Last()
	httpx.JSONSuccess(w, r, loanView{Loan: l, Toast: toast}, nil)
}

func writeLoanError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, loan.ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Loan not found", nil)
	case errors.Is(err, loan.ErrNotActive):
		httpx.JSONError(w, r, http.StatusConflict, "LOAN_RETURNED", "Loan has already been returned", nil)
	case errors.Is(err, loan.ErrRenewLimit):
		httpx.JSONError(w, r, http.StatusConflict, "RENEW_LIMIT", "Renewal limit reached", nil)
	default:
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
