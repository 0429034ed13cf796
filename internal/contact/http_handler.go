package contact

import (
	"context"
	"errors"
	"net/http"

	"libraryhub/internal/form"
	"libraryhub/internal/httpx"
	"libraryhub/internal/notify"
)

// Session is the slice of visitor state the contact endpoint needs.
type Session interface {
	ID() string
	Contact() *form.Form
}

type SessionFunc func(ctx context.Context) (Session, bool)

type HTTPHandler struct {
	service *Service
	session SessionFunc
}

func NewHTTPHandler(service *Service, session SessionFunc) *HTTPHandler {
	return &HTTPHandler{service: service, session: session}
}

type sendReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type infoView struct {
	Details []Info `json:"details"`
}

// Info handles GET /v1/contact
// @Summary Library contact details
// @Tags contact
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/contact [get]
func (h *HTTPHandler) Info(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccess(w, r, infoView{Details: Details}, nil)
}

// Send handles POST /v1/contact
// @Summary Send a message to the library
// @Tags contact
// @Accept json
// @Produce json
// @Param request body sendReq true "Message"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /v1/contact [post]
func (h *HTTPHandler) Send(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(r.Context())
	if !ok {
		httpx.JSONError(w, r, http.StatusInternalServerError, "NO_SESSION", "Session unavailable", nil)
		return
	}

	var req sendReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	var rec notify.Recorder
	err := h.service.Send(r.Context(), s.ID(), s.Contact(), &rec, map[string]string{
		"name":    req.Name,
		"email":   req.Email,
		"subject": req.Subject,
		"message": req.Message,
	})
	if err != nil {
		writeSendError(w, r, err)
		return
	}
	toast, _ := rec.Last()
	httpx.JSONSuccessCreated(w, r, map[string]any{"toast": toast})
}

func writeSendError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs form.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		details := make([]httpx.ErrorDetail, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, httpx.ErrorDetail{Field: fe.Field, Message: fe.Message})
		}
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid message", details)
	case errors.Is(err, form.ErrSubmissionInFlight):
		httpx.JSONError(w, r, http.StatusConflict, "SUBMISSION_IN_FLIGHT", "A message is already being sent", nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		httpx.JSONError(w, r, http.StatusServiceUnavailable, "REQUEST_ABANDONED", "The message is still being sent", nil)
	default:
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
