package profile

import (
	"context"
	"errors"
	"net/http"

	"libraryhub/internal/form"
	"libraryhub/internal/httpx"
	"libraryhub/internal/notify"
)

// Session is the slice of visitor state the profile endpoints need.
type Session interface {
	Profile() *Profile
}

type SessionFunc func(ctx context.Context) (Session, bool)

type HTTPHandler struct {
	service *Service
	session SessionFunc
}

func NewHTTPHandler(service *Service, session SessionFunc) *HTTPHandler {
	return &HTTPHandler{service: service, session: session}
}

type updateReq struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (u updateReq) values() map[string]string {
	out := make(map[string]string, 4)
	for name, v := range map[string]*string{"name": u.Name, "email": u.Email, "phone": u.Phone, "address": u.Address} {
		if v != nil {
			out[name] = *v
		}
	}
	return out
}

type updateView struct {
	Profile Details      `json:"profile"`
	Toast   notify.Toast `json:"toast"`
}

// Get handles GET /v1/profile
// @Summary Show the visitor profile
// @Tags profile
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/profile [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(r.Context())
	if !ok {
		httpx.JSONError(w, r, http.StatusInternalServerError, "NO_SESSION", "Session unavailable", nil)
		return
	}
	httpx.JSONSuccess(w, r, s.Profile().Details(), nil)
}

// Update handles PATCH /v1/profile
// @Summary Update profile fields
// @Tags profile
// @Accept json
// @Produce json
// @Param request body updateReq true "Fields to change"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /v1/profile [patch]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(r.Context())
	if !ok {
		httpx.JSONError(w, r, http.StatusInternalServerError, "NO_SESSION", "Session unavailable", nil)
		return
	}

	var req updateReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	p := s.Profile()
	var rec notify.Recorder
	if err := h.service.Update(p, &rec, req.values()); err != nil {
		var verrs form.ValidationErrors
		if errors.As(err, &verrs) {
			details := make([]httpx.ErrorDetail, 0, len(verrs))
			for _, fe := range verrs {
				details = append(details, httpx.ErrorDetail{Field: fe.Field, Message: fe.Message})
			}
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid profile", details)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	toast, _ := rec.Last()
	httpx.JSONSuccess(w, r, updateView{Profile: p.Details(), Toast: toast}, nil)
}
