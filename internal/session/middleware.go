package session

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"libraryhub/internal/httpx"
)

const CookieName = "libraryhub_session"

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Secret string
	Secure bool
}

// Middleware resolves the visitor session from its signed cookie, starting a
// new one when the cookie is missing, invalid or points to an expired session.
// The cookie is reissued once half of its lifetime has passed.
func Middleware(st *Store, cc CookieConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := st.cfg.Now()
			var (
				s       *Session
				reissue bool
			)

			if c, err := r.Cookie(CookieName); err == nil {
				claims, err := ParseToken(cc.Secret, c.Value, now)
				if err == nil {
					s, _ = st.Get(claims.Subject)
					reissue = claims.IssuedAt == nil || now.Sub(claims.IssuedAt.Time) > st.cfg.TTL/2
				}
			}
			if s == nil {
				s = st.Create(r.Context())
				reissue = true
				logger.Debug("session started", zap.String("session_id", s.ID()), zap.String("request_id", httpx.RequestIDFrom(r)))
			}

			if reissue {
				token, err := IssueToken(cc.Secret, s.ID(), now, st.cfg.TTL)
				if err != nil {
					logger.Error("session token signing failed", zap.Error(err))
				} else {
					http.SetCookie(w, &http.Cookie{
						Name:     CookieName,
						Value:    token,
						Path:     "/",
						Expires:  now.Add(st.cfg.TTL),
						MaxAge:   int(st.cfg.TTL / time.Second),
						HttpOnly: true,
						Secure:   cc.Secure,
						SameSite: http.SameSiteLaxMode,
					})
				}
			}

			ctx := NewContext(r.Context(), s)
			ctx = httpx.ContextWithSessionID(ctx, s.ID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
