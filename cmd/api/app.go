package main

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"libraryhub/internal/cart"
	"libraryhub/internal/catalog"
	"libraryhub/internal/config"
	"libraryhub/internal/contact"
	"libraryhub/internal/dashboard"
	"libraryhub/internal/httpx"
	"libraryhub/internal/loan"
	"libraryhub/internal/profile"
	"libraryhub/internal/session"
	"libraryhub/internal/web"
)

// app holds the wired services and handlers of the server.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	pool      *pgxpool.Pool
	sessions  *session.Store
	rateLimit *httpx.RateLimitMiddleware

	catalogAPI   *catalog.HTTPHandler
	cartAPI      *cart.HTTPHandler
	contactAPI   *contact.HTTPHandler
	profileAPI   *profile.HTTPHandler
	dashboardAPI *dashboard.HTTPHandler
	pages        *web.Handler
}

func newApp(cfg config.Config, logger *zap.Logger, pool *pgxpool.Pool) (*app, error) {
	var (
		catalogRepo catalog.Repository
		loanRepo    loan.Repository
		contactRepo contact.Repository
		storeOpts   []session.StoreOption
	)
	if pool != nil {
		catalogRepo = catalog.NewPostgresRepo(pool, cfg.DBTimeout)
		loanRepo = loan.NewPostgresRepo(pool, cfg.DBTimeout)
		contactRepo = contact.NewPostgresRepo(pool, cfg.DBTimeout)
	} else {
		loans := loan.NewMemoryRepo()
		catalogRepo = catalog.NewMemoryRepo(catalog.Static())
		loanRepo = loans
		contactRepo = contact.NewMemoryRepo()
		storeOpts = append(storeOpts, session.WithExpiryHook(loans.Forget))
	}

	books := catalog.NewService(catalogRepo)
	loans := loan.NewService(loanRepo, cfg.BorrowPeriod, time.Now)
	if cfg.DemoData {
		storeOpts = append(storeOpts, session.WithSeeder(session.DemoSeeder(books, loans, time.Now)))
	}
	sessions := session.NewStore(session.Config{
		TTL:          cfg.SessionTTL,
		BorrowPeriod: cfg.BorrowPeriod,
		SubmitDelay:  cfg.SubmitDelay,
	}, logger, storeOpts...)

	carts := cart.NewService(books, loans)
	messages := contact.NewService(contactRepo)
	profiles := profile.NewService()
	dash := dashboard.NewService(loans, time.Now)

	render, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		pool:      pool,
		sessions:  sessions,
		rateLimit: httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst),

		catalogAPI:   catalog.NewHTTPHandler(books),
		cartAPI:      cart.NewHTTPHandler(carts, cartSession),
		contactAPI:   contact.NewHTTPHandler(messages, contactSession),
		profileAPI:   profile.NewHTTPHandler(profiles, profileSession),
		dashboardAPI: dashboard.NewHTTPHandler(dash, dashboardSession),
		pages: web.NewHandler(web.Services{
			Books:     books,
			Carts:     carts,
			Contact:   messages,
			Profiles:  profiles,
			Dashboard: dash,
		}, render, logger),
	}, nil
}

func (a *app) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", a.ready)

	mux.HandleFunc("GET /v1/books", a.catalogAPI.Search)
	mux.HandleFunc("GET /v1/books/{id}", a.catalogAPI.GetByID)

	mux.HandleFunc("GET /v1/cart", a.cartAPI.Get)
	mux.HandleFunc("POST /v1/cart/items", a.cartAPI.AddItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", a.cartAPI.RemoveItem)
	mux.HandleFunc("POST /v1/cart/checkout", a.cartAPI.Checkout)

	mux.HandleFunc("GET /v1/contact", a.contactAPI.Info)
	mux.HandleFunc("POST /v1/contact", a.contactAPI.Send)

	mux.HandleFunc("GET /v1/profile", a.profileAPI.Get)
	mux.HandleFunc("PATCH /v1/profile", a.profileAPI.Update)

	mux.HandleFunc("GET /v1/dashboard", a.dashboardAPI.Get)
	mux.HandleFunc("POST /v1/loans/{id}/renew", a.dashboardAPI.Renew)
	mux.HandleFunc("POST /v1/loans/{id}/return", a.dashboardAPI.Return)

	a.pages.Register(mux)

	return httpx.Chain(mux,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(a.logger),
		httpx.RecoveryMiddleware(a.logger),
		httpx.SecurityHeadersMiddleware(a.cfg.EnableHSTS),
		httpx.CORSMiddleware(a.cfg.AllowedOrigins),
		a.rateLimit.Middleware,
		httpx.RequestSizeLimitMiddleware(a.cfg.MaxBodyBytes),
		session.Middleware(a.sessions, session.CookieConfig{
			Secret: a.cfg.SessionSecret,
			Secure: a.cfg.CookieSecure,
		}, a.logger),
	)
}

func (a *app) ready(w http.ResponseWriter, r *http.Request) {
	if a.pool != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := a.pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func cartSession(ctx context.Context) (cart.Session, bool) {
	s, ok := session.FromContext(ctx)
	if !ok {
		return nil, false
	}
	return s, true
}

func contactSession(ctx context.Context) (contact.Session, bool) {
	s, ok := session.FromContext(ctx)
	if !ok {
		return nil, false
	}
	return s, true
}

func profileSession(ctx context.Context) (profile.Session, bool) {
	s, ok := session.FromContext(ctx)
	if !ok {
		return nil, false
	}
	return s, true
}

func dashboardSession(ctx context.Context) (dashboard.Session, bool) {
	s, ok := session.FromContext(ctx)
	if !ok {
		return nil, false
	}
	return s, true
}
