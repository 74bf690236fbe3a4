package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
)

// RouterConfig carries the cross-cutting pieces of the HTTP surface.
type RouterConfig struct {
	Tokens TokenValidator
	// Middleware runs on every matched route, outermost first.
	Middleware []mux.MiddlewareFunc
	// Limiter is optional; nil disables rate limiting on /api.
	Limiter *RateLimiter
	// Metrics serves /metrics when set.
	Metrics http.Handler
	// UploadsDir is served read-only under /uploads/ when set.
	UploadsDir string
}

// NewRouter wires every route of the portal.
func NewRouter(cfg RouterConfig, loans *LoanHandler, admin *AdminHandler, health *HealthHandler) *mux.Router {
	r := mux.NewRouter()
	for _, mw := range cfg.Middleware {
		r.Use(mw)
	}

	r.HandleFunc("/healthz", health.liveness).Methods(http.MethodGet)
	r.HandleFunc("/readyz", health.readiness).Methods(http.MethodGet)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics).Methods(http.MethodGet)
	}
	if cfg.UploadsDir != "" {
		r.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(noDirFS{http.Dir(cfg.UploadsDir)})),
		).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	if cfg.Limiter != nil {
		api.Use(cfg.Limiter.Middleware)
	}

	loanPublic := api.PathPrefix("/loan").Subrouter()
	loans.RegisterPublic(loanPublic)

	loanProtected := api.PathPrefix("/loan").Subrouter()
	loanProtected.Use(Authenticate(cfg.Tokens))
	loans.RegisterProtected(loanProtected)

	adminRoutes := api.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(Authenticate(cfg.Tokens), RequireAdmin)
	admin.Register(adminRoutes)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})
	return r
}

// noDirFS hides directory listings of the uploads folder.
type noDirFS struct {
	fs http.FileSystem
}

func (n noDirFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if stat.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
