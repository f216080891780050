// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shoplens/shoplens/internal/config"
	"github.com/shoplens/shoplens/internal/infrastructure"
	"github.com/shoplens/shoplens/pkg/middleware"
	"github.com/shoplens/shoplens/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// Token verification is enabled only when the auth config carries an issuer.
func NewModule(ctx context.Context, cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	if cfg.API.Auth.Enabled() {
		auth, err := middleware.Auth(ctx, &cfg.API.Auth, runtime.Infrastructure.Logger)
		if err != nil {
			return nil, fmt.Errorf("auth init failed: %w", err)
		}
		m.Use(auth)
	}

	return m, nil
}
