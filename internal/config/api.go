package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shoplens/shoplens/pkg/middleware"
	"github.com/shoplens/shoplens/pkg/pagination"
)

const (
	EnvAPIBasePath     = "SHOPLENS_API_BASE_PATH"
	EnvAPIAuthIssuer   = "SHOPLENS_API_AUTH_ISSUER"
	EnvAPIAuthAudience = "SHOPLENS_API_AUTH_AUDIENCE"
)

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "SHOPLENS_API_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "SHOPLENS_API_MAX_PAGE_SIZE",
}

// APIConfig holds API module parameters.
type APIConfig struct {
	BasePath   string                `toml:"base_path"`
	CORS       middleware.CORSConfig `toml:"cors"`
	Auth       middleware.AuthConfig `toml:"auth"`
	Pagination pagination.Config     `toml:"pagination"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	c.CORS.Merge(&overlay.CORS)
	c.Auth.Merge(&overlay.Auth)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIAuthIssuer); v != "" {
		c.Auth.Issuer = v
	}
	if v := os.Getenv(EnvAPIAuthAudience); v != "" {
		c.Auth.Audience = v
	}
}

func (c *APIConfig) validate() error {
	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path must start with /: %s", c.BasePath)
	}
	return nil
}
