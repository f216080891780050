package api

import (
	"github.com/shoplens/shoplens/internal/analytics"
	"github.com/shoplens/shoplens/internal/facts"
	"github.com/shoplens/shoplens/internal/reports"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Facts     facts.System
	Analytics *analytics.Handler
	Reports   reports.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	factsSystem := facts.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	analyticsHandler := analytics.NewHandler(
		factsSystem,
		runtime.Logger,
		runtime.Pagination,
	)

	reportsSystem := reports.New(
		factsSystem,
		runtime.Storage,
		runtime.Logger,
	)

	return &Domain{
		Facts:     factsSystem,
		Analytics: analyticsHandler,
		Reports:   reportsSystem,
	}
}
