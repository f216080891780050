package api

import (
	"net/http"

	"github.com/shoplens/shoplens/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Analytics.Routes(),
		domain.Reports.Handler().Routes(),
	)
}
