package router

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/handlers"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/monitoring"
)

// SetupRoutes configures all routes for the application
func SetupRoutes(apiHandlers *handlers.APIHandlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", apiHandlers.HealthHandler)
	mux.HandleFunc("/v1/screen", apiHandlers.ScreenHandler)
	mux.HandleFunc("/v1/capabilities", apiHandlers.CapabilitiesHandler)

	mux.HandleFunc("/metrics", monitoring.MetricsHandler)
	monitoring.SetupPprofRoutes(mux)

	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	return monitoring.MetricsMiddleware(mux)
}
