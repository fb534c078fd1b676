package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/salarycalc-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	logger *slog.Logger,
	corsOrigins []string,
	JWTService jwt.Service,
	reportHandler ReportHandler,
	metricsHandler http.Handler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/reports", func(r chi.Router) {
			if JWTService != nil && JWTService.Enabled() {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			}

			r.Get("/", reportHandler.ListKinds)
			r.Get("/departments", reportHandler.ListDepartments)
			r.Route("/{kind}", func(r chi.Router) {
				r.Get("/", reportHandler.GetReport)
				r.Get("/xlsx", reportHandler.ExportReport)
			})
		})
	})
	return r
}
