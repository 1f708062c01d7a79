package routers

import (
	"net/http"
	"patient-record-service/internal/app/config"
	"patient-record-service/internal/app/delivery/http/controllers"
	"patient-record-service/internal/app/delivery/http/middlewares"
	"patient-record-service/internal/pkg/constvars"
	"patient-record-service/internal/pkg/exceptions"
	"patient-record-service/internal/pkg/metrics"
	"patient-record-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const megabyte = 1 << 20

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	collector *metrics.Collector,
	infoController *controllers.InfoController,
	patientController *controllers.PatientController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodPut, constvars.MethodDelete, constvars.MethodOptions},
		AllowedHeaders:   []string{constvars.HeaderAccept, constvars.HeaderAuthorization, constvars.HeaderContentType, constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderXRequestID},
		AllowCredentials: false,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(collector.Middleware)
	router.Use(middlewares.RateLimiter())

	bodyLimit := int64(internalConfig.App.RequestBodyLimitInMegabyte) * megabyte
	if bodyLimit > 0 {
		router.Use(middleware.RequestSize(bodyLimit))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.BuildErrorResponse(middlewares.Log, w, exceptions.ErrRouteNotFound(r.URL.Path))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.BuildErrorResponse(middlewares.Log, w, exceptions.ErrMethodNotAllowed(r.Method, r.URL.Path))
	})

	router.Get("/", infoController.Home)
	router.Get("/about", infoController.About)
	router.Get("/healthz", infoController.Healthz)
	router.Method(constvars.MethodGet, "/metrics", collector.MetricsHandler())

	attachPatientRoutes(router, patientController)
}
