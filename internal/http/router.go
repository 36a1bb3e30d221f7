package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authSvc "github.com/hoangvn/nhatro/internal/auth"
	"github.com/hoangvn/nhatro/internal/http/auth"
	"github.com/hoangvn/nhatro/internal/http/billing"
	"github.com/hoangvn/nhatro/internal/http/expense"
	"github.com/hoangvn/nhatro/internal/http/meter"
	"github.com/hoangvn/nhatro/internal/http/property"
	"github.com/hoangvn/nhatro/internal/http/report"
)

func New(
	authService *authSvc.Service,
	authV1 *auth.Handler,
	propertyV1 *property.Handler,
	meterV1 *meter.Handler,
	invoicesV1 *billing.Handler,
	expensesV1 *expense.Handler,
	reportsV1 *report.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(authService.Middleware)

			propertyV1.Routes(r)

			r.Route("/meters", meterV1.Routes)

			r.Route("/invoices", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				invoicesV1.Routes(r)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				expensesV1.Routes(r)
			})

			r.Route("/reports", reportsV1.Routes)
		})
	})

	return router
}
