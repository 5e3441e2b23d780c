package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jmolenaar/etf-tracker-backend/internal/api/handlers"
	custommiddleware "github.com/jmolenaar/etf-tracker-backend/internal/api/middleware"
	"github.com/jmolenaar/etf-tracker-backend/internal/config"
	"github.com/jmolenaar/etf-tracker-backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	etfService *service.ETFService,
	transactionService *service.TransactionService,
	portfolioService *service.PortfolioService,
	priceService *service.PriceService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
		})

		r.Route("/etf", func(r chi.Router) {
			etfHandler := handlers.NewETFHandler(etfService)
			r.Get("/", etfHandler.ETFs)
			r.Post("/", etfHandler.CreateETF)
			r.Route("/{symbol}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateSymbolMiddleware)
				r.Get("/", etfHandler.GetETF)
				r.Put("/", etfHandler.UpdateETF)
				r.Delete("/", etfHandler.DeleteETF)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(transactionService)
			r.Get("/", transactionHandler.Transactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
			r.Get("/snapshot", portfolioHandler.Snapshot)
			r.Post("/plan", portfolioHandler.Plan)
		})

		r.Route("/prices", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(priceService)
			r.Post("/refresh", priceHandler.Refresh)
			r.Route("/{symbol}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateSymbolMiddleware)
				r.Get("/", priceHandler.History)
			})
		})
	})

	return r
}
