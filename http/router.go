package http

import (
	"net/http"

	"go.uber.org/zap"

	"quote-desk/catalog"
	"quote-desk/service"
)

// Services are the dependencies the router wires into handlers.
type Services struct {
	Catalog *catalog.Catalog
	Quotes  *service.QuoteService
	Users   *service.UserService
	Auth    *service.AuthService
}

// NewRouter registers every route. Quote management and logout require a
// session; login is rate limited per client address.
func NewRouter(s Services, limiter *RateLimiter, logger *zap.Logger) http.Handler {
	catalogHandler := NewCatalogHandler(s.Catalog, logger)
	quoteHandler := NewQuoteHandler(s.Quotes, logger)
	userHandler := NewUserHandler(s.Users, logger)
	authHandler := NewAuthHandler(s.Auth, logger)

	authed := func(h http.HandlerFunc) http.Handler {
		return RequireSession(s.Auth, logger, h)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/products", catalogHandler.ListProducts)
	mux.HandleFunc("GET /api/products/{key}", catalogHandler.GetProduct)

	mux.HandleFunc("POST /api/quotes/price", quoteHandler.Price)
	mux.HandleFunc("POST /api/quotes", quoteHandler.Create)
	mux.Handle("GET /api/quotes", authed(quoteHandler.List))
	mux.Handle("GET /api/quotes/stats", authed(quoteHandler.Stats))
	mux.Handle("GET /api/quotes/export", authed(quoteHandler.Export))
	mux.Handle("POST /api/quotes/{id}/convert", authed(quoteHandler.Convert))

	mux.HandleFunc("GET /api/users", userHandler.List)
	mux.HandleFunc("POST /api/users", userHandler.Create)
	mux.HandleFunc("PUT /api/users/{id}", userHandler.Update)
	mux.HandleFunc("DELETE /api/users/{id}", userHandler.Delete)
	mux.HandleFunc("GET /api/users/export", userHandler.Export)

	mux.Handle("POST /api/auth/login", RateLimitMiddleware(limiter, logger, http.HandlerFunc(authHandler.Login)))
	mux.Handle("POST /api/auth/logout", authed(authHandler.Logout))
	mux.Handle("GET /api/auth/me", authed(authHandler.Me))

	return RequestLogger(logger, mux)
}
