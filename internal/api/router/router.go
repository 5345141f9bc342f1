package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/mira-tu/FinalFlower-sub001/docs"
	"github.com/mira-tu/FinalFlower-sub001/internal/api"
	m "github.com/mira-tu/FinalFlower-sub001/internal/api/middleware"
	"github.com/mira-tu/FinalFlower-sub001/internal/constants"
	"github.com/mira-tu/FinalFlower-sub001/internal/infra/ratelimit"
	"github.com/mira-tu/FinalFlower-sub001/internal/infra/token"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	TokenMaker     token.Maker
	OrderLimiter   ratelimit.ILimiter
	RequestTimeout time.Duration
	Logger         zerolog.Logger
}

func SetupRouter(server *api.Server, opts Options) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.AuthPayloadMiddleware(opts.TokenMaker))
	r.Use(m.LoggerMiddleware(opts.Logger))
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	r.Get("/health", server.HealthHandler.Health)

	// Swagger 文檔
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})
	r.Get("/swagger/*", httpSwagger.Handler())

	staff := m.RequireRoles(constants.RoleEmployee, constants.RoleAdmin)

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", server.ProductHandler.ListProducts)
			r.Get("/{id}", server.ProductHandler.GetProduct)
		})

		r.Group(func(r chi.Router) {
			r.Use(m.AuthMiddleware)

			r.Route("/orders", func(r chi.Router) {
				if opts.OrderLimiter != nil {
					r.With(m.RateLimitMiddleware(opts.OrderLimiter)).Post("/", server.OrderHandler.CreateOrder)
				} else {
					r.Post("/", server.OrderHandler.CreateOrder)
				}
				r.Get("/", server.OrderHandler.ListOrders)
				r.Get("/{id}", server.OrderHandler.GetOrder)
				r.Put("/{id}/cancel", server.OrderHandler.CancelOrder)
				r.Put("/{id}/receipt", server.OrderHandler.AttachReceipt)
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", server.CartHandler.GetCart)
				r.Put("/items", server.CartHandler.SetItem)
				r.Delete("/items/{product_id}", server.CartHandler.RemoveItem)
			})

			r.Route("/admin", func(r chi.Router) {
				r.With(staff).Put("/orders/{id}/status", server.AdminOrderHandler.UpdateStatus)
				r.With(staff).Put("/orders/{id}/payment-status", server.AdminOrderHandler.UpdatePaymentStatus)
				r.With(m.RequireRoles(constants.RoleAdmin)).Post("/products", server.ProductHandler.CreateProduct)
				r.With(m.RequireRoles(constants.RoleAdmin)).Put("/products/{id}", server.ProductHandler.UpdateProduct)
			})
		})
	})

	// 設置完所有路由後記錄路由樹
	_ = chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		opts.Logger.Debug().Str("method", method).Str("route", route).Msg("route registered")
		return nil
	})
	return r
}
