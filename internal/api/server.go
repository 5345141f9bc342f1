package api

import "github.com/mira-tu/FinalFlower-sub001/internal/api/handler"

type Server struct {
	OrderHandler      *handler.OrderHandler
	AdminOrderHandler *handler.AdminOrderHandler
	ProductHandler    *handler.ProductHandler
	CartHandler       *handler.CartHandler
	HealthHandler     *handler.HealthHandler
}

func NewServer(
	orderHandler *handler.OrderHandler,
	adminOrderHandler *handler.AdminOrderHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	return &Server{
		OrderHandler:      orderHandler,
		AdminOrderHandler: adminOrderHandler,
		ProductHandler:    productHandler,
		CartHandler:       cartHandler,
		HealthHandler:     healthHandler,
	}
}
