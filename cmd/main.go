package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mira-tu/FinalFlower-sub001/internal/api"
	"github.com/mira-tu/FinalFlower-sub001/internal/api/handler"
	"github.com/mira-tu/FinalFlower-sub001/internal/api/router"
	"github.com/mira-tu/FinalFlower-sub001/internal/appcontext"
	"github.com/mira-tu/FinalFlower-sub001/internal/config"
	"github.com/mira-tu/FinalFlower-sub001/internal/infra/logger"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// @title flower shop order api
// @version 1.0
// @description 花店訂單、購物車與商品目錄

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token. Example: "Bearer {token}"

func main() {
	cf := config.GetConfig()
	appLogger := logger.Setup(cf.Env)

	app, err := appcontext.NewApplicationContext(cf)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init application")
	}

	server := api.NewServer(
		handler.NewOrderHandler(app.OrderService, app.OrderStateService),
		handler.NewAdminOrderHandler(app.OrderStateService),
		handler.NewProductHandler(app.CatalogService),
		handler.NewCartHandler(app.CartService),
		handler.NewHealthHandler(app.DbConn),
	)

	// 設置路由
	r := router.SetupRouter(server, router.Options{
		TokenMaker:     app.TokenMaker,
		OrderLimiter:   app.OrderLimiter,
		RequestTimeout: cf.RequestTimeout,
		Logger:         appLogger,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cf.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("server shutdown: %w", err))
		}
		if err := app.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("application shutdown: %w", err))
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("closed completed")
}
