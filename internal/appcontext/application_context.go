package appcontext

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mira-tu/FinalFlower-sub001/internal/config"
	"github.com/mira-tu/FinalFlower-sub001/internal/infra/producer"
	"github.com/mira-tu/FinalFlower-sub001/internal/infra/ratelimit"
	"github.com/mira-tu/FinalFlower-sub001/internal/infra/redis_client"
	"github.com/mira-tu/FinalFlower-sub001/internal/infra/repository/db"
	"github.com/mira-tu/FinalFlower-sub001/internal/infra/token"
	"github.com/mira-tu/FinalFlower-sub001/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type ApplicationContext struct {
	Cf           *config.Config
	DbConn       *sql.DB
	DbDao        *db.Store
	RedisClient  *redis.Client
	TokenMaker   token.Maker
	OrderLimiter ratelimit.ILimiter
	Publisher    producer.OrderEventPublisher

	CatalogService    service.ICatalogService
	OrderService      service.IOrderService
	OrderStateService service.IOrderStateService
	CartService       service.ICartService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	if cf == nil {
		return nil, errors.New("config is nil")
	}
	app := ApplicationContext{
		Cf: cf,
	}
	log.Info().
		Str("env", cf.Env).
		Str("server_port", cf.ServerPort).
		Str("db_host", cf.DbHost).
		Str("redis_addr", cf.RedisAddr).
		Strs("kafka_brokers", cf.KafkaBrokers).
		Msg("loaded config")

	if err := app.Init(); err != nil {
		// 已經建立的連線要釋放
		_ = app.Shutdown(context.Background())
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"database connection", app.setUpDbConn},
		{"database migration", app.setUpMigration},
		{"token maker", app.setUpTokenMaker},
		{"order rate limiter", app.setUpLimiter},
		{"order event publisher", app.setUpPublisher},
		{"services", app.setUpServices},
		{"catalog seed", app.setUpCatalogSeed},
	}
	for _, step := range steps {
		log.Info().Msgf("Start setup %s", step.name)
		if err := step.fn(); err != nil {
			return fmt.Errorf("setup %s: %w", step.name, err)
		}
		log.Info().Msgf("Finish setup %s", step.name)
	}
	return nil
}

func (app *ApplicationContext) setUpDbConn() error {
	gormDB, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return err
	}
	app.DbConn = sqlDB
	app.DbDao = db.NewStore(gormDB)
	return nil
}

func (app *ApplicationContext) setUpMigration() error {
	if !app.Cf.MigrationsEnabled {
		log.Info().Msg("migrations disabled, skipping")
		return nil
	}
	return db.RunMigrations(app.DbDao.DB())
}

func (app *ApplicationContext) setUpTokenMaker() error {
	tokenMaker, err := token.NewPasetoMaker(app.Cf.AuthTokenKey)
	if err != nil {
		return err
	}
	app.TokenMaker = tokenMaker
	return nil
}

// setUpLimiter 有設定 redis 時用分散式 token bucket，redis 失敗時退回單機限流
func (app *ApplicationContext) setUpLimiter() error {
	limiterCf := ratelimit.GetDefaultLimiterConfig()
	limiterCf.Prefix = "order_create"
	if app.Cf.OrderRateCapacity > 0 {
		limiterCf.Capacity = app.Cf.OrderRateCapacity
	}
	if app.Cf.OrderRatePerSecond > 0 {
		limiterCf.RatePS = app.Cf.OrderRatePerSecond
	}

	if app.Cf.RedisAddr == "" {
		app.OrderLimiter = ratelimit.NewTokenBucket(&limiterCf)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := redis_client.NewRedisClient(ctx, app.Cf.RedisAddr, redis_client.WithPassword(app.Cf.RedisPassword))
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, using in-process rate limiter")
		app.OrderLimiter = ratelimit.NewTokenBucket(&limiterCf)
		return nil
	}
	app.RedisClient = client
	app.OrderLimiter = ratelimit.NewRsTokenBucket(client, &limiterCf)
	return nil
}

// setUpPublisher 沒有設定 broker 時事件只記錄 log
func (app *ApplicationContext) setUpPublisher() error {
	if len(app.Cf.KafkaBrokers) == 0 {
		app.Publisher = producer.NoopPublisher{}
		return nil
	}
	cfg := producer.DefaultConfig()
	cfg.Brokers = app.Cf.KafkaBrokers
	cfg.Topic = app.Cf.KafkaOrderTopic
	p, err := producer.New(cfg)
	if err != nil {
		return err
	}
	app.Publisher = producer.NewKafkaOrderPublisher(p, cfg)
	return nil
}

func (app *ApplicationContext) setUpServices() error {
	guard := service.NewStockGuard(app.DbDao)
	pricing := service.NewPricingEngine(decimal.NewFromInt(app.Cf.DeliveryFee))

	app.CatalogService = service.NewCatalogService(app.DbDao)
	app.OrderService = service.NewOrderService(app.DbDao, pricing, guard, app.Publisher)
	app.OrderStateService = service.NewOrderStateService(app.DbDao, guard, app.Publisher)
	app.CartService = service.NewCartService(app.DbDao, guard)
	return nil
}

func (app *ApplicationContext) setUpCatalogSeed() error {
	if app.Cf.CatalogSeedFile == "" {
		return nil
	}
	_, err := app.CatalogService.SeedFromFile(context.Background(), app.Cf.CatalogSeedFile)
	return err
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Info().Msg("Start application shutdown")

	done := make(chan error, 1)
	go func() {
		var errs []error
		if app.Publisher != nil {
			log.Info().Msg("Closing order event publisher...")
			errs = append(errs, app.Publisher.Close())
		}
		if app.RedisClient != nil {
			log.Info().Msg("Closing redis client...")
			errs = append(errs, app.RedisClient.Close())
		}
		if app.DbConn != nil {
			log.Info().Msg("Closing database connection...")
			errs = append(errs, app.DbConn.Close())
		}
		log.Info().Msg("Application shutdown complete")
		done <- errors.Join(errs...)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}
}
