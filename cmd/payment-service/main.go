package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"github.com/microshop-io/microshop/internal/adapter/handler"
	"github.com/microshop-io/microshop/internal/adapter/storage"
	"github.com/microshop-io/microshop/internal/cache"
	"github.com/microshop-io/microshop/internal/core/domain"
	"github.com/microshop-io/microshop/internal/core/service"
	"github.com/microshop-io/microshop/internal/pkg/bootstrap"
	"github.com/microshop-io/microshop/internal/pkg/config"
	"github.com/microshop-io/microshop/internal/pkg/logging"
	"github.com/microshop-io/microshop/internal/port"
)

const serviceName = "payment-service"

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := logging.New(serviceName, "info")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logging.New(serviceName, cfg.Log.Level)

	ctx := context.Background()
	db, err := bootstrap.OpenMySQL(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("connect mysql")
	}
	defer db.Close()

	store := storage.NewPaymentMySQL(db)
	backing := cache.Funcs[*domain.Payment]{
		LoadFunc: func(ctx context.Context, key string) (*domain.Payment, bool, error) {
			payment, err := store.Get(ctx, key)
			return payment, payment != nil, err
		},
		StoreFunc: func(ctx context.Context, key string, payment *domain.Payment) error {
			return store.Update(ctx, payment)
		},
		DeleteFunc: store.Delete,
	}

	var paymentCache port.EntityCache[*domain.Payment]
	if cfg.Cache.Backend == config.CacheBackendRedis {
		rdb, err := bootstrap.OpenRedis(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("connect redis")
		}
		defer rdb.Close()
		paymentCache = storage.NewRedisCache[*domain.Payment](rdb, "payments", backing, cfg.Cache.TTL)
	} else {
		paymentCache = cache.New[*domain.Payment](backing)
	}

	payments := service.NewPaymentService(store, paymentCache)
	h := handler.NewPaymentHandler(payments)

	if err := bootstrap.Run(ctx, serviceName, cfg.HTTP.Port, log, func(mux *http.ServeMux) {
		h.Register(mux)
	}); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
