package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"github.com/microshop-io/microshop/internal/adapter/handler"
	"github.com/microshop-io/microshop/internal/adapter/lookup"
	"github.com/microshop-io/microshop/internal/adapter/storage"
	"github.com/microshop-io/microshop/internal/cache"
	"github.com/microshop-io/microshop/internal/core/domain"
	"github.com/microshop-io/microshop/internal/core/service"
	"github.com/microshop-io/microshop/internal/pkg/bootstrap"
	"github.com/microshop-io/microshop/internal/pkg/config"
	"github.com/microshop-io/microshop/internal/pkg/logging"
	"github.com/microshop-io/microshop/internal/port"
)

const serviceName = "inventory-service"

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

	store := storage.NewInventoryMySQL(db)
	backing := cache.Funcs[*domain.Inventory]{
		LoadFunc: func(ctx context.Context, key string) (*domain.Inventory, bool, error) {
			inv, err := store.Get(ctx, key)
			return inv, inv != nil, err
		},
		StoreFunc: func(ctx context.Context, key string, inv *domain.Inventory) error {
			return store.Update(ctx, inv)
		},
		DeleteFunc: store.Delete,
	}

	var invCache port.EntityCache[*domain.Inventory]
	if cfg.Cache.Backend == config.CacheBackendRedis {
		rdb, err := bootstrap.OpenRedis(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("connect redis")
		}
		defer rdb.Close()
		invCache = storage.NewRedisCache[*domain.Inventory](rdb, "inventory", backing, cfg.Cache.TTL)
	} else {
		invCache = cache.New[*domain.Inventory](backing)
	}

	lookupClient := lookup.NewClient(lookup.Endpoints{
		ProductServiceURL: cfg.Peers.ProductServiceURL,
	}, cfg.Lookup.Timeout, log)

	inventory := service.NewInventoryService(store, invCache, lookupClient)
	h := handler.NewInventoryHandler(inventory)

	if err := bootstrap.Run(ctx, serviceName, cfg.HTTP.Port, log, func(mux *http.ServeMux) {
		h.Register(mux)
	}); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
