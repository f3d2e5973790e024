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

const serviceName = "user-service"

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

	store := storage.NewUserMySQL(db)
	backing := cache.Funcs[*domain.User]{
		LoadFunc: func(ctx context.Context, key string) (*domain.User, bool, error) {
			user, err := store.Get(ctx, key)
			return user, user != nil, err
		},
		StoreFunc: func(ctx context.Context, key string, user *domain.User) error {
			return store.Update(ctx, user)
		},
		DeleteFunc: store.Delete,
	}

	var userCache port.EntityCache[*domain.User]
	if cfg.Cache.Backend == config.CacheBackendRedis {
		rdb, err := bootstrap.OpenRedis(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("connect redis")
		}
		defer rdb.Close()
		userCache = storage.NewRedisCache[*domain.User](rdb, "users", backing, cfg.Cache.TTL)
	} else {
		userCache = cache.New[*domain.User](backing)
	}

	users := service.NewUserService(store, userCache)
	h := handler.NewUserHandler(users)

	if err := bootstrap.Run(ctx, serviceName, cfg.HTTP.Port, log, func(mux *http.ServeMux) {
		h.Register(mux)
	}); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
