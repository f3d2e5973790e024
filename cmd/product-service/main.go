package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"github.com/microshop-io/microshop/internal/adapter/handler"
	"github.com/microshop-io/microshop/internal/adapter/storage"
	"github.com/microshop-io/microshop/internal/core/service"
	"github.com/microshop-io/microshop/internal/pkg/bootstrap"
	"github.com/microshop-io/microshop/internal/pkg/config"
	"github.com/microshop-io/microshop/internal/pkg/logging"
)

const serviceName = "product-service"

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

	products := service.NewProductService(storage.NewProductMySQL(db))
	h := handler.NewProductHandler(products)

	if err := bootstrap.Run(ctx, serviceName, cfg.HTTP.Port, log, func(mux *http.ServeMux) {
		h.Register(mux)
	}); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
