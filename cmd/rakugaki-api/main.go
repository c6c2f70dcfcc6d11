// @title         Rakugaki Gallery API
// @version       0.1.0
// @description   AI art critique generation and gallery lookups

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rakugaki/internal/platform/config"
	"rakugaki/internal/platform/logger"
	phttp "rakugaki/internal/platform/net/http"
	"rakugaki/internal/platform/store"

	"rakugaki/internal/services/api"
)

func main() {
	root := config.New().Prefix("RAKUGAKI_")
	apiCfg := root.Prefix("API_")

	// bring up logging early
	l := logger.Get()

	// the postgres archive is optional, works live in memory without it
	st, err := store.Open(
		context.Background(),
		store.FromConf("rakugaki-api", root.Prefix("PG_")),
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads RAKUGAKI_API_PORT)
	srv := phttp.NewServer(apiCfg)

	closeMods := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)
	defer closeMods()

	// stop on SIGINT/SIGTERM with a graceful drain
	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background()) }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-done:
		if err != nil {
			l.Panic().Err(err).Msg("http server stopped")
		}
	case s := <-sig:
		l.Info().Str("signal", s.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			l.Error().Err(err).Msg("graceful shutdown failed")
		}
		<-done
	}
}
