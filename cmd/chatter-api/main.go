// @title         chatter API
// @version       1.0.0
// @description   Ranked links shared on the feed

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatter/internal/modkit/repokit"
	"chatter/internal/platform/config"
	"chatter/internal/platform/logger"
	phttp "chatter/internal/platform/net/http"
	"chatter/internal/platform/net/middleware"
	"chatter/internal/platform/store"

	"chatter/internal/services/api"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		logger.Get().Warn().Err(err).Msg("dotenv not loaded")
	}

	root := config.New()
	coreCfg := root.Prefix("CORE_")
	apiCfg := coreCfg.Prefix("API_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// clickhouse is only needed for the hot list archive
	archive := coreCfg.MayBool("HOTLIST_ARCHIVE", false)
	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "chatter-api",
			PG:      store.PGFromConfig(root),
			CH:      store.CHFromConfig(root, archive, "api"),
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	gctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	repokit.MustGuard(gctx, st)
	cancel()

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(coreCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			CORS: middleware.CORSOptions{
				AllowedOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
				MaxAge:         apiCfg.MayInt("CORS_MAX_AGE", 300),
			},
			Rate: apiCfg.MayString("RATE", "120-M"),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
