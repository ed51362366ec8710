package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"chatter/internal/modkit"
	"chatter/internal/modkit/module"
	"chatter/internal/platform/config"
	"chatter/internal/platform/logger"
	"chatter/internal/platform/metrics"
	"chatter/internal/platform/store"

	enrichmod "chatter/internal/services/enrich/module"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		logger.Get().Warn().Err(err).Msg("dotenv not loaded")
	}

	fOnce := flag.Bool("once", false, "classify a single backlog batch and exit")
	flag.Parse()

	root := config.New()
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.Config{
		AppName: "chatter-classify",
		PG:      store.PGFromConfig(root),
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	metrics.Serve(ctx, root.Prefix("CORE_").MayString("METRICS_ADDR", ""))

	em := enrichmod.New(modkit.Deps{Log: *l, Cfg: root, PG: st.PG})
	enricher := module.MustPortsOf[enrichmod.Ports](em).Enricher

	if *fOnce {
		n, err := enricher.SweepOnce(ctx)
		if err != nil {
			l.Fatal().Err(err).Msg("classification batch failed")
		}
		l.Info().Int("classified", n).Msg("batch done")
		return
	}
	if err := enricher.Sweep(ctx); err != nil {
		l.Fatal().Err(err).Msg("classification sweep stopped")
	}
}
