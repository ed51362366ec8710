package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"chatter/internal/modkit"
	"chatter/internal/modkit/module"
	"chatter/internal/platform/config"
	"chatter/internal/platform/logger"
	"chatter/internal/platform/metrics"
	"chatter/internal/platform/store"

	enrichmod "chatter/internal/services/enrich/module"
	linksmod "chatter/internal/services/links/module"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		logger.Get().Warn().Err(err).Msg("dotenv not loaded")
	}

	var (
		fSweep = flag.Bool("sweep", false, "also run the backlog classification sweep")
		fOnce  = flag.Bool("once", false, "run a single canonicalization cycle and exit")
	)
	flag.Parse()

	root := config.New()
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.Config{
		AppName: "chatter-urlmaint",
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

	deps := modkit.Deps{
		Log: *l,
		Cfg: root,
		PG:  st.PG,
	}

	em := enrichmod.New(deps)
	enricher := module.MustPortsOf[enrichmod.Ports](em).Enricher
	lm := linksmod.New(deps, enricher)
	canon := module.MustPortsOf[linksmod.Ports](lm).Canonicalizer

	if *fOnce {
		rep, err := canon.Cycle(ctx)
		if err != nil {
			l.Fatal().Err(err).Msg("canonicalization cycle failed")
		}
		l.Info().Int("fetched", rep.Fetched).Int("failed", rep.Failed).Msg("cycle done")
		return
	}

	var wg sync.WaitGroup
	if *fSweep {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := enricher.Sweep(ctx); err != nil {
				l.Error().Err(err).Msg("classification sweep stopped")
			}
		}()
	}

	l.Info().Bool("sweep", *fSweep).Msg("urlmaint running")
	if err := canon.Run(ctx); err != nil {
		l.Error().Err(err).Msg("canonicalizer stopped")
	}
	stop()
	wg.Wait()
}
