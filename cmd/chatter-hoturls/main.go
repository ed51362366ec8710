package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatter/internal/modkit"
	"chatter/internal/modkit/module"
	"chatter/internal/platform/config"
	"chatter/internal/platform/logger"
	"chatter/internal/platform/metrics"
	"chatter/internal/platform/net/http/bind"
	"chatter/internal/platform/sink"
	"chatter/internal/platform/store"

	hotdom "chatter/internal/services/hotlist/domain"
	hotmod "chatter/internal/services/hotlist/module"

	"github.com/robfig/cron/v3"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		logger.Get().Warn().Err(err).Msg("dotenv not loaded")
	}

	root := config.New()
	l := logger.Get()

	// defaults come from the same CORE_HOTLIST_* knobs as the service
	defs := hotmod.FromConfig(root)

	var (
		fAge      = flag.Int("a", defs.DefaultAge, "maximum link age in hours")
		fDaysAgo  = flag.Int("da", 0, "shift the window end back by days")
		fHoursAgo = flag.Int("ha", 0, "shift the window end back by hours")
		fResults  = flag.Int("mr", defs.DefaultResults, "maximum number of results")
		fCluster  = flag.Bool("c", false, "group articles into topic clusters")
		fFormat   = flag.String("format", hotdom.FormatJSON, "output format: json | table")
		fOut      = flag.String("out", "-", "destination: - for stdout, a file path, or s3://bucket/key")
		fSchedule = flag.String("schedule", "", "cron expression such as '@every 15m'; empty runs once")
	)
	flag.Parse()

	req := hotdom.HotListRequest{
		DaysAgo:    *fDaysAgo,
		HoursAgo:   *fHoursAgo,
		MaxAge:     *fAge,
		MaxResults: *fResults,
		Cluster:    *fCluster,
		Format:     *fFormat,
	}
	if err := bind.Validate(req); err != nil {
		l.Fatal().Err(err).Msg("invalid flags")
	}
	if req.Format == hotdom.FormatHTML {
		l.Fatal().Msg("html is served by chatter-api; use json or table")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	archive := root.Prefix("CORE_").MayBool("HOTLIST_ARCHIVE", false)
	st, err := store.Open(ctx, store.Config{
		AppName: "chatter-hoturls",
		PG:      store.PGFromConfig(root),
		CH:      store.CHFromConfig(root, archive, "hoturls"),
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	hm := hotmod.New(modkit.Deps{Log: *l, Cfg: root, PG: st.PG, CH: st.CH})
	gen := module.MustPortsOf[hotmod.Ports](hm).Generator
	req = req.Clamp(hm.CLILimits())

	out, err := sink.Open(ctx, *fOut, root)
	if err != nil {
		l.Fatal().Err(err).Msg("open sink")
	}

	run := func() error {
		hl, err := gen.Generate(ctx, req)
		if err != nil {
			return err
		}
		body, ctype, err := render(hl, req.Format)
		if err != nil {
			return err
		}
		if err := out.Put(ctx, body, ctype); err != nil {
			return err
		}
		l.Info().Str("mode", hl.Mode()).Str("sink", out.Describe()).Msg("hot list written")
		return nil
	}

	if *fSchedule == "" {
		if err := run(); err != nil {
			l.Fatal().Err(err).Msg("hot list failed")
		}
		return
	}

	metrics.Serve(ctx, root.Prefix("CORE_").MayString("METRICS_ADDR", ""))

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	c := cron.New(cron.WithParser(parser), cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(*fSchedule, func() {
		if err := run(); err != nil {
			l.Error().Err(err).Msg("scheduled hot list failed")
		}
	}); err != nil {
		l.Fatal().Err(err).Str("schedule", *fSchedule).Msg("bad -schedule")
	}

	l.Info().Str("schedule", *fSchedule).Msg("hoturls scheduled")
	c.Start()
	<-ctx.Done()

	sctx := c.Stop()
	select {
	case <-sctx.Done():
	case <-time.After(30 * time.Second):
		l.Warn().Msg("scheduled run still in flight at shutdown")
	}
}
