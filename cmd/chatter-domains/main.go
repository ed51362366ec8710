package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"chatter/internal/modkit"
	"chatter/internal/modkit/module"
	"chatter/internal/platform/config"
	"chatter/internal/platform/logger"
	"chatter/internal/platform/store"

	domainsmod "chatter/internal/services/domains/module"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		logger.Get().Warn().Err(err).Msg("dotenv not loaded")
	}

	var (
		fFile  = flag.String("file", "", "CSV of domain_set,domain,subset rows ('-' reads stdin)")
		fReset = flag.Bool("reset", false, "truncate the domain list before importing")
		fList  = flag.Bool("list", false, "print the distinct domains and exit")
	)
	flag.Parse()

	if *fFile == "" && !*fList {
		fmt.Fprintln(os.Stderr, "usage: chatter-domains -file domains.csv [-reset] | -list")
		os.Exit(2)
	}

	root := config.New()
	l := logger.Get()
	ctx := context.Background()

	st, err := store.Open(ctx, store.Config{
		AppName: "chatter-domains",
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

	dm := domainsmod.New(modkit.Deps{Log: *l, Cfg: root, PG: st.PG})
	maint := module.MustPortsOf[domainsmod.Ports](dm).Maintainer

	if *fList {
		domains, err := maint.List(ctx)
		if err != nil {
			l.Fatal().Err(err).Msg("list domains failed")
		}
		for _, d := range domains {
			fmt.Println(d)
		}
		return
	}

	in := os.Stdin
	if *fFile != "-" {
		f, err := os.Open(*fFile)
		if err != nil {
			l.Fatal().Err(err).Str("file", *fFile).Msg("open domain file")
		}
		defer f.Close()
		in = f
	}

	rep, err := maint.Import(ctx, in, *fReset)
	if err != nil {
		l.Fatal().Err(err).Msg("domain import failed")
	}
	l.Info().
		Int("added", rep.Added).
		Int("skipped", rep.Skipped).
		Bool("reset", *fReset).
		Msg("domains imported")
}
