package main

import (
	"flag"

	"chatter/internal/platform/config"
	"chatter/internal/platform/logger"
	"chatter/internal/platform/store/migrate"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		logger.Get().Warn().Err(err).Msg("dotenv not loaded")
	}

	fDir := flag.String("dir", "up", "migration direction: up | down")
	flag.Parse()

	l := logger.Get()
	dsn := config.New().Prefix("SERVICE_PGSQL_").MustString("DBURL")

	switch *fDir {
	case "up":
		if err := migrate.Up(dsn); err != nil {
			l.Fatal().Err(err).Msg("migrate up failed")
		}
	case "down":
		if err := migrate.Down(dsn); err != nil {
			l.Fatal().Err(err).Msg("migrate down failed")
		}
		l.Info().Msg("schema rolled back")
	default:
		l.Panic().Str("dir", *fDir).Msg("unknown -dir (expected: up | down)")
	}
}
