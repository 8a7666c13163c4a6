// autoplay solves a batch of deals and prints a summary of how they went.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/patience/automatic"
	"github.com/domino14/patience/config"
	"github.com/domino14/patience/results"
)

func seeds(cfg *config.Config) ([]uint64, error) {
	path := cfg.GetString(config.ConfigSeedsFile)
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return automatic.LoadSeeds(path)
		}
	}
	var s []uint64
	if first := cfg.GetUint64(config.ConfigSeed); first != 0 {
		s = automatic.SequentialSeeds(first, cfg.GetInt(config.ConfigGames))
	} else {
		s = automatic.GenerateSeeds(cfg.GetInt(config.ConfigGames))
	}
	if path != "" {
		if err := automatic.SaveSeeds(s, path); err != nil {
			return nil, err
		}
		log.Info().Str("file", path).Int("seeds", len(s)).Msg("saved-seeds")
	}
	return s, nil
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := seeds(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("could-not-get-seeds")
	}

	sink, err := results.FromConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("could-not-open-result-sinks")
	}
	defer sink.Close()

	summary, err := automatic.NewRunner(cfg, sink).Run(ctx, s)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Err(err).Msg("batch-failed")
	}
	if summary != nil {
		fmt.Println(summary)
	}
}
