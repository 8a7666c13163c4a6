// solve deals one game and searches it for a win.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/patience/automatic"
	"github.com/domino14/patience/board"
	"github.com/domino14/patience/config"
	"github.com/domino14/patience/results"
)

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

	seed := cfg.GetUint64(config.ConfigSeed)
	st := automatic.NewStock(cfg, seed)
	fmt.Println(board.Deal(st, cfg.Rules()).ToDisplayText())

	res, err := automatic.SolveDeal(ctx, cfg, st, seed)
	if err != nil {
		log.Fatal().Err(err).Str("deal", st.ID()).Msg("solve-failed")
	}

	switch {
	case res.Solvable:
		fmt.Printf("Solvable in %d moves:\n", len(res.Solution))
		for i, m := range res.Solution {
			fmt.Printf("%4d. %s\n", i+1, m)
		}
	case res.TimedOut:
		fmt.Println("Timed out before finding a win.")
	default:
		fmt.Println("Not solvable.")
	}
	fmt.Printf("Deal: %s\nBest score: %d\nNodes: %d\nTime: %v\n",
		res.DealID, res.Score, res.Nodes, res.Elapsed)

	sink, err := results.FromConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("could-not-open-result-sinks")
	}
	defer sink.Close()
	if err := sink.Record(ctx, res); err != nil {
		log.Err(err).Msg("could-not-record-result")
	}
}
