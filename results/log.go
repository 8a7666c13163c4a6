package results

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogSink writes each result as a log line.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger *zerolog.Logger) *LogSink {
	if logger == nil {
		logger = &log.Logger
	}
	return &LogSink{logger: *logger}
}

func (s *LogSink) Record(ctx context.Context, r *Result) error {
	s.logger.Info().
		Str("deal", r.DealID).
		Uint64("deal-hash", r.DealHash).
		Bool("solvable", r.Solvable).
		Bool("timed-out", r.TimedOut).
		Int("score", r.Score).
		Dur("elapsed", r.Elapsed).
		Uint64("nodes", r.Nodes).
		Int("solution-length", len(r.Solution)).
		Msg("game-result")
	return nil
}

func (s *LogSink) Close() error {
	return nil
}
