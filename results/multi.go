package results

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/domino14/patience/config"
)

const defaultAttempts = 3

// MultiSink writes every result to each of its sinks, retrying failed
// writes with backoff.
type MultiSink struct {
	sinks    []Sink
	attempts uint
	delay    time.Duration
}

func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks, attempts: defaultAttempts, delay: 100 * time.Millisecond}
}

// SetRetries changes how often and how soon a failed write is tried again.
func (m *MultiSink) SetRetries(attempts uint, delay time.Duration) {
	m.attempts = attempts
	m.delay = delay
}

func (m *MultiSink) Record(ctx context.Context, r *Result) error {
	var errs []error
	for i, s := range m.sinks {
		err := retry.Do(
			func() error {
				return s.Record(ctx, r)
			},
			retry.Context(ctx),
			retry.Attempts(m.attempts),
			retry.Delay(m.delay),
			retry.LastErrorOnly(true),
			retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
				log.Err(err).Uint("n", n).Int("sink", i).
					Msg("result-not-recorded-try-again")
				return retry.BackOffDelay(n, err, config)
			}),
		)
		if err != nil {
			errs = append(errs, fmt.Errorf("sink %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FromConfig opens every sink named in the result-sinks setting.
func FromConfig(ctx context.Context, cfg *config.Config) (*MultiSink, error) {
	var sinks []Sink
	for _, name := range cfg.GetStringSlice(config.ConfigResultSinks) {
		var s Sink
		var err error
		switch name {
		case "log":
			s = NewLogSink(nil)
		case "sqlite":
			s, err = NewSQLiteSink(ctx, cfg.GetString(config.ConfigSQLitePath))
		case "nats":
			s, err = NewNATSSink(cfg.GetString(config.ConfigNatsURL), cfg.GetString(config.ConfigNatsSubject))
		case "dynamodb":
			s, err = NewDynamoDBSink(ctx, cfg.GetString(config.ConfigAWSRegion), cfg.GetString(config.ConfigDynamoDBTable))
		case "yaml":
			s, err = NewYAMLSink(cfg.GetString(config.ConfigResultsYAMLPath))
		default:
			err = fmt.Errorf("unknown result sink %q", name)
		}
		if err != nil {
			for _, opened := range sinks {
				opened.Close()
			}
			return nil, err
		}
		sinks = append(sinks, s)
	}
	log.Debug().Strs("sinks", cfg.GetStringSlice(config.ConfigResultSinks)).Msg("result-sinks")
	return NewMultiSink(sinks...), nil
}
