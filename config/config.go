package config

import (
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/domino14/patience/board"
	"github.com/domino14/patience/cards"
)

const (
	ConfigDebug              = "debug"
	ConfigConfigFile         = "config-file"
	ConfigSeed               = "seed"
	ConfigDeckRanks          = "deck-ranks"
	ConfigMaxRedeals         = "max-redeals"
	ConfigDrawCount          = "draw-count"
	ConfigThreads            = "threads"
	ConfigSkipDrawOptim      = "skip-draw-optim"
	ConfigTranspositionOptim = "transposition-optim"
	ConfigTTableMemFraction  = "ttable-mem-fraction"
	ConfigSolveTimeout       = "solve-timeout"
	ConfigResultSinks        = "result-sinks"
	ConfigSQLitePath         = "sqlite-path"
	ConfigNatsURL            = "nats-url"
	ConfigNatsSubject        = "nats-subject"
	ConfigDynamoDBTable      = "dynamodb-table"
	ConfigAWSRegion          = "aws-region"
	ConfigResultsYAMLPath    = "results-yaml-path"
	ConfigGames              = "games"
	ConfigWorkers            = "workers"
	ConfigSeedsFile          = "seeds-file"
	ConfigCPUProfile         = "cpu-profile"
	ConfigMemProfile         = "mem-profile"
)

type Config struct {
	viper.Viper
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigSeed, 0)
	c.SetDefault(ConfigDeckRanks, cards.RanksReference)
	c.SetDefault(ConfigMaxRedeals, board.DefaultRules.MaxRedeals)
	c.SetDefault(ConfigDrawCount, board.DefaultRules.DrawCount)
	c.SetDefault(ConfigThreads, 1)
	c.SetDefault(ConfigSkipDrawOptim, true)
	c.SetDefault(ConfigTranspositionOptim, false)
	c.SetDefault(ConfigTTableMemFraction, 0.05)
	c.SetDefault(ConfigSolveTimeout, "0s")
	c.SetDefault(ConfigResultSinks, []string{"log"})
	c.SetDefault(ConfigSQLitePath, "./patience.db")
	c.SetDefault(ConfigNatsURL, "")
	c.SetDefault(ConfigNatsSubject, "patience.results")
	c.SetDefault(ConfigDynamoDBTable, "games")
	c.SetDefault(ConfigAWSRegion, "us-west-2")
	c.SetDefault(ConfigResultsYAMLPath, "./results.yaml")
	c.SetDefault(ConfigGames, 100)
	c.SetDefault(ConfigWorkers, runtime.NumCPU())
}

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("patience", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigConfigFile, "", "an optional yaml file with any of these settings")
	fs.Uint64(ConfigSeed, 0, "seed for the shuffle; 0 picks one at random")
	fs.String(ConfigDeckRanks, cards.RanksReference, "which ranks make up each suit: reference or standard")
	fs.Int(ConfigMaxRedeals, board.DefaultRules.MaxRedeals, "how many times the stock may be rebuilt from the waste")
	fs.Int(ConfigDrawCount, board.DefaultRules.DrawCount, "cards turned over per draw")
	fs.Int(ConfigThreads, 1, "solver threads")
	fs.Bool(ConfigSkipDrawOptim, true, "after a useless draw, only try drawing again")
	fs.Bool(ConfigTranspositionOptim, false, "remember positions that were already lost")
	fs.Float64(ConfigTTableMemFraction, 0.05, "fraction of system memory for the transposition table")
	fs.Duration(ConfigSolveTimeout, 0, "give up on a deal after this long; 0 never gives up")
	fs.StringSlice(ConfigResultSinks, []string{"log"}, "where results go: log, sqlite, nats, dynamodb, yaml")
	fs.String(ConfigSQLitePath, "./patience.db", "sqlite database for results")
	fs.String(ConfigNatsURL, "", "NATS server for results")
	fs.String(ConfigNatsSubject, "patience.results", "NATS subject for results")
	fs.String(ConfigDynamoDBTable, "games", "DynamoDB table for results")
	fs.String(ConfigAWSRegion, "us-west-2", "AWS region for DynamoDB")
	fs.String(ConfigResultsYAMLPath, "./results.yaml", "yaml file results are appended to")
	fs.Int(ConfigGames, 100, "how many deals to play in autoplay")
	fs.Int(ConfigWorkers, runtime.NumCPU(), "how many deals to solve at once in autoplay")
	fs.String(ConfigSeedsFile, "", "autoplay reads its seeds from this file if it exists, else writes them to it")
	fs.String(ConfigCPUProfile, "", "write a CPU profile here")
	fs.String(ConfigMemProfile, "", "write a heap profile here on exit")
	return fs
}

// Load reads settings from, in order of precedence, command-line args,
// PATIENCE_ environment variables, the config file and the defaults.
func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()
	c.setDefaults()
	c.SetEnvPrefix("patience")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	fs := flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	if cf := c.GetString(ConfigConfigFile); cf != "" {
		c.SetConfigFile(cf)
		if err := c.ReadInConfig(); err != nil {
			return err
		}
		log.Debug().Str("file", cf).Msg("read-config-file")
	}
	return c.check()
}

func (c *Config) check() error {
	if _, err := cards.RanksByName(c.GetString(ConfigDeckRanks)); err != nil {
		return err
	}
	return c.Rules().Check()
}

// Rules are the draw rules these settings describe.
func (c *Config) Rules() board.Rules {
	return board.Rules{
		MaxRedeals: c.GetInt(ConfigMaxRedeals),
		DrawCount:  c.GetInt(ConfigDrawCount),
	}
}

// Ranks are the ranks each suit of the deck is built from.
func (c *Config) Ranks() []uint8 {
	ranks, err := cards.RanksByName(c.GetString(ConfigDeckRanks))
	if err != nil {
		// check rejects unknown names on Load.
		return cards.ReferenceRanks
	}
	return ranks
}

func DefaultConfig() *Config {
	c := &Config{Viper: *viper.New()}
	c.setDefaults()
	return c
}
