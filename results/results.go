// Package results records the outcome of solving a deal. A Sink is anything
// a Result can be written to: the log, a sqlite file, a NATS subject, a
// DynamoDB table or a yaml file.
package results

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/domino14/patience/board"
)

const timeLayout = time.RFC3339Nano

type Result struct {
	DealID   string        `json:"deal_id" yaml:"deal_id"`
	DealHash uint64        `json:"deal_hash" yaml:"deal_hash"`
	Seed     uint64        `json:"seed,omitempty" yaml:"seed,omitempty"`
	Solvable bool          `json:"solvable" yaml:"solvable"`
	TimedOut bool          `json:"timed_out,omitempty" yaml:"timed_out,omitempty"`
	Score    int           `json:"score" yaml:"score"`
	Elapsed  time.Duration `json:"elapsed" yaml:"elapsed"`
	Nodes    uint64        `json:"nodes" yaml:"nodes"`
	Solution []string      `json:"solution,omitempty" yaml:"solution,omitempty,flow"`
	Finished time.Time     `json:"finished" yaml:"finished"`
}

// SetSolution stores the winning line as move strings.
func (r *Result) SetSolution(moves []board.Move) {
	r.Solution = lo.Map(moves, func(m board.Move, _ int) string {
		return m.String()
	})
}

type Sink interface {
	Record(ctx context.Context, r *Result) error
	Close() error
}
