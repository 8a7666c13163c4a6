package automatic

import (
	"fmt"
	"strings"

	"github.com/aybabtme/uniplot/histogram"

	"github.com/domino14/patience/results"
	"github.com/domino14/patience/stats"
)

const (
	confidence    = 95
	histogramBins = 13
	histogramBars = 40
)

// Summary is a running account of a batch of solved deals.
type Summary struct {
	Games    int
	Solved   int
	TimedOut int
	Score    stats.Statistic
	Elapsed  stats.Statistic
	Nodes    stats.Statistic

	scores []float64
}

func (s *Summary) Add(r *results.Result) {
	s.Games++
	if r.Solvable {
		s.Solved++
	}
	if r.TimedOut {
		s.TimedOut++
	}
	s.Score.Push(float64(r.Score))
	s.Elapsed.Push(r.Elapsed.Seconds())
	s.Nodes.Push(float64(r.Nodes))
	s.scores = append(s.scores, float64(r.Score))
}

// SolveRate is the fraction of deals solved, with its 95% confidence
// interval.
func (s *Summary) SolveRate() (rate, lo, hi float64) {
	if s.Games == 0 {
		return 0, 0, 1
	}
	lo, hi = stats.ProportionCI(s.Solved, s.Games, confidence)
	return float64(s.Solved) / float64(s.Games), lo, hi
}

func (s *Summary) String() string {
	var sb strings.Builder
	rate, lo, hi := s.SolveRate()
	fmt.Fprintf(&sb, "Games played: %d\n", s.Games)
	fmt.Fprintf(&sb, "Solvable: %d (%.3f%%, %d%% CI %.3f%% - %.3f%%)\n",
		s.Solved, 100*rate, confidence, 100*lo, 100*hi)
	fmt.Fprintf(&sb, "Timed out: %d\n", s.TimedOut)
	fmt.Fprintf(&sb, "Best score: mean %.3f  stdev %.3f  min %.0f  max %.0f\n",
		s.Score.Mean(), s.Score.Stdev(), s.Score.Min(), s.Score.Max())
	fmt.Fprintf(&sb, "Seconds per deal: mean %.3f  stdev %.3f\n",
		s.Elapsed.Mean(), s.Elapsed.Stdev())
	fmt.Fprintf(&sb, "Nodes per deal: mean %.0f  max %.0f\n", s.Nodes.Mean(), s.Nodes.Max())
	if s.Score.Min() < s.Score.Max() {
		sb.WriteString("\nBest score histogram:\n")
		h := histogram.Hist(histogramBins, s.scores)
		if err := histogram.Fprint(&sb, h, histogram.Linear(histogramBars)); err != nil {
			fmt.Fprintf(&sb, "(no histogram: %v)\n", err)
		}
	}
	return sb.String()
}

// AnalyzeResultsFile summarizes a yaml file of results.
func AnalyzeResultsFile(path string) (*Summary, error) {
	rs, err := results.ReadYAML(path)
	if err != nil {
		return nil, err
	}
	s := &Summary{}
	for _, r := range rs {
		s.Add(r)
	}
	return s, nil
}
