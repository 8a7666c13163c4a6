package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/patience/board"
	"github.com/domino14/patience/cards"
	"github.com/domino14/patience/config"
	"github.com/domino14/patience/solver"
	"github.com/domino14/patience/stock"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func (c CmdOptions) Duration(key string, defaultD time.Duration) (time.Duration, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultD, nil
	}
	return time.ParseDuration(v[0])
}

func msg(message string) *Response {
	return &Response{message: message}
}

// position is the on-disk form of a board, as written by save. A file
// without rules is played under the configured ones.
type position struct {
	Rules  *board.Rules `yaml:"rules,omitempty"`
	Layout board.Layout `yaml:"layout"`
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(usage()), nil
	}
	return msg(usageTopic(cmd.args[0])), nil
}

func (sc *ShellController) deal(cmd *shellcmd) (*Response, error) {
	ranks := sc.config.Ranks()
	if name := cmd.options.String("ranks"); name != "" {
		var err error
		ranks, err = cards.RanksByName(name)
		if err != nil {
			return nil, err
		}
	}
	rules := sc.config.Rules()
	var err error
	if rules.MaxRedeals, err = cmd.options.IntDefault("redeals", rules.MaxRedeals); err != nil {
		return nil, err
	}
	if rules.DrawCount, err = cmd.options.IntDefault("draw", rules.DrawCount); err != nil {
		return nil, err
	}
	if err := rules.Check(); err != nil {
		return nil, err
	}

	var seed uint64
	if len(cmd.args) > 0 {
		seed, err = strconv.ParseUint(cmd.args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad seed: %w", err)
		}
	} else {
		seed = sc.config.GetUint64(config.ConfigSeed)
	}
	var st *stock.Stock
	if seed == 0 {
		st = stock.New(ranks)
	} else {
		st = stock.NewSeeded(ranks, seed)
	}
	sc.startGame(board.Deal(st, rules))
	sc.seed = seed
	log.Debug().Str("deal", st.ID()).Uint64("seed", seed).Msg("new-deal")
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) startGame(b *board.Board) {
	sc.game = b
	sc.seed = 0
	sc.history = nil
	sc.curGenMoves = nil
	sc.lastSolution = nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	sc.curGenMoves = solver.GenMoves(sc.game, false)
	if len(sc.curGenMoves) == 0 {
		return msg("No moves available."), nil
	}
	var sb strings.Builder
	for i, m := range sc.curGenMoves {
		fmt.Fprintf(&sb, "%3d: %v\n", i+1, m)
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

// applyMove plays m on the current game, remembering the old board for undo.
func (sc *ShellController) applyMove(m board.Move) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	nb, err := sc.game.Apply(m)
	if err != nil {
		return nil, err
	}
	sc.history = append(sc.history, sc.game)
	sc.game = nb
	sc.curGenMoves = nil
	out := sc.game.ToDisplayText()
	if sc.game.Win() {
		out += "\nAll cards scored. You win!"
	}
	return msg(out), nil
}

func (sc *ShellController) intArgs(cmd *shellcmd, n int) ([]int, error) {
	if len(cmd.args) != n {
		return nil, fmt.Errorf("%s needs %d column argument(s)", cmd.cmd, n)
	}
	ints := make([]int, n)
	for i, a := range cmd.args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("bad column %q: %w", a, err)
		}
		ints[i] = v
	}
	return ints, nil
}

func (sc *ShellController) score(cmd *shellcmd) (*Response, error) {
	cols, err := sc.intArgs(cmd, 1)
	if err != nil {
		return nil, err
	}
	return sc.applyMove(board.ScoreMove(cols[0]))
}

func (sc *ShellController) mov(cmd *shellcmd) (*Response, error) {
	cols, err := sc.intArgs(cmd, 2)
	if err != nil {
		return nil, err
	}
	return sc.applyMove(board.MovMove(cols[0], cols[1]))
}

func (sc *ShellController) draw(cmd *shellcmd) (*Response, error) {
	return sc.applyMove(board.DrawMove())
}

// play plays a move by its number in the last `moves` listing.
func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("play needs the number of a generated move")
	}
	n, err := strconv.Atoi(strings.TrimPrefix(cmd.args[0], "#"))
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(sc.curGenMoves) {
		return nil, errors.New("move number out of range; run `moves` first")
	}
	return sc.applyMove(sc.curGenMoves[n-1])
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if len(sc.history) == 0 {
		return nil, errors.New("nothing to undo")
	}
	last := len(sc.history) - 1
	sc.game = sc.history[last]
	sc.history = sc.history[:last]
	sc.curGenMoves = nil
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	s, err := sc.newSolver()
	if err != nil {
		return nil, err
	}
	if threads, err := cmd.options.IntDefault("threads", 0); err != nil {
		return nil, err
	} else if threads > 0 {
		s.SetThreads(threads)
	}
	if tt := cmd.options.String("tt"); tt != "" {
		s.SetTranspositionOptim(cmd.options.Bool("tt"))
	}
	if skip := cmd.options.String("skip"); skip != "" {
		s.SetDrawSkipOptim(cmd.options.Bool("skip"))
	}
	timeout, err := cmd.options.Duration("timeout", sc.config.GetDuration(config.ConfigSolveTimeout))
	if err != nil {
		return nil, err
	}
	if path := cmd.options.String("log"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		s.SetLogStream(f)
	}

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	tstart := time.Now()
	solvable, err := s.Solve(ctx)
	elapsed := time.Since(tstart)
	timedOut := false
	if err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		timedOut = true
	}

	var sb strings.Builder
	switch {
	case solvable:
		sc.lastSolution = s.Solution()
		fmt.Fprintf(&sb, "Solvable in %d moves.", len(sc.lastSolution))
	case timedOut:
		sc.lastSolution = nil
		sb.WriteString("Timed out before finding a win.")
	default:
		sc.lastSolution = nil
		sb.WriteString("Not solvable.")
	}
	fmt.Fprintf(&sb, "\nBest score: %d  Nodes: %d  Time: %v", s.BestScore(), s.Nodes(), elapsed)
	if solvable {
		sb.WriteString("\nUse `solution` to see the moves.")
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) solution(cmd *shellcmd) (*Response, error) {
	if len(sc.lastSolution) == 0 {
		return nil, errors.New("no solution; run `solve` on a solvable game first")
	}
	line := solver.Line{Moves: sc.lastSolution}
	return msg(line.NLBString()), nil
}

func (sc *ShellController) id(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	out := "Deal: " + sc.game.ID()
	if sc.seed != 0 {
		out += fmt.Sprintf("\nSeed: %d", sc.seed)
	}
	return msg(out), nil
}

func (sc *ShellController) save(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("save needs a filename")
	}
	rules := sc.game.Rules()
	bts, err := yaml.Marshal(&position{Rules: &rules, Layout: sc.game.Layout()})
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(cmd.args[0], bts, 0o644); err != nil {
		return nil, err
	}
	return msg("Saved position to " + cmd.args[0]), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("load needs a filename")
	}
	bts, err := os.ReadFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	var pos position
	if err := yaml.Unmarshal(bts, &pos); err != nil {
		return nil, fmt.Errorf("could not read position: %w", err)
	}
	rules := sc.config.Rules()
	if pos.Rules != nil {
		rules = *pos.Rules
	}
	b, err := board.FromLayout(rules, pos.Layout)
	if err != nil {
		return nil, err
	}
	sc.startGame(b)
	return msg(sc.game.ToDisplayText()), nil
}
