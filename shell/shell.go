// Package shell is an interactive prompt for dealing, playing and solving
// patience games.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/patience/board"
	"github.com/domino14/patience/config"
	"github.com/domino14/patience/solver"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("please deal a game first with the `deal` command")
)

type ShellController struct {
	l      *readline.Instance
	config *config.Config

	game *board.Board
	seed uint64
	// history holds every earlier board of the current game, for undo.
	history []*board.Board

	curGenMoves  []board.Move
	lastSolution []board.Move
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// NewShellController makes a controller with no terminal attached. Loop
// needs one; see NewInteractiveShellController.
func NewShellController(cfg *config.Config) *ShellController {
	return &ShellController{config: cfg}
}

func NewInteractiveShellController(cfg *config.Config) (*ShellController, error) {
	sc := NewShellController(cfg)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mpatience>\033[0m ",
		HistoryFile:     "/tmp/patience-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc.l = l
	return sc, nil
}

// extractFields splits a line into a command, its arguments and its
// -option value pairs. Quoting works as in a POSIX shell.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			key := fields[idx][1:]
			options[key] = append(options[key], fields[idx+1])
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) handle(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "help", "h":
		return sc.help(cmd)
	case "deal", "new", "n":
		return sc.deal(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "moves", "gen", "m":
		return sc.moves(cmd)
	case "score", "sc":
		return sc.score(cmd)
	case "mov", "mv":
		return sc.mov(cmd)
	case "draw", "d":
		return sc.draw(cmd)
	case "play", "p":
		return sc.play(cmd)
	case "undo", "u":
		return sc.undo(cmd)
	case "solve":
		return sc.solve(cmd)
	case "solution":
		return sc.solution(cmd)
	case "id":
		return sc.id(cmd)
	case "save":
		return sc.save(cmd)
	case "load":
		return sc.load(cmd)
	default:
		msg := fmt.Sprintf("command %q not found", cmd.cmd)
		log.Info().Msg(msg)
		return nil, errors.New(msg)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "bye" {
			sig <- syscall.SIGINT
			break
		}
		resp, err := sc.handle(line)
		if err != nil {
			sc.showError(err)
		} else if resp != nil {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Game is the current board, or nil before the first deal.
func (sc *ShellController) Game() *board.Board {
	return sc.game
}

func (sc *ShellController) newSolver() (*solver.Solver, error) {
	s := &solver.Solver{}
	if err := s.Init(sc.game); err != nil {
		return nil, err
	}
	s.SetThreads(sc.config.GetInt(config.ConfigThreads))
	s.SetDrawSkipOptim(sc.config.GetBool(config.ConfigSkipDrawOptim))
	s.SetTranspositionOptim(sc.config.GetBool(config.ConfigTranspositionOptim))
	s.SetTTableMemFraction(sc.config.GetFloat64(config.ConfigTTableMemFraction))
	return s, nil
}
