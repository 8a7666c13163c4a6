package shell

import (
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/patience/board"
	"github.com/domino14/patience/cards"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-threads")
	Args    []string // Possible argument values (for non-option arguments)
}

var commandMetadata = map[string]CommandMetadata{
	"deal": {
		Options: []string{"-ranks", "-redeals", "-draw"},
	},
	"solve": {
		Options: []string{"-threads", "-tt", "-skip", "-timeout", "-log"},
	},
	"help": {
		Args: []string{"deal", "moves", "play", "solve", "save", "load"},
	},
}

// Common command names for command completion
var commandNames = []string{
	"help", "deal", "new", "show", "moves", "score", "mov", "draw", "play",
	"undo", "solve", "solution", "id", "save", "load", "exit",
}

var boolValues = []string{"true", "false"}

var rankSets = []string{cards.RanksReference, cards.RanksStandard}

// Do implements the readline.AutoComplete interface
// It provides context-aware autocomplete based on what's been typed
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}

	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]

		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		if strings.HasPrefix(lastCompleteField, "-") {
			switch strings.TrimPrefix(lastCompleteField, "-") {
			case "tt", "skip":
				completions = boolValues
			case "ranks":
				completions = rankSets
			}
		}

		if completions == nil {
			switch cmdName {
			case "play", "p":
				// numbers of the last generated moves
				for i := range c.sc.curGenMoves {
					completions = append(completions, strconv.Itoa(i+1))
				}
			case "score", "mov", "mv":
				for i := 0; i < board.NumColumns; i++ {
					completions = append(completions, strconv.Itoa(i))
				}
			}
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			suffix := completion[len(prefix):]
			matches = append(matches, []rune(suffix))
		}
	}

	return matches, len(prefix)
}
