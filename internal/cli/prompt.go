package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// confirm asks a y/N question on the terminal. Anything but yes declines,
// including an aborted prompt (Ctrl-C / EOF). Destructive commands call this
// unless --force was given; the core never prompts.
func confirm(prompt string) bool {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)

	answer, err := line.Prompt(prompt + " [y/N]: ")
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return false
		}

		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))

	return answer == "y" || answer == "yes"
}
