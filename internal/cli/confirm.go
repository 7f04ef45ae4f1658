package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/hobbyparts/hpt/internal/ui"
)

// Swapped in tests.
var confirmInput io.Reader = os.Stdin

var confirmInteractive = func() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd())
}

// promptForConfirm asks a y/N question and reports whether the user agreed.
// Without a terminal on both ends, or in JSON mode, the answer is no.
func promptForConfirm(question string) bool {
	if isJSONOutput() || !confirmInteractive() {
		return false
	}
	if question == "" {
		question = "Continue?"
	}
	fmt.Printf("%s %s ", question, ui.Hint("[y/N]"))

	line, _ := bufio.NewReader(confirmInput).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
