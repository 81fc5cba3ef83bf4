package agents

import (
	"os"
	"strings"
)

// SuppressTTYQueries reports whether the current invocation must avoid
// touching the terminal: robot output modes, exports, help/version, or an
// agent/test environment. Used to keep interactive prompts out of piped and
// automated runs.
func SuppressTTYQueries(args []string) bool {
	return shouldSuppressTTYQueries(args,
		os.Getenv("OV_ROBOT") != "",
		strings.HasSuffix(os.Args[0], ".test"))
}

func shouldSuppressTTYQueries(args []string, envRobot, envTest bool) bool {
	if envRobot || envTest {
		return true
	}
	for _, arg := range args[1:] {
		switch {
		case strings.HasPrefix(arg, "--robot-"),
			strings.HasPrefix(arg, "--export-"),
			strings.HasPrefix(arg, "--sync-db"),
			arg == "--help",
			arg == "--version":
			return true
		}
	}
	return false
}
