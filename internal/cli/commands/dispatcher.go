package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"PayTrack/internal/cli/api"
	"PayTrack/internal/config"
)

// Dispatch is the single entry point to execute CLI commands.
// It prints help and usage messages and returns a process exit code.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	// If user passed global --help among the global flags, show global usage
	if globalHelpRequested(os.Args[1:], args) {
		fmt.Fprint(Out, FormatGlobalUsage())
		return 0
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	name := strings.ToLower(args[0])
	if name == "help" { // ptcli help [command]
		if len(args) == 1 {
			fmt.Fprint(Out, FormatGlobalUsage())
			return 0
		}
		if c, ok := Get(args[1]); ok {
			fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
			return 0
		}
		fmt.Fprintf(Out, "Unknown command: %s\n\n", args[1])
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	err := c.Run(ctx, cfg, args[1:])
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return 2
	default:
		logger.Debugw("command failed", "command", name, "error", err)
		fmt.Fprintf(Out, "%s error: %v\n", name, err)
		if api.IsUnauthorized(err) {
			fmt.Fprintln(Out, "Session is missing or expired: run `ptcli login <email> <password>`")
		}
		return 1
	}
}

// globalHelpRequested ищет --help/-h только среди глобальных флагов, то есть до команды.
// Аргументы команды (cmdArgs — хвост osArgs) не просматриваются.
func globalHelpRequested(osArgs, cmdArgs []string) bool {
	n := len(osArgs) - len(cmdArgs)
	if n < 0 {
		n = 0
	}
	for _, a := range osArgs[:n] {
		if a == "--" {
			return false
		}
		if a == "--help" || a == "-h" {
			return true
		}
	}
	return false
}
