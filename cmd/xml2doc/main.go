package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"

	xml2doc "github.com/alnah/go-xml2doc"
	"github.com/alnah/go-xml2doc/internal/config"
	"github.com/alnah/go-xml2doc/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(run(os.Args[1:], DefaultEnv()))
}

// run dispatches to the requested command and returns an exit code.
func run(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	switch args[0] {
	case "convert":
		return runConvertCmd(ctx, args[1:], env)
	case "analyze":
		return runAnalyzeCmd(args[1:], env)
	case "formats":
		return runFormatsCmd(env)
	case "doctor":
		return runDoctorCmd(args[1:], env)
	case "completion":
		if err := runCompletion(args[1:], env); err != nil {
			fmt.Fprintln(env.Stderr, err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	case "version":
		fmt.Fprintf(env.Stdout, "xml2doc %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		runHelp(args[1:], env)
		return ExitSuccess
	default:
		// A path or flag means convert; anything else is an unknown command
		if strings.HasPrefix(args[0], "-") || looksLikePath(args[0]) {
			return runConvertCmd(ctx, args, env)
		}
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// looksLikePath reports whether the argument is plausibly a file or
// directory rather than a mistyped command name.
func looksLikePath(arg string) bool {
	if strings.ContainsAny(arg, "/\\.") {
		return true
	}
	_, err := os.Stat(arg)
	return err == nil
}

// runConvertCmd parses convert flags, runs the conversion, and maps the
// outcome to an exit code with actionable hints.
func runConvertCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "%v%s\n", err, hintsFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// hintsFor returns actionable hints for common failure scenarios,
// formatted for appending to the error message.
func hintsFor(err error) string {
	switch {
	case errors.Is(err, xml2doc.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, xml2doc.ErrXMLParse):
		return hints.ForXMLParse()
	case errors.Is(err, xml2doc.ErrStyleNotFound):
		return hints.ForStyleNotFound([]string{"default", "compact"})
	case errors.Is(err, os.ErrPermission):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}
