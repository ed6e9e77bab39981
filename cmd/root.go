package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/linetrace-go/config"
	"github.com/masmgr/linetrace-go/internal/git"
	"github.com/masmgr/linetrace-go/internal/trace"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "linetrace",
		Usage:   "Trace the provenance of a source line backward through Git history",
		Version: "1.0.0",
		Commands: []*cli.Command{
			TraceCmd(),
			BlameCmd(),
			ShowCmd(),
		},
		Flags:     traceFlags(),
		ArgsUsage: "[revision] path[:line]",
		// Tracing is the default action, matching the single-purpose
		// invocation "linetrace [revision] path:line".
		Action: traceAction,
	}
}

// commonFlags are shared across all commands.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
		},
	}
}

// traceFlags are the flags of the trace command (and of the default action).
func traceFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.BoolFlag{
			Name:    "full-diffs",
			Aliases: []string{"f"},
			Usage:   "Always show full diffs instead of clipping around matches",
		},
		&cli.Float64Flag{
			Name:  "min-prefix",
			Usage: "Minimum shared-prefix ratio for candidate matches (0 < r <= 1)",
		},
		&cli.IntFlag{
			Name:  "context",
			Usage: "Number of lines shown around each highlighted line",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns candidate files must match (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns excluding candidate files (can be specified multiple times)",
		},
	)
}

// loadConfig loads configuration and applies CLI flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if c.IsSet("min-prefix") {
		cfg.Match.MinPrefixLength = c.Float64("min-prefix")
	}
	if c.IsSet("context") {
		cfg.Display.ContextLines = c.Int("context")
	}
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseTarget splits a "path[:line]" argument. A missing line part yields
// line 0, meaning the whole file.
func parseTarget(arg string) (path string, line int, err error) {
	path, lineStr, ok := strings.Cut(arg, ":")
	if !ok {
		return arg, 0, nil
	}
	if path == "" {
		return "", 0, fmt.Errorf("invalid target %q: empty path", arg)
	}
	line, err = strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		return "", 0, fmt.Errorf("invalid target %q: line must be a positive number", arg)
	}
	return path, line, nil
}

// openStore opens the repository containing the working directory and
// re-expresses the operator-supplied path relative to its root.
func openStore(path string) (*git.CLIStore, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", err
	}

	store, err := git.OpenStore(cwd)
	if err != nil {
		return nil, "", err
	}

	if path != "" {
		path, err = git.RelToRoot(store.Root(), cwd, path)
		if err != nil {
			return nil, "", err
		}
	}

	return store, path, nil
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		if errors.Is(err, trace.ErrHistoryExhausted) {
			// Reaching the root of history is an expected end of the
			// trace, not a failure.
			fmt.Println(err)
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
