package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/linetrace-go/internal/match"
	"github.com/masmgr/linetrace-go/internal/trace"
)

// TraceCmd creates the trace command.
func TraceCmd() *cli.Command {
	return &cli.Command{
		Name:      "trace",
		Aliases:   []string{"t"},
		Usage:     "Interactively trace a line backward through history",
		ArgsUsage: "[revision] path[:line]",
		Flags:     traceFlags(),
		Action:    traceAction,
	}
}

func traceAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.ShowAppHelp(c)
	}

	rev := "HEAD"
	target := c.Args().Get(0)
	if c.NArg() >= 2 {
		rev = c.Args().Get(0)
		target = c.Args().Get(1)
	}

	path, line, err := parseTarget(target)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	store, path, err := openStore(path)
	if err != nil {
		return err
	}

	session := &trace.Session{
		Store:  store,
		In:     os.Stdin,
		Out:    os.Stdout,
		Params: match.Params{MinPrefixLength: cfg.Match.MinPrefixLength},
		Filter: &match.PathFilter{
			Include: cfg.Filters.Include,
			Exclude: cfg.Filters.Exclude,
		},
		Context:   cfg.Display.ContextLines,
		FullDiffs: c.Bool("full-diffs"),
	}

	start := trace.Cursor{
		Path: path,
		Line: line,
		Rev:  trace.RevisionExpr{Base: rev},
	}

	if err := session.Run(c.Context, start); err != nil {
		return fmt.Errorf("trace %s:%d: %w", path, line, err)
	}
	return nil
}
