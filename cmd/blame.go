package cmd

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/linetrace-go/internal/annotate"
	"github.com/masmgr/linetrace-go/internal/output"
)

// BlameCmd creates the blame command, which prints the parsed per-line
// attribution of one file without entering the interactive trace.
func BlameCmd() *cli.Command {
	return &cli.Command{
		Name:      "blame",
		Aliases:   []string{"b"},
		Usage:     "Print the per-line attribution of a file",
		ArgsUsage: "[revision] path",
		Flags:     commonFlags(),
		Action:    blameAction,
	}
}

func blameAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.ShowSubcommandHelp(c)
	}

	rev := ""
	path := c.Args().Get(0)
	if c.NArg() >= 2 {
		rev = c.Args().Get(0)
		path = c.Args().Get(1)
	}

	store, path, err := openStore(path)
	if err != nil {
		return err
	}

	if rev != "" {
		rev, err = store.ResolveRevision(c.Context, rev)
		if err != nil {
			return err
		}
	}

	raw, err := store.BlameFile(c.Context, path, rev)
	if err != nil {
		return err
	}

	ann, err := annotate.Parse(path, raw)
	if err != nil {
		return err
	}

	output.WriteAnnotation(os.Stdout, ann)
	return nil
}
