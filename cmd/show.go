package cmd

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/linetrace-go/internal/changeset"
	"github.com/masmgr/linetrace-go/internal/output"
)

// ShowCmd creates the show command, which prints one revision's parsed
// change-set in full.
func ShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Aliases:   []string{"s"},
		Usage:     "Print one revision's change-set",
		ArgsUsage: "<revision>",
		Flags:     commonFlags(),
		Action:    showAction,
	}
}

func showAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.ShowSubcommandHelp(c)
	}

	store, _, err := openStore("")
	if err != nil {
		return err
	}

	id, err := store.ResolveRevision(c.Context, c.Args().Get(0))
	if err != nil {
		return err
	}

	raw, err := store.ShowPatch(c.Context, id)
	if err != nil {
		return err
	}

	rev, err := changeset.Parse(id, raw)
	if err != nil {
		return err
	}

	output.WriteRevision(os.Stdout, rev, nil, 0)
	return nil
}
