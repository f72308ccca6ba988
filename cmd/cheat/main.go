package main

import (
	"errors"
	"fmt"
	"os"

	"cheat/internal/config"
	"cheat/internal/render"
	"cheat/internal/sheets"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type options struct {
	edit   bool
	list   bool
	dirs   bool
	browse bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "cheat [sheet]",
		Short: "Create and view command-line cheatsheets",
		Long: `cheat looks up short reference sheets stored as flat files in a
priority-ordered list of directories and prints them to the terminal.

Sheets are plain files named after the thing they describe. Directories
listed in CHEATPATH shadow the user directory (~/.cheat or
DEFAULT_CHEAT_DIR), which shadows the system directory.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.edit, "edit", "e", false, "create or edit a sheet with $EDITOR")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "list all available sheets")
	cmd.Flags().BoolVarP(&opts.dirs, "cheat-directories", "d", false, "print the sheet search path")
	cmd.Flags().BoolVarP(&opts.browse, "browse", "b", false, "browse sheets interactively")
	cmd.MarkFlagsMutuallyExclusive("edit", "list", "cheat-directories", "browse")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	idx, err := sheets.NewIndex(cfg)
	if err != nil {
		return err
	}

	switch {
	case opts.list:
		fmt.Fprint(cmd.OutOrStdout(), idx.List())
		return nil
	case opts.dirs:
		for _, dir := range idx.Directories() {
			fmt.Fprintln(cmd.OutOrStdout(), dir)
		}
		return nil
	case opts.browse:
		return browse(idx, cfg)
	case opts.edit:
		if len(args) == 0 {
			return errors.New("the --edit flag requires a sheet name")
		}
		return idx.Edit(args[0])
	}

	if len(args) == 0 || args[0] == "help" || args[0] == "cheat" {
		return cmd.Help()
	}

	name := args[0]
	dir, ok := idx.Lookup(name)
	if !ok {
		return &sheets.NotFoundError{Name: name}
	}
	return render.Display(cmd.OutOrStdout(), render.New(cfg.Colors), dir, name)
}

func main() {
	log.SetOutput(os.Stderr)
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
