package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sidquark/minikv/internal/config"
	"github.com/sidquark/minikv/internal/database"
	"github.com/spf13/cobra"
)

func DefineGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:          "get <key>",
		Short:        "Print the value stored under a key",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := a.db.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func DefinePutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "put <key> [value...]",
		Short: "Store a value under a key and save the data file",
		Long: `Store a value under a key. Remaining arguments are joined with single
spaces to form the value; without them the value is empty.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadForUpdate(); err != nil {
				return err
			}
			if err := a.db.Put(args[0], strings.Join(args[1:], " ")); err != nil {
				return err
			}
			return a.db.Save("")
		},
	}
}

func DefineDelCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:          "del <key>",
		Aliases:      []string{"delete"},
		Short:        "Remove a key and save the data file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadForUpdate(); err != nil {
				return err
			}
			if err := a.db.Delete(args[0]); err != nil {
				return err
			}
			return a.db.Save("")
		},
	}
}

func DefineListCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List all entries",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			asc, _ := cmd.Flags().GetBool("asc")
			desc, _ := cmd.Flags().GetBool("desc")

			out := cmd.OutOrStdout()
			switch {
			case asc:
				return a.db.ListSorted(out, database.Ascending)
			case desc:
				return a.db.ListSorted(out, database.Descending)
			}
			return a.db.List(out)
		},
	}

	cmd.Flags().Bool("asc", false, "sort entries by key in ascending order")
	cmd.Flags().Bool("desc", false, "sort entries by key in descending order")
	cmd.MarkFlagsMutuallyExclusive("asc", "desc")

	return cmd
}

func DefineCountCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:          "count",
		Short:        "Print the number of entries",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.db.Count())
			return nil
		},
	}
}

var errNoDataFile = errors.New("no data file: pass --file or set " + config.EnvDataFile)

// loadForUpdate makes sure the store holds the data file's current contents
// before a mutating command saves it back. Without autoload the file has not
// been read yet.
func (a *app) loadForUpdate() error {
	if a.cfg.DataFile == "" {
		return errNoDataFile
	}
	if a.cfg.AutoLoad {
		return nil
	}

	err := a.db.Load("")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
