package cli

import (
	"github.com/spf13/cobra"

	"github.com/ThomasAtome/technical-assignment-store/internal/store"
)

// EntriesOptions holds flags for the entries command.
type EntriesOptions struct {
	*RootOptions
	Store string
}

// NewEntriesCommand creates the entries command.
func NewEntriesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EntriesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "entries <doc>",
		Short: "Print the declared-and-readable fields of a document",
		Long: `Print a document's top-level fields that carry an explicit
permission declaration and are readable under it. Undeclared fields are
excluded even when the store's default policy would let a read succeed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntries(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Store, "store", "", "store definition name (defaults to the document name)")

	return cmd
}

func runEntries(opts *EntriesOptions, docName string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	sess, err := openDocSession(opts.RootOptions, docName, opts.Store, true)
	if err != nil {
		return err
	}
	defer sess.Close()

	entries := sess.bound.Entries()
	obj := make(store.Object, len(entries))
	for k, v := range entries {
		obj[k] = v
	}

	out, err := valueJSON(obj)
	if err != nil {
		return WrapExitError(ExitCommandError, "encoding entries", err)
	}

	if err := sess.log("entries", "", "ok", out); err != nil {
		return err
	}

	return formatter.Success(out)
}
