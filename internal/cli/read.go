package cli

import (
	"github.com/spf13/cobra"

	"github.com/ThomasAtome/technical-assignment-store/internal/store"
)

// ReadOptions holds flags for the read command.
type ReadOptions struct {
	*RootOptions
	Store string
}

// NewReadCommand creates the read command.
func NewReadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "read <doc> <path>",
		Short: "Read a colon-delimited path from a document",
		Long: `Read a colon-delimited path from a document, subject to the
permissions declared in the store definition.

Example:
  storectl read user profile:name`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Store, "store", "", "store definition name (defaults to the document name)")

	return cmd
}

func runRead(opts *ReadOptions, docName, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	sess, err := openDocSession(opts.RootOptions, docName, opts.Store, true)
	if err != nil {
		return err
	}
	defer sess.Close()

	v, readErr := sess.bound.Read(path)
	if readErr != nil {
		if store.IsPermissionDenied(readErr) {
			if err := sess.log("read", path, "denied", readErr.Error()); err != nil {
				return err
			}
			formatter.Error(ErrCodePermissionDenied, readErr.Error(), nil)
			return WrapExitError(ExitFailure, "read denied", readErr)
		}
		return WrapExitError(ExitCommandError, "read failed", readErr)
	}

	out, err := valueJSON(v)
	if err != nil {
		return WrapExitError(ExitCommandError, "encoding result", err)
	}

	if err := sess.log("read", path, "ok", out); err != nil {
		return err
	}

	return formatter.Success(out)
}
