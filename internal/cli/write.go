package cli

import (
	"github.com/spf13/cobra"

	"github.com/ThomasAtome/technical-assignment-store/internal/store"
)

// WriteOptions holds flags for the write command.
type WriteOptions struct {
	*RootOptions
	Store string
}

// NewWriteCommand creates the write command.
func NewWriteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WriteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "write <doc> <path> <value-json>",
		Short: "Write a JSON value at a colon-delimited path",
		Long: `Write a JSON value at a colon-delimited path in a document,
subject to the permissions declared in the store definition. Creates the
document on first write; absent intermediate fields become empty objects.

Example:
  storectl write user profile:name '"Ada"'`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(opts, args[0], args[1], args[2], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Store, "store", "", "store definition name (defaults to the document name)")

	return cmd
}

func runWrite(opts *WriteOptions, docName, path, rawValue string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	value, err := store.UnmarshalValue([]byte(rawValue))
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid value JSON", err)
	}

	sess, err := openDocSession(opts.RootOptions, docName, opts.Store, false)
	if err != nil {
		return err
	}
	defer sess.Close()

	written, writeErr := sess.bound.Write(path, value)
	if writeErr != nil {
		if store.IsPermissionDenied(writeErr) {
			if err := sess.log("write", path, "denied", writeErr.Error()); err != nil {
				return err
			}
			formatter.Error(ErrCodePermissionDenied, writeErr.Error(), nil)
			return WrapExitError(ExitFailure, "write denied", writeErr)
		}
		return WrapExitError(ExitCommandError, "write failed", writeErr)
	}

	if err := sess.save(); err != nil {
		return err
	}

	out, err := valueJSON(written)
	if err != nil {
		return WrapExitError(ExitCommandError, "encoding result", err)
	}

	if err := sess.log("write", path, "ok", out); err != nil {
		return err
	}

	return formatter.Success(out)
}
