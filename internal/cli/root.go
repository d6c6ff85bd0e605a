package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DBPath  string // SQLite document database path
	DefsDir string // directory of CUE store definitions
	Session string // session token; empty means generate a UUIDv7
	Verbose bool
	Format  string // "json" | "text"

	// Tokens generates session and operation IDs. Tests swap in a
	// FixedTokenGenerator for deterministic output.
	Tokens TokenGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the storectl CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Tokens: UUIDv7Generator{}}

	cmd := &cobra.Command{
		Use:   "storectl",
		Short: "storectl - permissioned hierarchical document store",
		Long: `storectl reads and writes colon-delimited paths in JSON documents
governed by CUE store definitions with per-field permissions.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Session == "" {
				opts.Session = opts.Tokens.Generate()
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "storectl.db", "document database path")
	cmd.PersistentFlags().StringVar(&opts.DefsDir, "defs", "defs", "directory of CUE store definitions")
	cmd.PersistentFlags().StringVar(&opts.Session, "session", "", "session token (defaults to a fresh UUIDv7)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewReadCommand(opts))
	cmd.AddCommand(NewWriteCommand(opts))
	cmd.AddCommand(NewEntriesCommand(opts))
	cmd.AddCommand(NewTraceCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func (opts *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
