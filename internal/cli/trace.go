package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThomasAtome/technical-assignment-store/internal/docstore"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	BySession string
	ByDoc     string
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print the operation log",
		Long: `Print logged operations for a session token or a document,
in the order they were applied.

Example:
  storectl trace --doc user
  storectl trace --by-session 0190a6e2-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.BySession, "by-session", "", "session token to trace")
	cmd.Flags().StringVar(&opts.ByDoc, "doc", "", "document name to trace")

	return cmd
}

// TraceEntry is one operation in trace output.
type TraceEntry struct {
	Seq          int64  `json:"seq"`
	Session      string `json:"session"`
	Doc          string `json:"doc"`
	Op           string `json:"op"`
	Path         string `json:"path,omitempty"`
	Outcome      string `json:"outcome"`
	Detail       string `json:"detail,omitempty"`
	SnapshotHash string `json:"snapshot_hash"`
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if (opts.BySession == "") == (opts.ByDoc == "") {
		return NewExitError(ExitCommandError, "exactly one of --by-session or --doc is required")
	}

	db, err := docstore.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening document database", err)
	}
	defer db.Close()

	var ops []docstore.Operation
	if opts.BySession != "" {
		ops, err = db.ReadSession(context.Background(), opts.BySession)
	} else {
		ops, err = db.ReadDocumentLog(context.Background(), opts.ByDoc)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "reading operation log", err)
	}

	entries := make([]TraceEntry, len(ops))
	for i, op := range ops {
		entries[i] = TraceEntry{
			Seq:          op.Seq,
			Session:      op.Session,
			Doc:          op.Doc,
			Op:           op.Op,
			Path:         op.Path,
			Outcome:      op.Outcome,
			Detail:       op.Detail,
			SnapshotHash: op.SnapshotHash,
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "no operations")
		return nil
	}
	for _, e := range entries {
		if e.Path != "" {
			fmt.Fprintf(formatter.Writer, "%d %s %s %s %s %s\n", e.Seq, e.Doc, e.Op, e.Path, e.Outcome, e.Detail)
		} else {
			fmt.Fprintf(formatter.Writer, "%d %s %s %s %s\n", e.Seq, e.Doc, e.Op, e.Outcome, e.Detail)
		}
	}
	return nil
}
