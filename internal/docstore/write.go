package docstore

import (
	"context"
	"fmt"
)

// PutDocument saves a document body, creating the row on first save and
// bumping seq on every subsequent one.
func (s *Store) PutDocument(ctx context.Context, name, body string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (name, body, seq)
		VALUES (?, ?, 1)
		ON CONFLICT(name) DO UPDATE SET
			body = excluded.body,
			seq = documents.seq + 1
	`, name, body)
	if err != nil {
		return fmt.Errorf("put document %q: %w", name, err)
	}
	return nil
}

// AppendOperation appends one operation to the log. The operation's Seq
// is assigned here: a monotonic counter over the whole log, so interleaved
// sessions still have a total order.
//
// Duplicate IDs are silently ignored (ON CONFLICT DO NOTHING) so a retried
// append is idempotent.
func (s *Store) AppendOperation(ctx context.Context, op Operation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO operations
		(id, session, seq, doc, op, path, outcome, detail, snapshot_hash)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM operations), ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		op.ID,
		op.Session,
		op.Doc,
		op.Op,
		op.Path,
		op.Outcome,
		op.Detail,
		op.SnapshotHash,
	)
	if err != nil {
		return fmt.Errorf("append operation: %w", err)
	}
	return nil
}
