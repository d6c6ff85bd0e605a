package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetDocument retrieves a document by name, returning ErrNotFound if it
// has never been saved.
func (s *Store) GetDocument(ctx context.Context, name string) (Document, error) {
	var doc Document
	err := s.db.QueryRowContext(ctx, `
		SELECT name, body, seq FROM documents WHERE name = ?
	`, name).Scan(&doc.Name, &doc.Body, &doc.Seq)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("get document %q: %w", name, err)
	}
	return doc, nil
}

// ReadSession returns all operations logged under a session token with
// deterministic ordering.
//
// Returns an empty slice (not nil) if the session has no operations.
func (s *Store) ReadSession(ctx context.Context, session string) ([]Operation, error) {
	return s.readOperations(ctx, `
		SELECT id, session, seq, doc, op, path, outcome, detail, snapshot_hash
		FROM operations
		WHERE session = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, session)
}

// ReadDocumentLog returns all operations applied to a named document with
// deterministic ordering.
func (s *Store) ReadDocumentLog(ctx context.Context, doc string) ([]Operation, error) {
	return s.readOperations(ctx, `
		SELECT id, session, seq, doc, op, path, outcome, detail, snapshot_hash
		FROM operations
		WHERE doc = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, doc)
}

func (s *Store) readOperations(ctx context.Context, query, arg string) ([]Operation, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query operations: %w", err)
	}
	defer rows.Close()

	ops := []Operation{}
	for rows.Next() {
		var op Operation
		if err := rows.Scan(
			&op.ID, &op.Session, &op.Seq, &op.Doc, &op.Op,
			&op.Path, &op.Outcome, &op.Detail, &op.SnapshotHash,
		); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		ops = append(ops, op)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operations: %w", err)
	}

	return ops, nil
}
