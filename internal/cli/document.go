package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThomasAtome/technical-assignment-store/internal/docstore"
	"github.com/ThomasAtome/technical-assignment-store/internal/store"
)

// docSession bundles the plumbing every document command shares: the
// open database, the compiled definitions, and one bound document.
type docSession struct {
	opts    *RootOptions
	db      *docstore.Store
	defs    *DefinitionSet
	docName string
	bound   *store.Store
}

// openDocSession opens the database, loads and compiles the definitions,
// fetches the document, and binds it under the definition named
// storeName (empty storeName defaults to the document name).
//
// When mustExist is false a missing document binds as an empty object,
// which is how write creates documents on first use.
func openDocSession(opts *RootOptions, docName, storeName string, mustExist bool) (*docSession, error) {
	if storeName == "" {
		storeName = docName
	}

	loadResult, loadErrors := LoadDefinitions(opts.DefsDir, LoadModeFailFast)
	if len(loadErrors) > 0 {
		return nil, WrapExitError(ExitCommandError, "loading definitions", loadErrors[0])
	}

	defs, err := BuildDefinitions(loadResult.Definitions)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "compiling definitions", err)
	}
	if !defs.Has(storeName) {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("no store definition named %q in %s", storeName, opts.DefsDir))
	}

	db, err := docstore.Open(opts.DBPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "opening document database", err)
	}

	body := store.Object{}
	doc, err := db.GetDocument(context.Background(), docName)
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		if mustExist {
			db.Close()
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("document %q not found", docName))
		}
	case err != nil:
		db.Close()
		return nil, WrapExitError(ExitCommandError, "reading document", err)
	default:
		body, err = store.ObjectFromJSON([]byte(doc.Body))
		if err != nil {
			db.Close()
			return nil, WrapExitError(ExitCommandError, "parsing document body", err)
		}
	}

	bound, err := defs.Bind(storeName, body)
	if err != nil {
		db.Close()
		return nil, WrapExitError(ExitCommandError, "binding document", err)
	}

	return &docSession{
		opts:    opts,
		db:      db,
		defs:    defs,
		docName: docName,
		bound:   bound,
	}, nil
}

// Close releases the database handle.
func (ds *docSession) Close() error {
	return ds.db.Close()
}

// save flattens the bound store and persists it as the document body.
func (ds *docSession) save() error {
	body, err := Flatten(ds.bound)
	if err != nil {
		return WrapExitError(ExitCommandError, "flattening document", err)
	}
	if err := ds.db.PutDocument(context.Background(), ds.docName, body); err != nil {
		return WrapExitError(ExitCommandError, "saving document", err)
	}
	return nil
}

// log appends one operation to the audit log. The snapshot hash covers
// the document as it stands after the operation; logging failures are
// reported, not swallowed.
func (ds *docSession) log(op, path, outcome, detail string) error {
	body, err := Flatten(ds.bound)
	if err != nil {
		return WrapExitError(ExitCommandError, "hashing document", err)
	}
	obj, err := store.ObjectFromJSON([]byte(body))
	if err != nil {
		return WrapExitError(ExitCommandError, "hashing document", err)
	}
	hash, err := store.SnapshotHash(obj)
	if err != nil {
		return WrapExitError(ExitCommandError, "hashing document", err)
	}

	err = ds.db.AppendOperation(context.Background(), docstore.Operation{
		ID:           ds.opts.Tokens.Generate(),
		Session:      ds.opts.Session,
		Doc:          ds.docName,
		Op:           op,
		Path:         path,
		Outcome:      outcome,
		Detail:       detail,
		SnapshotHash: hash,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "logging operation", err)
	}
	return nil
}

// valueJSON renders a Value for command output; nil renders as "null".
func valueJSON(v store.Value) (string, error) {
	b, err := store.MarshalValue(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
