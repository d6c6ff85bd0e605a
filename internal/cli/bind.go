package cli

import (
	"fmt"

	"github.com/ThomasAtome/technical-assignment-store/internal/store"
)

// DefinitionSet holds the compiled store definitions for a defs
// directory, ready to bind documents into live store graphs.
type DefinitionSet struct {
	specs map[string]DefinitionSpec
	defs  map[string]*store.Definition
}

// BuildDefinitions compiles loaded specs into shared store.Definition
// values. Validates that nested references resolve, that no two
// definitions share a name, and that nesting is acyclic (a cyclic
// definition graph would bind an infinite store tree).
func BuildDefinitions(specs []DefinitionSpec) (*DefinitionSet, error) {
	ds := &DefinitionSet{
		specs: make(map[string]DefinitionSpec, len(specs)),
		defs:  make(map[string]*store.Definition, len(specs)),
	}

	for _, spec := range specs {
		if _, dup := ds.specs[spec.Name]; dup {
			return nil, &LoadError{Code: ErrCodeDuplicateStore, Message: fmt.Sprintf("duplicate store definition %q", spec.Name)}
		}
		def := store.NewDefinition(spec.Name)
		for field, p := range spec.Fields {
			if err := def.Declare(field, string(p)); err != nil {
				return nil, err
			}
		}
		ds.specs[spec.Name] = spec
		ds.defs[spec.Name] = def
	}

	for _, spec := range specs {
		for field, target := range spec.Nested {
			if _, ok := ds.specs[target]; !ok {
				return nil, &LoadError{Code: ErrCodeUnknownNested, Message: fmt.Sprintf("store %q nested field %q references undefined store %q", spec.Name, field, target)}
			}
		}
		if err := ds.checkCycle(spec.Name, map[string]bool{}); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

func (ds *DefinitionSet) checkCycle(name string, onPath map[string]bool) error {
	if onPath[name] {
		return &LoadError{Code: ErrCodeNestedCycle, Message: fmt.Sprintf("store definition nesting cycle through %q", name)}
	}
	onPath[name] = true
	for _, target := range ds.specs[name].Nested {
		if err := ds.checkCycle(target, onPath); err != nil {
			return err
		}
	}
	delete(onPath, name)
	return nil
}

// Has reports whether a definition with the given name exists.
func (ds *DefinitionSet) Has(name string) bool {
	_, ok := ds.specs[name]
	return ok
}

// Names returns the defined store names, unordered.
func (ds *DefinitionSet) Names() []string {
	names := make([]string, 0, len(ds.specs))
	for n := range ds.specs {
		names = append(names, n)
	}
	return names
}

// Bind builds a live store graph from a definition name and a document
// body. Fields listed in the definition's nested map become nested
// Stores carrying their own definitions; everything else in the document
// is bulk-loaded as-is, the same unchecked path WriteEntries takes.
func (ds *DefinitionSet) Bind(name string, doc store.Object) (*store.Store, error) {
	spec, ok := ds.specs[name]
	if !ok {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("no store definition named %q", name)}
	}

	s := store.New(ds.defs[name], spec.DefaultPolicy)
	for k, v := range doc {
		target, nested := spec.Nested[k]
		if !nested {
			s.SetField(k, v)
			continue
		}
		childDoc, ok := v.(store.Object)
		if !ok {
			return nil, &LoadError{Code: ErrCodeBadValue, Message: fmt.Sprintf("document field %q must be an object to bind store %q", k, target)}
		}
		child, err := ds.Bind(target, childDoc)
		if err != nil {
			return nil, err
		}
		s.SetField(k, child)
	}

	// Nested fields absent from the document still bind an empty nested
	// store, so their permission boundary exists before the first write.
	for k, target := range spec.Nested {
		if _, present := doc[k]; present {
			continue
		}
		child, err := ds.Bind(target, store.Object{})
		if err != nil {
			return nil, err
		}
		s.SetField(k, child)
	}

	return s, nil
}

// Flatten serializes a bound store graph back to a document body, with
// nested stores re-inlined as plain objects.
func Flatten(s *store.Store) (string, error) {
	b, err := store.MarshalValue(s)
	if err != nil {
		return "", fmt.Errorf("flatten store: %w", err)
	}
	return string(b), nil
}
