package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/ThomasAtome/technical-assignment-store/internal/permission"
)

// LoadMode controls how errors are handled during definition loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// DefinitionSpec is one store definition as written in a CUE file:
//
//	store: user: {
//		defaultPolicy: "none"
//		fields: {
//			name: "read-write"
//			ssn:  "none"
//		}
//		nested: {
//			profile: "profile"
//		}
//	}
//
// Fields maps declared field names to permission levels; Nested maps
// field names to the store definition bound under them.
type DefinitionSpec struct {
	Name          string
	DefaultPolicy permission.Permission
	Fields        map[string]permission.Permission
	Nested        map[string]string
}

// LoadResult contains the results of loading definitions from a directory.
type LoadResult struct {
	Definitions []DefinitionSpec
	CUEValue    cue.Value // The raw CUE value for additional processing
	FileCount   int       // Number of CUE files found
}

// LoadError represents an error that occurred during definition loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadDefinitions loads store definitions from a directory of CUE files.
// Permission levels are validated eagerly: a bad level in a definition
// file fails the load, it never silently defaults.
func LoadDefinitions(dir string, mode LoadMode) (*LoadResult, []error) {
	var errs []error

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("definitions directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing definitions directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}

	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	result := &LoadResult{
		CUEValue:  value,
		FileCount: len(cueFiles),
	}

	storesVal := value.LookupPath(cue.ParsePath("store"))
	if !storesVal.Exists() {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no store definitions found (expected a top-level \"store\" struct)"})
		return result, errs
	}

	iter, iterErr := storesVal.Fields()
	if iterErr != nil {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating store definitions: %v", iterErr)})
		return result, errs
	}

	for iter.Next() {
		spec, specErrs := compileDefinition(iter.Label(), iter.Value())
		if len(specErrs) > 0 {
			errs = append(errs, specErrs...)
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}
		result.Definitions = append(result.Definitions, *spec)
	}

	return result, errs
}

// compileDefinition extracts one DefinitionSpec from its CUE value.
func compileDefinition(name string, v cue.Value) (*DefinitionSpec, []error) {
	var errs []error
	spec := &DefinitionSpec{
		Name:          name,
		DefaultPolicy: permission.None,
		Fields:        map[string]permission.Permission{},
		Nested:        map[string]string{},
	}

	if pv := v.LookupPath(cue.ParsePath("defaultPolicy")); pv.Exists() {
		raw, err := pv.String()
		if err != nil {
			errs = append(errs, &LoadError{Code: ErrCodeInvalidPolicy, Message: fmt.Sprintf("store %q: defaultPolicy: %v", name, err), Pos: pv.Pos()})
		} else if p, perr := permission.Parse(raw); perr != nil {
			errs = append(errs, &LoadError{Code: ErrCodeInvalidPolicy, Message: fmt.Sprintf("store %q: %v", name, perr), Pos: pv.Pos()})
		} else {
			spec.DefaultPolicy = p
		}
	}

	if fv := v.LookupPath(cue.ParsePath("fields")); fv.Exists() {
		iter, err := fv.Fields()
		if err != nil {
			errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("store %q: iterating fields: %v", name, err), Pos: fv.Pos()})
		} else {
			for iter.Next() {
				field := iter.Label()
				raw, err := iter.Value().String()
				if err != nil {
					errs = append(errs, &LoadError{Code: ErrCodeInvalidPermission, Message: fmt.Sprintf("store %q field %q: %v", name, field, err), Pos: iter.Value().Pos()})
					continue
				}
				p, perr := permission.Parse(raw)
				if perr != nil {
					errs = append(errs, &LoadError{Code: ErrCodeInvalidPermission, Message: fmt.Sprintf("store %q field %q: %v", name, field, perr), Pos: iter.Value().Pos()})
					continue
				}
				spec.Fields[field] = p
			}
		}
	}

	if nv := v.LookupPath(cue.ParsePath("nested")); nv.Exists() {
		iter, err := nv.Fields()
		if err != nil {
			errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("store %q: iterating nested: %v", name, err), Pos: nv.Pos()})
		} else {
			for iter.Next() {
				target, err := iter.Value().String()
				if err != nil {
					errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("store %q nested %q: %v", name, iter.Label(), err), Pos: iter.Value().Pos()})
					continue
				}
				spec.Nested[iter.Label()] = target
			}
		}
	}

	return spec, errs
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
