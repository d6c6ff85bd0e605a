package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// ValidationResult holds validation results for a defs directory.
type ValidationResult struct {
	Valid       bool              `json:"valid"`
	FileCount   int               `json:"file_count"`
	Definitions []DefinitionInfo  `json:"definitions,omitempty"`
	Errors      []ValidationError `json:"errors,omitempty"`
}

// DefinitionInfo summarizes one validated store definition.
type DefinitionInfo struct {
	Name          string `json:"name"`
	DefaultPolicy string `json:"default_policy"`
	Declared      int    `json:"declared"`
	Nested        int    `json:"nested"`
}

// ValidationError is one problem found in a definition file.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [defs-dir]",
		Short: "Validate store definitions",
		Long: `Validate CUE store definitions: permission levels, default
policies, and nested store references. All problems are collected and
reported together.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := rootOpts.DefsDir
			if len(args) == 1 {
				dir = args[0]
			}
			return runValidate(rootOpts, dir, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, defsDir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	loadResult, loadErrors := LoadDefinitions(defsDir, LoadModeCollectAll)
	if loadResult == nil && len(loadErrors) > 0 {
		return reportValidation(formatter, &ValidationResult{
			Valid:  false,
			Errors: toValidationErrors(loadErrors),
		})
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, defsDir)

	result := &ValidationResult{
		Valid:     len(loadErrors) == 0,
		FileCount: loadResult.FileCount,
		Errors:    toValidationErrors(loadErrors),
	}

	if result.Valid {
		if _, err := BuildDefinitions(loadResult.Definitions); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, toValidationErrors([]error{err})...)
		}
	}

	for _, spec := range loadResult.Definitions {
		result.Definitions = append(result.Definitions, DefinitionInfo{
			Name:          spec.Name,
			DefaultPolicy: string(spec.DefaultPolicy),
			Declared:      len(spec.Fields),
			Nested:        len(spec.Nested),
		})
	}
	sort.Slice(result.Definitions, func(i, j int) bool {
		return result.Definitions[i].Name < result.Definitions[j].Name
	})

	return reportValidation(formatter, result)
}

func toValidationErrors(errs []error) []ValidationError {
	out := make([]ValidationError, 0, len(errs))
	for _, err := range errs {
		if le, ok := err.(*LoadError); ok {
			out = append(out, ValidationError{Code: le.Code, Message: le.Message})
			continue
		}
		out = append(out, ValidationError{Code: ErrCodeGeneric, Message: err.Error()})
	}
	return out
}

func reportValidation(f *OutputFormatter, result *ValidationResult) error {
	if f.Format == "json" {
		if err := f.Success(result); err != nil {
			return err
		}
	} else {
		if result.Valid {
			fmt.Fprintf(f.Writer, "Valid: %d definition(s) in %d file(s)\n", len(result.Definitions), result.FileCount)
			for _, d := range result.Definitions {
				fmt.Fprintf(f.Writer, "  %s (defaultPolicy=%s, %d declared, %d nested)\n", d.Name, d.DefaultPolicy, d.Declared, d.Nested)
			}
		} else {
			fmt.Fprintf(f.Writer, "Invalid: %d error(s)\n", len(result.Errors))
			for _, e := range result.Errors {
				fmt.Fprintf(f.Writer, "  [%s] %s\n", e.Code, e.Message)
			}
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, "definition validation failed")
	}
	return nil
}
