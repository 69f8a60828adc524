package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/cctxy/internal/harness"
	"github.com/roach88/cctxy/internal/input"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                     `json:"valid"`
	Files  int                      `json:"files"`
	Errors []*input.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <path>...",
		Short: "Validate bounds schemas and scenario files",
		Long: `Validate CUE bounds schemas (.cue) and YAML scenarios (.yaml, .yml)
without running any conversion. Directories are walked recursively.

Examples:
  cctxy validate ./bounds.cue
  cctxy validate ./scenarios ./bounds`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	var files []string
	for _, p := range paths {
		found, err := collectValidateFiles(p)
		if err != nil {
			if os.IsNotExist(err) {
				return formatter.Fail(ExitCommandError, ErrCodeNotFound,
					fmt.Sprintf("path not found: %s", p), nil)
			}
			return formatter.Fail(ExitCommandError, ErrCodeScanError,
				fmt.Sprintf("failed to scan %s: %v", p, err), nil)
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, "no .cue or .yaml files found", nil)
	}

	result := ValidationResult{Valid: true, Files: len(files)}
	for _, f := range files {
		formatter.VerboseLog("Validating %s", f)
		if ve := validateFile(f); ve != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ve)
		}
	}

	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}

	if formatter.JSON() {
		return formatter.Success(result)
	}
	return formatter.Success(fmt.Sprintf("✓ %d file(s) valid", result.Files))
}

// collectValidateFiles returns path itself if it is a file, or every
// schema and scenario file below it.
func collectValidateFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch filepath.Ext(p) {
		case ".cue", ".yaml", ".yml":
			files = append(files, p)
		}
		return nil
	})
	return files, err
}

// validateFile loads one file and returns its first problem, tagged with
// the file name.
func validateFile(path string) *input.ValidationError {
	switch filepath.Ext(path) {
	case ".cue":
		if _, err := input.LoadBounds(path); err != nil {
			if ve, ok := input.IsValidationError(err); ok {
				return &input.ValidationError{Field: fieldIn(path, ve.Field), Message: ve.Message, Code: ve.Code}
			}
			return &input.ValidationError{Field: path, Message: err.Error(), Code: input.ErrCodeSchema}
		}
	case ".yaml", ".yml":
		if _, err := harness.LoadScenario(path); err != nil {
			if ve, ok := input.IsValidationError(err); ok {
				return &input.ValidationError{Field: fieldIn(path, ve.Field), Message: ve.Message, Code: ve.Code}
			}
			return &input.ValidationError{Field: path, Message: err.Error(), Code: ErrCodeGeneric}
		}
	default:
		return &input.ValidationError{Field: path, Message: "unsupported file type", Code: ErrCodeGeneric}
	}
	return nil
}

func fieldIn(path, field string) string {
	if field == "" {
		return path
	}
	return path + ":" + field
}

func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	first := result.Errors[0]
	msg := fmt.Sprintf("%d of %d file(s) invalid", len(result.Errors), result.Files)

	if formatter.JSON() {
		if err := formatter.Error(first.Code, msg, result.Errors); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(formatter.Writer, "✗ %s\n", msg)
		for _, e := range result.Errors {
			fmt.Fprintf(formatter.Writer, "  %s\n", e.Error())
		}
	}
	return &ExitError{Code: ExitCommandError, Message: msg, Reported: true}
}
