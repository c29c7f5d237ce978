package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ValidationResult holds the outcome of validating one document file.
type ValidationResult struct {
	Valid        bool   `json:"valid"`
	AssessmentID string `json:"assessmentId,omitempty"`
	FileVersion  string `json:"fileVersion,omitempty"`
	CustomerName string `json:"customerName,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate an exported assessment file",
		Long: `Validate that a JSON file is a loadable assessment document.

Runs the same checks an import does: the size guard, JSON parsing, and
schema validation against this build's schema version.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := formatterFor(opts, cmd)

	doc, err := readDocumentFile(path)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			_ = formatter.Error("", exitErr.Message, "")
			return err
		}
		return formatter.DocumentError(err)
	}

	if opts.Format == "json" {
		return formatter.Success(ValidationResult{
			Valid:        true,
			AssessmentID: doc.AssessmentID,
			FileVersion:  doc.FileVersion,
			CustomerName: doc.Metadata.CustomerName,
		})
	}

	fmt.Fprintf(formatter.Writer, "✓ %s is a valid assessment (%s, %s)\n",
		path, doc.Metadata.CustomerName, doc.FileVersion)
	return nil
}
