package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/assessment"
	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/framework"
	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/state"
)

// ExportResult is the payload printed after an export.
type ExportResult struct {
	Path        string `json:"path"`
	FileVersion string `json:"fileVersion"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		outDir string
		inFile string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the current assessment to a versioned JSON file",
		Long: `Export the checkpointed assessment (or an explicit input file) to a
JSON file whose name encodes customer, date, and file version.

The file version is bumped and a change history entry is appended
before writing, and the bumped document replaces the checkpoint.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, cmd, outDir, inFile)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&inFile, "file", "", "export this file instead of the checkpoint")

	return cmd
}

func runExport(opts *RootOptions, cmd *cobra.Command, outDir, inFile string) error {
	formatter := formatterFor(opts, cmd)

	doc, err := loadDocument(opts, inFile)
	if err != nil {
		return formatter.DocumentError(err)
	}
	if doc == nil {
		msg := "no assessment found: run `ztmm new` first"
		_ = formatter.Error("", msg, "")
		return NewExitError(ExitCommandError, msg)
	}

	catalog, err := framework.Load()
	if err != nil {
		return WrapExitError(ExitCommandError, "load framework catalog", err)
	}

	// The export is a save point: bump the version and record it.
	st := state.NewStore(catalog)
	st.Load(doc)
	st.MarkDirty()
	st.IncrementVersion()
	doc = st.Document()

	data, err := assessment.ExportJSON(doc)
	if err != nil {
		return formatter.DocumentError(err)
	}

	name := assessment.GenerateFileName(doc.Metadata.CustomerName, doc.Metadata.AssessmentDate, doc.FileVersion)
	path := filepath.Join(outDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("write %s", path), err)
	}
	formatter.VerboseLog("wrote %d bytes to %s", len(data), path)

	// Keep the checkpoint in step with the bumped version.
	if inFile == "" {
		store, cp, err := openCheckpointer(opts)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := cp.Save(context.Background(), doc); err != nil {
			return formatter.DocumentError(err)
		}
	}

	return formatter.Success(ExportResult{Path: path, FileVersion: doc.FileVersion})
}
