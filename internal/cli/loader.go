package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/assessment"
	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/persist"
)

// formatterFor builds the formatter that a command writes through.
func formatterFor(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// openCheckpointer opens the snapshot database named by the global
// flags. The caller closes the returned store.
func openCheckpointer(opts *RootOptions) (*persist.Store, *persist.Checkpointer, error) {
	store, err := persist.Open(opts.DBPath)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, fmt.Sprintf("open database %s", opts.DBPath), err)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return store, persist.NewCheckpointer(store, opts.BackupPath, log), nil
}

// readDocumentFile loads and validates an assessment document from a
// JSON file, applying the pre-flight size check before reading.
func readDocumentFile(path string) (*assessment.Assessment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("stat %s", path), err)
	}
	if err := persist.CheckSize(info.Size()); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("read %s", path), err)
	}
	return persist.ImportForLoad(data)
}

// loadDocument returns the document from an explicit file when path is
// set, otherwise the latest checkpoint. A nil document with nil error
// means no checkpoint exists yet.
func loadDocument(opts *RootOptions, path string) (*assessment.Assessment, error) {
	if path != "" {
		return readDocumentFile(path)
	}

	store, cp, err := openCheckpointer(opts)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return cp.Load(context.Background())
}
