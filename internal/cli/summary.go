package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/framework"
	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/report"
)

// NewSummaryCommand creates the summary command.
func NewSummaryCommand(rootOpts *RootOptions) *cobra.Command {
	var inFile string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show progress and maturity averages",
		Long: `Show per-pillar completion progress and numeric maturity averages for
the checkpointed assessment, or for an explicit input file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(rootOpts, cmd, inFile)
		},
	}

	cmd.Flags().StringVar(&inFile, "file", "", "summarize this file instead of the checkpoint")

	return cmd
}

func runSummary(opts *RootOptions, cmd *cobra.Command, inFile string) error {
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
	s := report.Summarize(doc, catalog)

	if opts.Format == "json" {
		return formatter.Success(s)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "%s (%s, %s)\n\n", doc.Metadata.CustomerName, doc.AssessmentID, doc.FileVersion)
	for i, p := range s.Progress {
		avg := s.Averages[i]
		fmt.Fprintf(w, "  %-22s %2d/%2d  %-12s", p.PillarID, p.Completed, p.Total, p.Status)
		if avg.Assessed > 0 {
			fmt.Fprintf(w, "  avg %.2f", avg.Average)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
	if s.OverallAssessed > 0 {
		fmt.Fprintf(w, "Overall: %.2f across %d assessed dimensions\n", s.OverallAverage, s.OverallAssessed)
	} else {
		fmt.Fprintln(w, "Overall: nothing assessed yet")
	}
	return nil
}
