package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/interview"
)

// ConvertResult is the payload printed after converting a session.
type ConvertResult struct {
	AssessmentID string `json:"assessmentId"`
	CustomerName string `json:"customerName"`
	Answered     int    `json:"answered"`
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <session-file>",
		Short: "Convert an interview session into an assessment",
		Long: `Convert a recorded interview session file into a full assessment
document and store it as the current checkpoint.

Answers to networks questions are applied to every cloud provider the
session selected, and pillar maturities are recomputed from the
detected levels.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runConvert(opts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := formatterFor(opts, cmd)

	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("read %s", path), err)
	}

	var session interview.Session
	if err := json.Unmarshal(data, &session); err != nil {
		msg := "The session file could not be parsed."
		_ = formatter.Error("", msg, err.Error())
		return WrapExitError(ExitFailure, msg, err)
	}

	bank, err := interview.LoadBank()
	if err != nil {
		return WrapExitError(ExitCommandError, "load question bank", err)
	}

	doc, err := interview.BuildAssessment(&session, bank, time.Now)
	if err != nil {
		msg := "The session could not be converted."
		_ = formatter.Error("", msg, err.Error())
		return WrapExitError(ExitFailure, msg, err)
	}
	formatter.VerboseLog("converted session %s (%d responses)", session.SessionID, len(session.Responses))

	store, cp, err := openCheckpointer(opts)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := cp.Save(context.Background(), doc); err != nil {
		return formatter.DocumentError(err)
	}

	return formatter.Success(ConvertResult{
		AssessmentID: doc.AssessmentID,
		CustomerName: doc.Metadata.CustomerName,
		Answered:     len(session.Responses),
	})
}
