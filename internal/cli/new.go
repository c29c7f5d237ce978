package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/assessment"
)

// NewResult is the payload printed after creating an assessment.
type NewResult struct {
	AssessmentID string `json:"assessmentId"`
	FileVersion  string `json:"fileVersion"`
	CustomerName string `json:"customerName"`
	CreatedAt    string `json:"createdAt"`
}

// NewNewCommand creates the new command.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		customer string
		industry string
		engineer string
		clouds   []string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a fresh assessment and checkpoint it",
		Long: `Create a fresh assessment document at fileVersion v1 and store it as
the current checkpoint. One networks shard is created per selected
cloud provider.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(rootOpts, cmd, customer, industry, engineer, clouds)
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "customer name (required)")
	cmd.Flags().StringVar(&industry, "industry", "", "customer industry")
	cmd.Flags().StringVar(&engineer, "engineer", "", "sales engineer running the assessment")
	cmd.Flags().StringSliceVar(&clouds, "clouds", nil, "cloud providers (AWS,Azure,GCP)")
	_ = cmd.MarkFlagRequired("customer")

	return cmd
}

func runNew(opts *RootOptions, cmd *cobra.Command, customer, industry, engineer string, clouds []string) error {
	formatter := formatterFor(opts, cmd)

	if msg := assessment.ValidateCustomerName(customer); msg != "" {
		_ = formatter.Error(string(assessment.ErrCodeUnknown), msg, "")
		return NewExitError(ExitFailure, msg)
	}

	providers := make([]assessment.CloudProvider, 0, len(clouds))
	for _, c := range clouds {
		providers = append(providers, assessment.CloudProvider(c))
	}
	if len(providers) > 0 {
		if msg := assessment.ValidateCloudProviders(providers); msg != "" {
			_ = formatter.Error(string(assessment.ErrCodeUnknown), msg, "")
			return NewExitError(ExitFailure, msg)
		}
	}

	doc := assessment.New()
	doc.Metadata.CustomerName = customer
	doc.Metadata.Industry = industry
	doc.Metadata.SalesEngineer = engineer
	doc.Metadata.CloudProviders = providers
	doc.Pillars.Networks = assessment.NewNetworkPillar(providers)

	store, cp, err := openCheckpointer(opts)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := cp.Save(context.Background(), doc); err != nil {
		return formatter.DocumentError(err)
	}
	formatter.VerboseLog("checkpointed assessment %s to %s", doc.AssessmentID, opts.DBPath)

	return formatter.Success(NewResult{
		AssessmentID: doc.AssessmentID,
		FileVersion:  doc.FileVersion,
		CustomerName: doc.Metadata.CustomerName,
		CreatedAt:    doc.CreatedAt,
	})
}
