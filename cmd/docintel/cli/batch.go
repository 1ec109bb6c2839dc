package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"docintel/internal/service"
)

func newBatchCmd() *cobra.Command {
	var (
		azureModel      string
		googleProcessor string
		exports         exportFlags
	)

	cmd := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Run both vendors against every supported document in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			records, err := a.comparisons.Batch(cmd.Context(), args[0], service.CompareOptions{
				AzureModelID:      azureModel,
				GoogleProcessorID: googleProcessor,
			})
			if err != nil {
				return err
			}
			cmd.Printf("processed %d documents\n", len(records))

			summary, err := json.MarshalIndent(a.comparisons.Summary(), "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(summary))

			return exports.run(cmd, a)
		},
	}

	cmd.Flags().StringVar(&azureModel, "azure-model", "", "azure model id (default from config: prebuilt-layout)")
	cmd.Flags().StringVar(&googleProcessor, "google-processor", "", "google processor id (default from config)")
	exports.register(cmd)

	return cmd
}
