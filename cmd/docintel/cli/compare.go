package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"docintel/internal/service"
)

func newCompareCmd() *cobra.Command {
	var (
		azureModel      string
		googleProcessor string
		exports         exportFlags
	)

	cmd := &cobra.Command{
		Use:   "compare <document>",
		Short: "Run both vendors against a single document and print the comparison",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			rec, err := a.comparisons.Compare(cmd.Context(), args[0], service.CompareOptions{
				AzureModelID:      azureModel,
				GoogleProcessorID: googleProcessor,
			})
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(rec, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(out))

			return exports.run(cmd, a)
		},
	}

	cmd.Flags().StringVar(&azureModel, "azure-model", "", "azure model id (default from config: prebuilt-layout)")
	cmd.Flags().StringVar(&googleProcessor, "google-processor", "", "google processor id (default from config)")
	exports.register(cmd)

	return cmd
}
