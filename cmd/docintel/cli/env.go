package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"docintel/internal/config"
)

func newEnvCmd() *cobra.Command {
	var initExample bool

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Check which configuration variables are set",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			if initExample {
				if err := os.WriteFile(".env.example", []byte(config.ExampleEnv()), 0o644); err != nil {
					return err
				}
				cmd.Println("created .env.example; copy it to .env and fill in your credentials")
				return nil
			}

			for _, v := range config.CheckEnvironment() {
				status := "not set"
				if v.Set {
					status = "set"
				}
				cmd.Printf("%s: %s\n", v.Name, v.Description)
				cmd.Printf("  status: %s\n", status)
				if v.Set && !v.Secret {
					cmd.Printf("  value: %s\n", v.Value)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&initExample, "init", false, "write a starter .env.example file")

	return cmd
}
