package config

import (
	"os"
	"strings"
)

// EnvVar describes one environment variable the application reads, for the
// environment check command.
type EnvVar struct {
	Name        string
	Description string
	Required    bool
	Secret      bool
	Set         bool
	Value       string
}

// envVars lists the variables surfaced by the environment check, in display
// order. Secrets are never echoed back.
var envVars = []EnvVar{
	{Name: "DOCINTEL_AZURE_ENDPOINT", Description: "Azure Document Intelligence endpoint URL (e.g. https://your-resource.cognitiveservices.azure.com/)", Required: true},
	{Name: "DOCINTEL_AZURE_API_KEY", Description: "Azure Document Intelligence API key", Required: true, Secret: true},
	{Name: "DOCINTEL_AZURE_MODEL_ID", Description: "Azure model id (default: prebuilt-layout)"},
	{Name: "DOCINTEL_GOOGLE_PROJECT_ID", Description: "Google Cloud project id", Required: true},
	{Name: "DOCINTEL_GOOGLE_LOCATION", Description: "Google Cloud location (default: us)"},
	{Name: "DOCINTEL_GOOGLE_ACCESS_TOKEN", Description: "Google Cloud access token for Document AI", Required: true, Secret: true},
	{Name: "DOCINTEL_GOOGLE_PROCESSOR_ID", Description: "Google Document AI processor id", Required: true},
	{Name: "DOCINTEL_EXPORT_SINK", Description: "Report sink: local or s3 (default: local)"},
	{Name: "DOCINTEL_EXPORT_OUTPUT_DIR", Description: "Local report output directory (default: .)"},
	{Name: "DOCINTEL_S3_BUCKET", Description: "S3 bucket for the s3 report sink"},
}

// CheckEnvironment returns the status of every configuration variable.
// Secret values are redacted.
func CheckEnvironment() []EnvVar {
	vars := make([]EnvVar, len(envVars))
	copy(vars, envVars)
	for i := range vars {
		val := os.Getenv(vars[i].Name)
		vars[i].Set = val != ""
		if !vars[i].Secret {
			vars[i].Value = val
		}
	}
	return vars
}

// ExampleEnv returns the contents of a starter .env file.
func ExampleEnv() string {
	var b strings.Builder
	b.WriteString("# Azure Document Intelligence\n")
	b.WriteString("DOCINTEL_AZURE_ENDPOINT=https://your-resource.cognitiveservices.azure.com/\n")
	b.WriteString("DOCINTEL_AZURE_API_KEY=your_azure_api_key_here\n")
	b.WriteString("DOCINTEL_AZURE_MODEL_ID=prebuilt-layout\n")
	b.WriteString("\n# Google Cloud Document AI\n")
	b.WriteString("DOCINTEL_GOOGLE_PROJECT_ID=your-google-cloud-project-id\n")
	b.WriteString("DOCINTEL_GOOGLE_LOCATION=us\n")
	b.WriteString("DOCINTEL_GOOGLE_ACCESS_TOKEN=your_access_token_here\n")
	b.WriteString("DOCINTEL_GOOGLE_PROCESSOR_ID=your_processor_id_here\n")
	b.WriteString("\n# Report export\n")
	b.WriteString("DOCINTEL_EXPORT_SINK=local\n")
	b.WriteString("DOCINTEL_EXPORT_OUTPUT_DIR=.\n")
	return b.String()
}
