package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Azure  AzureConfig
	Google GoogleConfig
	Export ExportConfig
	S3     S3Config
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AzureConfig holds Azure Document Intelligence settings.
type AzureConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	APIKey         string `mapstructure:"api_key"`
	ModelID        string `mapstructure:"model_id"`
	APIVersion     string `mapstructure:"api_version"`
	TimeoutSecs    int    `mapstructure:"timeout_secs"`
	PollIntervalMS int    `mapstructure:"poll_interval_ms"`
}

// Available reports whether the Azure client can be constructed.
func (c *AzureConfig) Available() bool {
	return c.Endpoint != "" && c.APIKey != ""
}

// GoogleConfig holds Google Cloud Document AI settings.
type GoogleConfig struct {
	ProjectID   string `mapstructure:"project_id"`
	Location    string `mapstructure:"location"`
	ProcessorID string `mapstructure:"processor_id"`
	AccessToken string `mapstructure:"access_token"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Available reports whether the Google client can be constructed. The
// processor id is checked separately at call time, since it may be supplied
// per request.
func (c *GoogleConfig) Available() bool {
	return c.ProjectID != "" && c.AccessToken != ""
}

// ExportConfig holds report export settings.
type ExportConfig struct {
	Sink      string `mapstructure:"sink"`
	OutputDir string `mapstructure:"output_dir"`
}

// S3Config holds AWS S3 settings for the S3 report sink.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// Load reads configuration from environment variables with the DOCINTEL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCINTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Azure defaults
	v.SetDefault("azure.endpoint", "")
	v.SetDefault("azure.api_key", "")
	v.SetDefault("azure.model_id", "prebuilt-layout")
	v.SetDefault("azure.api_version", "2024-11-30")
	v.SetDefault("azure.timeout_secs", 300)
	v.SetDefault("azure.poll_interval_ms", 2000)

	// Google defaults
	v.SetDefault("google.project_id", "")
	v.SetDefault("google.location", "us")
	v.SetDefault("google.processor_id", "")
	v.SetDefault("google.access_token", "")
	v.SetDefault("google.timeout_secs", 300)

	// Export defaults
	v.SetDefault("export.sink", "local")
	v.SetDefault("export.output_dir", ".")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "docintel-reports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.prefix", "reports")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "DOCINTEL_SERVER_PORT",
		"server.read_timeout":   "DOCINTEL_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "DOCINTEL_SERVER_WRITE_TIMEOUT",
		"server.environment":    "DOCINTEL_SERVER_ENVIRONMENT",
		"log.level":             "DOCINTEL_LOG_LEVEL",
		"log.format":            "DOCINTEL_LOG_FORMAT",
		"azure.endpoint":        "DOCINTEL_AZURE_ENDPOINT",
		"azure.api_key":         "DOCINTEL_AZURE_API_KEY",
		"azure.model_id":        "DOCINTEL_AZURE_MODEL_ID",
		"azure.api_version":     "DOCINTEL_AZURE_API_VERSION",
		"azure.timeout_secs":    "DOCINTEL_AZURE_TIMEOUT_SECS",
		"azure.poll_interval_ms": "DOCINTEL_AZURE_POLL_INTERVAL_MS",
		"google.project_id":     "DOCINTEL_GOOGLE_PROJECT_ID",
		"google.location":       "DOCINTEL_GOOGLE_LOCATION",
		"google.processor_id":   "DOCINTEL_GOOGLE_PROCESSOR_ID",
		"google.access_token":   "DOCINTEL_GOOGLE_ACCESS_TOKEN",
		"google.timeout_secs":   "DOCINTEL_GOOGLE_TIMEOUT_SECS",
		"export.sink":           "DOCINTEL_EXPORT_SINK",
		"export.output_dir":     "DOCINTEL_EXPORT_OUTPUT_DIR",
		"s3.region":             "DOCINTEL_S3_REGION",
		"s3.bucket":             "DOCINTEL_S3_BUCKET",
		"s3.endpoint":           "DOCINTEL_S3_ENDPOINT",
		"s3.access_key":         "DOCINTEL_S3_ACCESS_KEY",
		"s3.secret_key":         "DOCINTEL_S3_SECRET_KEY",
		"s3.prefix":             "DOCINTEL_S3_PREFIX",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DOCINTEL_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCINTEL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Azure = AzureConfig{
		Endpoint:       v.GetString("azure.endpoint"),
		APIKey:         v.GetString("azure.api_key"),
		ModelID:        v.GetString("azure.model_id"),
		APIVersion:     v.GetString("azure.api_version"),
		TimeoutSecs:    v.GetInt("azure.timeout_secs"),
		PollIntervalMS: v.GetInt("azure.poll_interval_ms"),
	}
	cfg.Google = GoogleConfig{
		ProjectID:   v.GetString("google.project_id"),
		Location:    v.GetString("google.location"),
		ProcessorID: v.GetString("google.processor_id"),
		AccessToken: v.GetString("google.access_token"),
		TimeoutSecs: v.GetInt("google.timeout_secs"),
	}
	cfg.Export = ExportConfig{
		Sink:      v.GetString("export.sink"),
		OutputDir: v.GetString("export.output_dir"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
		Prefix:    v.GetString("s3.prefix"),
	}

	return cfg, nil
}
