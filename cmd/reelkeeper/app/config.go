package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultStorageFile is used when no storage file is configured.
const DefaultStorageFile = "movies.json"

// Config holds the application configuration loaded from flags, environment
// variables, .env files, and the optional config file.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Storage
	File string

	// Lookup API
	OMDbAPIKey string

	// Website defaults
	SiteTitle string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by cobra)
// 2. Environment variables (REELKEEPER_*, OMDB_API_KEY)
// 3. .env files
// 4. Config file (~/.reelkeeper.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first so Viper's env binding sees them.
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix("REELKEEPER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// The OMDb key is conventionally unprefixed.
	_ = v.BindEnv("omdb_api_key", "OMDB_API_KEY", "REELKEEPER_OMDB_API_KEY")

	if configFile := os.Getenv("REELKEEPER_CONFIG"); configFile != "" {
		v.SetConfigFile(configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".reelkeeper")
	}

	// A missing config file is fine.
	_ = v.ReadInConfig()

	config := &Config{
		ConfigFile: v.ConfigFileUsed(),

		File:       v.GetString("file"),
		OMDbAPIKey: v.GetString("omdb_api_key"),
		SiteTitle:  v.GetString("site_title"),

		LogLevel:  envOrDefault("LOG_LEVEL", ""),
		LogFormat: envOrDefault("LOG_FORMAT", "auto"),
		LogOutput: envOrDefault("LOG_OUTPUT", "stderr"),
	}

	if config.File == "" {
		config.File = DefaultStorageFile
	}

	return config, nil
}

// loadEnvFiles loads .env files from the current directory. Values already
// present in the environment win.
func loadEnvFiles() {
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err == nil {
			_ = godotenv.Load(file)
		}
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
