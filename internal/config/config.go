package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileName is the name of the configuration file looked up by Load
const FileName = "nadeconv.cfg.json"

// EnvFileName is an optional dotenv file next to the configuration file.
// Variables already set in the environment win over it.
const EnvFileName = ".env"

// OutputConfig holds document writer settings
type OutputConfig struct {
	Compress bool `json:"compress" mapstructure:"compress"`
	Indent   int  `json:"indent" mapstructure:"indent"`
}

// DatabaseConfig holds settings of the optional run database
type DatabaseConfig struct {
	Enabled  bool   `json:"enabled" mapstructure:"enabled"`
	Type     string `json:"type" mapstructure:"type"` // "sqlite" or "postgres"
	Path     string `json:"path" mapstructure:"path"`
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// OTelConfig holds OpenTelemetry metric settings
type OTelConfig struct {
	Enabled        bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName    string        `json:"serviceName" mapstructure:"serviceName"`
	ExportInterval time.Duration `json:"exportInterval" mapstructure:"exportInterval"`
	OutputPath     string        `json:"outputPath" mapstructure:"outputPath"`
	Endpoint       string        `json:"endpoint" mapstructure:"endpoint"` // OTLP/HTTP traces
}

// setDefaults registers every known key so that environment overrides work
// for keys missing from the file.
func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")

	viper.SetDefault("input.format", "auto")

	viper.SetDefault("output.compress", false)
	viper.SetDefault("output.indent", 4)

	viper.SetDefault("mono.outputDir", "mono")
	viper.SetDefault("mono.fileName", "mono.json")
	viper.SetDefault("primordial.outputDir", "primordial")
	viper.SetDefault("kidua.outputDir", "kidua")
	viper.SetDefault("kidua.fileName", "lineups.json")
	viper.SetDefault("kidua.splitByMap", false)

	viper.SetDefault("db.enabled", false)
	viper.SetDefault("db.type", "sqlite")
	viper.SetDefault("db.path", "nadeconv.db")
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "nadeconv")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "nadeconv")
	viper.SetDefault("influx.bucket", "conversions")
	viper.SetDefault("influx.backupPath", "")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "nadeconv")
	viper.SetDefault("otel.exportInterval", "10s")
	viper.SetDefault("otel.outputPath", "")
	viper.SetDefault("otel.endpoint", "")
}

// Load sets default values, enables NADECONV_ environment overrides (including
// those from an optional .env file) and reads the JSON config file from
// configDir. Defaults stay in effect when the file cannot be read.
func Load(configDir string) error {
	setDefaults()

	if err := godotenv.Load(filepath.Join(configDir, EnvFileName)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error reading env file: %w", err)
	}

	viper.SetEnvPrefix("nadeconv")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetOutputConfig returns the document writer configuration
func GetOutputConfig() OutputConfig {
	return OutputConfig{
		Compress: viper.GetBool("output.compress"),
		Indent:   viper.GetInt("output.indent"),
	}
}

// GetDatabaseConfig returns the run database configuration
func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Enabled:  viper.GetBool("db.enabled"),
		Type:     viper.GetString("db.type"),
		Path:     viper.GetString("db.path"),
		Host:     viper.GetString("db.host"),
		Port:     viper.GetString("db.port"),
		Username: viper.GetString("db.username"),
		Password: viper.GetString("db.password"),
		Database: viper.GetString("db.database"),
	}
}

// GetOTelConfig returns the OpenTelemetry configuration
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:        viper.GetBool("otel.enabled"),
		ServiceName:    viper.GetString("otel.serviceName"),
		ExportInterval: viper.GetDuration("otel.exportInterval"),
		OutputPath:     viper.GetString("otel.outputPath"),
		Endpoint:       viper.GetString("otel.endpoint"),
	}
}

// OutputDir returns the configured output directory of a target format
func OutputDir(format string) string {
	return viper.GetString(format + ".outputDir")
}
