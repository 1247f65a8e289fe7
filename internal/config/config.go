package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeServer = "server"
	ModeWatch  = "watch"

	// Environment constants
	EnvDev  = "dev"
	EnvProd = "prod"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultTolerance   = "±0.10"

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the dimension extraction service
type Config struct {
	// Server configuration
	Mode string // "server" or "watch"
	Host string
	Port int

	// Drawing configuration
	DrawingsDirectory string
	ExportDirectory   string

	// History configuration
	DatabasePath string // empty disables the extraction history store

	// Extraction configuration
	DefaultTolerance string // applied when a callout carries no tolerance
	IncludePageRefs  bool   // include page references in exports by default
	MaxFileSize      int64  // Maximum drawing file size in bytes

	// Application configuration
	Version  string
	AppName  string
	Env      string // "dev" or "prod"
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		Mode:              ModeServer,
		Host:              DefaultHost,
		Port:              DefaultPort,
		DrawingsDirectory: currentDir,
		ExportDirectory:   filepath.Join(currentDir, "exports"),
		DatabasePath:      "dimsheet.db",
		DefaultTolerance:  DefaultTolerance,
		IncludePageRefs:   true,
		MaxFileSize:       DefaultMaxFileSize,
		Version:           "1.0.0",
		AppName:           "dimsheet",
		Env:               EnvDev,
		LogLevel:          DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
// A .env file in the working directory is loaded first so its variables
// participate in the environment lookup.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	// Missing .env is fine; environment and flags still apply
	_ = godotenv.Load()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.DrawingsDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.DrawingsDirectory); err == nil {
			cfg.DrawingsDirectory = expandedPath
		}
	}
	if cfg.ExportDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.ExportDirectory); err == nil {
			cfg.ExportDirectory = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("DIMSHEET")
	viper.AutomaticEnv()

	// Define flags with Viper
	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("dir", cfg.DrawingsDirectory)
	viper.SetDefault("exportdir", cfg.ExportDirectory)
	viper.SetDefault("db", cfg.DatabasePath)
	viper.SetDefault("tolerance", cfg.DefaultTolerance)
	viper.SetDefault("pages", cfg.IncludePageRefs)
	viper.SetDefault("env", cfg.Env)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'server' for the browser interface, 'watch' to process a drawings directory")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("dir", cfg.DrawingsDirectory, "Directory containing drawing PDFs")
	pflag.String("exportdir", cfg.ExportDirectory, "Directory spreadsheets are written to (watch mode)")
	pflag.String("db", cfg.DatabasePath, "SQLite path for the extraction history (empty disables history)")
	pflag.String("tolerance", cfg.DefaultTolerance, "Default tolerance applied when a callout carries none")
	pflag.Bool("pages", cfg.IncludePageRefs, "Include page references in exports by default")
	pflag.String("env", cfg.Env, "Environment: 'dev' or 'prod'")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum drawing file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("exportdir", pflag.Lookup("exportdir"))
	_ = viper.BindPFlag("db", pflag.Lookup("db"))
	_ = viper.BindPFlag("tolerance", pflag.Lookup("tolerance"))
	_ = viper.BindPFlag("pages", pflag.Lookup("pages"))
	_ = viper.BindPFlag("env", pflag.Lookup("env"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\ndimsheet - Extract dimensional callouts from 2D engineering drawings\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                          "+
			"# browser interface on 127.0.0.1:8080 (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --host=0.0.0.0 --port=8081               # serve on all interfaces\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=watch --dir=/drawings             # process a drawings directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --db=\"\"                                  # run without extraction history\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  DIMSHEET_MODE         Run mode\n")
		fmt.Fprintf(os.Stderr, "  DIMSHEET_HOST         Server host\n")
		fmt.Fprintf(os.Stderr, "  DIMSHEET_PORT         Server port\n")
		fmt.Fprintf(os.Stderr, "  DIMSHEET_DIR          Drawings directory\n")
		fmt.Fprintf(os.Stderr, "  DIMSHEET_EXPORTDIR    Export directory\n")
		fmt.Fprintf(os.Stderr, "  DIMSHEET_DB           History database path\n")
		fmt.Fprintf(os.Stderr, "  DIMSHEET_TOLERANCE    Default tolerance\n")
		fmt.Fprintf(os.Stderr, "  DIMSHEET_PAGES        Include page references\n")
		fmt.Fprintf(os.Stderr, "  DIMSHEET_ENV          Environment (dev, prod)\n")
		fmt.Fprintf(os.Stderr, "  DIMSHEET_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  DIMSHEET_MAXFILESIZE  Maximum file size\n")
		fmt.Fprintf(os.Stderr, "\nA .env file in the working directory is loaded when present.\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.DrawingsDirectory = viper.GetString("dir")
	cfg.ExportDirectory = viper.GetString("exportdir")
	cfg.DatabasePath = viper.GetString("db")
	cfg.DefaultTolerance = viper.GetString("tolerance")
	cfg.IncludePageRefs = viper.GetBool("pages")
	cfg.Env = viper.GetString("env")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate mode
	if c.Mode != ModeServer && c.Mode != ModeWatch {
		return errors.New("mode must be either 'server' or 'watch'")
	}

	// Validate port range (only for server mode)
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	// Validate drawings directory
	if c.DrawingsDirectory == "" {
		return errors.New("drawings directory cannot be empty")
	}

	// Check if drawings directory exists, create if it doesn't
	if _, err := os.Stat(c.DrawingsDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.DrawingsDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create drawings directory %s: %w", c.DrawingsDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access drawings directory %s: %w", c.DrawingsDirectory, err)
	}

	// Watch mode writes spreadsheets, so its export directory must exist
	if c.Mode == ModeWatch {
		if c.ExportDirectory == "" {
			return errors.New("export directory cannot be empty in watch mode")
		}
		if _, err := os.Stat(c.ExportDirectory); os.IsNotExist(err) {
			if err := os.MkdirAll(c.ExportDirectory, DefaultDirPerm); err != nil {
				return fmt.Errorf("cannot create export directory %s: %w", c.ExportDirectory, err)
			}
		} else if err != nil {
			return fmt.Errorf("cannot access export directory %s: %w", c.ExportDirectory, err)
		}
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	// Validate default tolerance
	if c.DefaultTolerance == "" {
		return errors.New("default tolerance cannot be empty")
	}

	// Validate environment
	if c.Env != EnvDev && c.Env != EnvProd {
		return fmt.Errorf("invalid environment: %s (must be one of: dev, prod)", c.Env)
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// HistoryEnabled returns true if the extraction history store is configured
func (c *Config) HistoryEnabled() bool {
	return c.DatabasePath != ""
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, DrawingsDirectory: %s, ExportDirectory: %s, "+
		"DatabasePath: %s, DefaultTolerance: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Host, c.Port, c.DrawingsDirectory, c.ExportDirectory,
		c.DatabasePath, c.DefaultTolerance, c.LogLevel, c.MaxFileSize)
}

// IsServerMode returns true if the service runs the browser interface
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsWatchMode returns true if the service watches a drawings directory
func (c *Config) IsWatchMode() bool {
	return c.Mode == ModeWatch
}
