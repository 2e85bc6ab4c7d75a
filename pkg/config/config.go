// Package config provides configuration management for GNview.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode
//   - Log: level, format, destination
//   - View: definitions_dir, concurrently, cascade, side_by_side
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNVIEW_ prefix with underscores for nesting:
//
//	GNVIEW_DATABASE_HOST=localhost
//	GNVIEW_DATABASE_PORT=5432
//	GNVIEW_LOG_LEVEL=info
//	GNVIEW_VIEW_SIDE_BY_SIDE=true
package config

// Config represents the complete GNview configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// View contains defaults for view lifecycle commands.
	View ViewConfig `mapstructure:"view" yaml:"view"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// ViewConfig keeps defaults of view lifecycle commands. Command flags
// override them.
type ViewConfig struct {
	// DefinitionsDir is where versioned definition files
	// (<name>_v<NN>.sql) are looked up.
	DefinitionsDir string `mapstructure:"definitions_dir" yaml:"definitions_dir"`

	// Concurrently makes refresh use REFRESH ... CONCURRENTLY when possible.
	Concurrently bool `mapstructure:"concurrently" yaml:"concurrently"`

	// Cascade makes refresh update upstream materialized views first.
	Cascade bool `mapstructure:"cascade" yaml:"cascade"`

	// SideBySide makes update build the new materialized view under a
	// temporary name and swap it in.
	SideBySide bool `mapstructure:"side_by_side" yaml:"side_by_side"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "postgres",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		View: ViewConfig{
			DefinitionsDir: DefaultDefinitionsDir,
		},
	}

	return res
}
