/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnview/internal/iofs"
	"github.com/gnames/gnview/internal/iologger"
	app "github.com/gnames/gnview/pkg"
	"github.com/gnames/gnview/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gnview",
		Short:   "GNview manages PostgreSQL views and materialized views",
		Long: `GNview creates, replaces, drops, refreshes and redefines views and
materialized views of a PostgreSQL database.

Materialized views can be refreshed together with materialized views they
depend on (--cascade), concurrently so they stay readable (--concurrently),
and redefined side by side, building the new version under a temporary name
before swapping it in (--side-by-side).

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNVIEW_*)
  3. Config file (~/.config/gnview/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (database.host -> GNVIEW_DATABASE_HOST).
  Examples:
    GNVIEW_DATABASE_HOST            PostgreSQL host
    GNVIEW_DATABASE_PORT            PostgreSQL port
    GNVIEW_DATABASE_USER            PostgreSQL user
    GNVIEW_DATABASE_PASSWORD        PostgreSQL password
    GNVIEW_DATABASE_DATABASE        Database name
    GNVIEW_LOG_LEVEL                Log level (debug/info/warn/error)
    GNVIEW_VIEW_SIDE_BY_SIDE        Default for --side-by-side`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gnview version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnview")

	rootCmd.AddCommand(
		getViewsCmd(),
		getCreateCmd(),
		getReplaceCmd(),
		getDropCmd(),
		getRefreshCmd(),
		getUpdateCmd(),
		getPopulatedCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are
	// allowed. These match the fields included in config.ToOptions().
	v.SetEnvPrefix("GNVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.host", "GNVIEW_DATABASE_HOST")
	v.BindEnv("database.port", "GNVIEW_DATABASE_PORT")
	v.BindEnv("database.user", "GNVIEW_DATABASE_USER")
	v.BindEnv("database.password", "GNVIEW_DATABASE_PASSWORD")
	v.BindEnv("database.database", "GNVIEW_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "GNVIEW_DATABASE_SSL_MODE")

	// Log configuration
	v.BindEnv("log.level", "GNVIEW_LOG_LEVEL")
	v.BindEnv("log.format", "GNVIEW_LOG_FORMAT")
	v.BindEnv("log.destination", "GNVIEW_LOG_DESTINATION")

	// View defaults
	v.BindEnv("view.definitions_dir", "GNVIEW_VIEW_DEFINITIONS_DIR")
	v.BindEnv("view.concurrently", "GNVIEW_VIEW_CONCURRENTLY")
	v.BindEnv("view.cascade", "GNVIEW_VIEW_CASCADE")
	v.BindEnv("view.side_by_side", "GNVIEW_VIEW_SIDE_BY_SIDE")

	v.AutomaticEnv()
}
