// Package commands defines the elevbench command tree.
package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kmorling/elevbench/internal/appconfig"
	"github.com/kmorling/elevbench/internal/logging"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "elevbench",
	Short: "Performance and accuracy harness for elevation-lookup services",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// Schema-validate the raw document when a config file exists.
		if path := viper.ConfigFileUsed(); path != "" {
			if _, statErr := os.Stat(path); statErr == nil {
				if _, err := appconfig.Load(path); err != nil {
					return err
				}
			}
		}

		for _, name := range []string{"debug", "quiet"} {
			if !cmd.Flags().Changed(name) {
				val := viper.GetBool(name)
				_ = cmd.Flags().Set(name, strconv.FormatBool(val))
			}
		}
		for _, name := range []string{"url", "container", "dataDir", "cacheFile", "logFile"} {
			if !cmd.Flags().Changed(name) {
				_ = cmd.Flags().Set(name, viper.GetString(viperKey(name)))
			}
		}
		for _, name := range []string{"tiles", "requests", "duration", "concurrency", "timeout"} {
			if !cmd.Flags().Changed(name) {
				_ = cmd.Flags().Set(name, strconv.Itoa(viper.GetInt(name)))
			}
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// viperKey maps a flag name to its config key where they differ.
func viperKey(flag string) string {
	if flag == "url" {
		return "serviceUrl"
	}
	return flag
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().String("url", "http://localhost:8080", "elevation service base URL")
	rootCmd.PersistentFlags().String("container", "htg-bench", "docker container name for memory sampling")
	rootCmd.PersistentFlags().Int("tiles", 100, "tile count for cache warm-up phases")
	rootCmd.PersistentFlags().Int("requests", 1000, "request count for latency probing")
	rootCmd.PersistentFlags().Int("duration", 10, "throughput measurement window in seconds")
	rootCmd.PersistentFlags().Int("concurrency", 10, "concurrent workers during throughput measurement")
	rootCmd.PersistentFlags().Int("timeout", 30, "per-request HTTP timeout in seconds")
	rootCmd.PersistentFlags().String("dataDir", "elevbenchData", "directory for results and the reference cache")
	rootCmd.PersistentFlags().String("cacheFile", "", "reference-API cache file (defaults under dataDir)")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")
	rootCmd.PersistentFlags().Bool("quiet", false, "disable the progress display")

	_ = viper.BindPFlag("serviceUrl", rootCmd.PersistentFlags().Lookup("url"))
	_ = viper.BindPFlag("container", rootCmd.PersistentFlags().Lookup("container"))
	_ = viper.BindPFlag("tiles", rootCmd.PersistentFlags().Lookup("tiles"))
	_ = viper.BindPFlag("requests", rootCmd.PersistentFlags().Lookup("requests"))
	_ = viper.BindPFlag("duration", rootCmd.PersistentFlags().Lookup("duration"))
	_ = viper.BindPFlag("concurrency", rootCmd.PersistentFlags().Lookup("concurrency"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("dataDir", rootCmd.PersistentFlags().Lookup("dataDir"))
	_ = viper.BindPFlag("cacheFile", rootCmd.PersistentFlags().Lookup("cacheFile"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

// initConfig reads in the config file if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config and tolerates a missing default file.
func ensureConfigLoaded() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if os.IsNotExist(err) && cfgFile == appconfig.DefaultConfigPath {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded harness configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// QuietEnabled returns true if the progress display is disabled.
func QuietEnabled() bool { return viper.GetBool("quiet") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
