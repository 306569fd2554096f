// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cilium/ipmerge/ipmerge/cmd/merge"
	"github.com/cilium/ipmerge/ipmerge/cmd/parse"
	"github.com/cilium/ipmerge/ipmerge/cmd/serve"
	"github.com/cilium/ipmerge/pkg/defaults"
	"github.com/cilium/ipmerge/pkg/logging"
	"github.com/cilium/ipmerge/pkg/logging/logfields"
)

// Version is the ipmerge version, overridden at link time.
var Version = "0.1.0-dev"

const (
	keyConfig    = "config"
	keyDebug     = "debug"
	keyLogFormat = "log-format"
	keyLogLevel  = "log-level"
	keyLogFile   = "log-file"
)

// New creates a new ipmerge command.
func New() *cobra.Command {
	vp := newViper()
	rootCmd := &cobra.Command{
		Use:          "ipmerge",
		Short:        "ipmerge parses and merges CIDR address blocks",
		Long:         "ipmerge parses, normalizes and merges IPv4 and IPv6 CIDR address blocks.",
		SilenceUsage: true,
		Version:      Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(vp, cmd.Flags().Changed(keyConfig))
		},
	}
	flags := rootCmd.PersistentFlags()
	addGlobalFlags(flags)
	vp.BindPFlags(flags)

	rootCmd.AddCommand(
		parse.New(),
		merge.New(),
		serve.New(vp),
	)
	rootCmd.SetVersionTemplate("{{with .Name}}{{printf \"%s \" .}}{{end}}{{printf \"v%s\" .Version}}\n")
	return rootCmd
}

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.String(keyConfig, defaults.ConfigFilePath, "Path to the configuration file")
	flags.BoolP(keyDebug, "D", false, "Enable debug messages")
	flags.String(keyLogFormat, string(logging.DefaultLogFormat), "Log format, one of text, text-ts, json, json-ts")
	flags.String(keyLogLevel, logging.DefaultLogLevel.String(), "Log level")
	flags.String(keyLogFile, "", "Also write logs to this file, rotating it when it grows too large")
}

func newViper() *viper.Viper {
	vp := viper.New()
	vp.SetEnvPrefix(defaults.EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vp.AutomaticEnv()
	return vp
}

// setupLogging loads the configuration file and configures logging from
// the resulting settings. A missing configuration file is only an error
// if its path was given explicitly.
func setupLogging(vp *viper.Viper, explicitConfig bool) error {
	logger := logging.DefaultLogger.WithField(logfields.LogSubsys, "ipmerge")

	// The debug flag or environment variable is checked before reading the
	// configuration file so that a read failure is logged at debug level.
	logging.ConfigureLogLevel(vp.GetBool(keyDebug))

	configFile := vp.GetString(keyConfig)
	vp.SetConfigFile(configFile)
	if err := vp.ReadInConfig(); err != nil {
		if explicitConfig {
			return fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		logger.WithError(err).Debugf("Failed to read config from file '%s'", configFile)
	}

	logging.SetupLogging(logging.LogOptions{
		logging.FormatOpt: vp.GetString(keyLogFormat),
		logging.LevelOpt:  vp.GetString(keyLogLevel),
		logging.FileOpt:   vp.GetString(keyLogFile),
	}, vp.GetBool(keyDebug))
	return nil
}
