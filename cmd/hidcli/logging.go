package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/srg/hidrd/pkg/hidconfig"
)

// configureLogger builds a logger starting from cfg.NewLogger (cfg.LogLevel
// as the base), then applies the --log-level/--verbose persistent flags as
// overrides, --log-level taking precedence over --verbose. cfg's own
// default level is "info"; the CLI narrows that to "warn" when neither flag
// nor config file says otherwise, so parse/decode output stays clean unless
// the user asks for diagnostics.
func configureLogger(cmd *cobra.Command, cfg *hidconfig.Config) (*logrus.Logger, error) {
	logger := cfg.NewLogger()
	if cfg.LogLevel == "" || cfg.LogLevel == "info" {
		logger.SetLevel(logrus.WarnLevel)
	}

	logLevelStr, _ := cmd.Flags().GetString("log-level")
	if logLevelStr != "" {
		parsed, err := logrus.ParseLevel(logLevelStr)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", logLevelStr)
		}
		logger.SetLevel(parsed)
	} else if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger, nil
}
