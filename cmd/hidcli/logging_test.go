package main

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srg/hidrd/pkg/hidconfig"
)

func TestConfigureLogger_DefaultsToWarn(t *testing.T) {
	logger, err := configureLogger(rootCmd, hidconfig.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
}

func TestConfigureLogger_ConfigLevelIsRespectedWhenNotInfo(t *testing.T) {
	cfg := hidconfig.DefaultConfig()
	cfg.LogLevel = "error"
	logger, err := configureLogger(rootCmd, cfg)
	require.NoError(t, err)
	assert.Equal(t, logrus.ErrorLevel, logger.GetLevel())
}

func TestConfigureLogger_VerboseFlagWinsOverConfig(t *testing.T) {
	rootCmd.PersistentFlags().Set("verbose", "true")
	defer rootCmd.PersistentFlags().Set("verbose", "false")

	logger, err := configureLogger(rootCmd, hidconfig.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestConfigureLogger_LogLevelFlagWinsOverVerbose(t *testing.T) {
	rootCmd.PersistentFlags().Set("verbose", "true")
	rootCmd.PersistentFlags().Set("log-level", "error")
	defer rootCmd.PersistentFlags().Set("verbose", "false")
	defer rootCmd.PersistentFlags().Set("log-level", "")

	logger, err := configureLogger(rootCmd, hidconfig.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, logrus.ErrorLevel, logger.GetLevel())
}

func TestConfigureLogger_InvalidLogLevelErrors(t *testing.T) {
	rootCmd.PersistentFlags().Set("log-level", "not-a-level")
	defer rootCmd.PersistentFlags().Set("log-level", "")

	_, err := configureLogger(rootCmd, hidconfig.DefaultConfig())
	assert.Error(t, err)
}
