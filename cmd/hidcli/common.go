package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/srg/hidrd/pkg/hid"
	"github.com/srg/hidrd/pkg/hidconfig"
)

// loadConfig resolves hidrd's runtime Config: --config's YAML file if set,
// otherwise the struct-tag defaults.
func loadConfig(cmd *cobra.Command) (*hidconfig.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return hidconfig.DefaultConfig(), nil
	}
	return hidconfig.Load(path)
}

// openLibrary resolves the Usage Table directory from --hut-dir, falling
// back to the loaded Config's HUTDir, configures a logger from Config plus
// the logging flags, and opens a hid.Library bound to both.
func openLibrary(cmd *cobra.Command) (*hid.Library, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	hutDir, _ := cmd.Flags().GetString("hut-dir")
	if hutDir == "" {
		hutDir = cfg.HUTDir
	}

	logger, err := configureLogger(cmd, cfg)
	if err != nil {
		return nil, err
	}

	return hid.Open(hutDir, logger)
}

// readBytes reads path ("-" for stdin) and interprets its content as
// whitespace/comma-separated hex bytes, tolerating an optional "0x" prefix
// and a trailing comma per token (the same shape hidprint.Dump's raw column
// emits, so a previous dump's raw line can be fed back in directly).
func readBytes(path string) ([]byte, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return parseHexTokens(string(data))
}

// parseHexTokens parses a whitespace/comma-separated hex byte listing.
func parseHexTokens(s string) ([]byte, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ','
	})
	out := make([]byte, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimPrefix(strings.TrimPrefix(f, "0x"), "0X")
		if f == "" {
			continue
		}
		v, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid hex byte %q: %w", f, err)
		}
		out = append(out, byte(v))
	}
	return out, nil
}
