package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"unicode"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func formatVersion(ver string) string {
	if len(ver) > 0 && unicode.IsDigit(rune(ver[0])) {
		return "v" + ver
	}
	return ver
}

var rootCmd = &cobra.Command{
	Use:   "hidcli",
	Short: "USB HID report descriptor and report decoding tool",
	Long: `hidcli parses USB HID report descriptors and decodes raw reports
against them.

- parse a report descriptor into its raw/human-readable listing
- decode a raw report payload into per-field values
- replay a captured R:/E:/N:/P:/I: debug transcript end to end
- diff two descriptor dumps or two decoded reports
- look up Usage Table page/usage names

Built for offline analysis of captured descriptors and report traces; it
never opens a device or a kernel interface itself.`,
	Version: formatVersion(version),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", FormatUserError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(replayCmd)

	rootCmd.PersistentFlags().String("config", "", "Path to a hidconfig YAML file (unset uses built-in defaults)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error), overriding the config file's")
	rootCmd.PersistentFlags().String("hut-dir", "", "Directory of .hut Usage Table files, overriding the config file's")
	rootCmd.PersistentFlags().Bool("verbose", false, "Shorthand for --log-level debug")

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")
}
