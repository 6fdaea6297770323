package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var usageCmd = &cobra.Command{
	Use:   "usage <page> [usage-id]",
	Short: "Look up a Usage Table page or usage name",
	Long: `Looks up a usage page's name, or (with a second argument) one usage
id's name within that page. Both arguments accept decimal or 0x-prefixed
hex.

Examples:
  hidcli usage 0x01
  hidcli usage 0x01 0x30
  hidcli usage 9 1      # decimal input: Button page, usage 1`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runUsage,
}

func runUsage(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary(cmd)
	if err != nil {
		return err
	}

	page, err := parseUsageNumber(args[0])
	if err != nil {
		return fmt.Errorf("invalid page %q: %w", args[0], err)
	}
	cmd.SilenceUsage = true

	pageName, ok := lib.Usages().PageName(uint16(page))
	if !ok {
		pageName = fmt.Sprintf("0x%04x", page)
	}

	if len(args) == 1 {
		fmt.Fprintf(cmd.OutOrStdout(), "page 0x%04x: %s\n", page, pageName)
		return nil
	}

	id, err := parseUsageNumber(args[1])
	if err != nil {
		return fmt.Errorf("invalid usage id %q: %w", args[1], err)
	}
	combined := (page << 16) | (id & 0xFFFF)
	usageName, ok := lib.Usages().UsageName(combined)
	if !ok {
		usageName = fmt.Sprintf("0x%04x", id)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "page 0x%04x (%s), usage 0x%04x: %s\n", page, pageName, id, usageName)
	return nil
}

// parseUsageNumber parses a decimal or 0x-prefixed hex page/usage id.
func parseUsageNumber(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
