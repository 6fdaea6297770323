package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/srg/hidrd/internal/hiddecode"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <descriptor-file> <payload-hex>",
	Short: "Decode a raw report payload against a parsed descriptor",
	Long: `Parses a descriptor and decodes a single report payload against it,
printing one JSON object per field.

Examples:
  hidcli decode mouse.rdesc "01 0a f6"
  hidcli decode mouse.rdesc "01 0a f6" --diff expected.json`,
	Args: cobra.ExactArgs(2),
	RunE: runDecode,
}

var decodeDiffFile string

func init() {
	decodeCmd.Flags().StringVar(&decodeDiffFile, "diff", "", "Compare the decoded fields against a JSON fixture and print a diff instead of the raw decode")
}

func runDecode(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary(cmd)
	if err != nil {
		return err
	}

	descriptor, err := readBytes(args[0])
	if err != nil {
		return err
	}
	payload, err := parseHexTokens(args[1])
	if err != nil {
		return err
	}

	model, err := lib.ParseDescriptor(descriptor)
	if err != nil {
		return fmt.Errorf("parsing descriptor: %w", err)
	}

	fields, reportID, err := lib.Decode(model, payload)
	if err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}
	cmd.SilenceUsage = true

	actual := map[string]any{
		"report_id": reportID,
		"fields":    fields,
	}

	if decodeDiffFile == "" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(actual)
	}
	return printDecodeDiff(cmd, decodeDiffFile, actual)
}

// printDecodeDiff compares actual against the JSON fixture at expectedPath
// and prints an ASCII diff (same gojsondiff/formatter pipeline
// internal/testutils's JSONAsserter uses) or confirms a match.
func printDecodeDiff(cmd *cobra.Command, expectedPath string, actual map[string]any) error {
	expectedBytes, err := os.ReadFile(expectedPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", expectedPath, err)
	}

	actualBytes, err := json.Marshal(actual)
	if err != nil {
		return fmt.Errorf("marshaling decoded fields: %w", err)
	}

	differ := gojsondiff.New()
	diff, err := differ.Compare(expectedBytes, actualBytes)
	if err != nil {
		return fmt.Errorf("comparing JSON: %w", err)
	}

	if !diff.Modified() {
		fmt.Fprintln(cmd.OutOrStdout(), "no differences")
		return nil
	}

	var expected map[string]any
	if err := json.Unmarshal(expectedBytes, &expected); err != nil {
		return fmt.Errorf("parsing %s: %w", expectedPath, err)
	}

	f := formatter.NewAsciiFormatter(expected, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       true,
	})
	diffString, err := f.Format(diff)
	if err != nil {
		return fmt.Errorf("formatting diff: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), diffString)
	return hiddecode.ErrDiffMismatch
}
