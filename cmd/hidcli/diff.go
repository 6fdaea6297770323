package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var diffCmd = &cobra.Command{
	Use:   "diff <a> <b>",
	Short: "Diff two descriptor dumps, or two arbitrary text files with --text",
	Long: `Parses a and b as report descriptors, renders each with the same
"raw // human" listing parse uses, and prints a unified diff of the two
listings. Pass --text to diff a and b as plain text instead (e.g. two
saved "hidcli decode" outputs).

Examples:
  hidcli diff mouse-v1.rdesc mouse-v2.rdesc
  hidcli diff --text report-before.json report-after.json`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

var diffAsText bool

func init() {
	diffCmd.Flags().BoolVar(&diffAsText, "text", false, "Treat a and b as plain text rather than report descriptors")
}

func runDiff(cmd *cobra.Command, args []string) error {
	var before, after string

	if diffAsText {
		a, err := readFile(args[0])
		if err != nil {
			return err
		}
		b, err := readFile(args[1])
		if err != nil {
			return err
		}
		before, after = a, b
	} else {
		lib, err := openLibrary(cmd)
		if err != nil {
			return err
		}

		a, err := readBytes(args[0])
		if err != nil {
			return err
		}
		b, err := readBytes(args[1])
		if err != nil {
			return err
		}

		modelA, err := lib.ParseDescriptor(a)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}
		modelB, err := lib.ParseDescriptor(b)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", args[1], err)
		}
		before, after = lib.DumpText(modelA), lib.DumpText(modelB)
	}
	cmd.SilenceUsage = true

	if before == after {
		fmt.Fprintln(cmd.OutOrStdout(), "no differences")
		return nil
	}

	edits := myers.ComputeEdits("", before, after)
	unified := gotextdiff.ToUnified(args[0], args[1], before, edits)
	printUnifiedDiff(cmd.OutOrStdout(), fmt.Sprint(unified))
	return nil
}

// readFile reads path ("-" for stdin) as plain text, unlike readBytes which
// interprets its content as hex.
func readFile(path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// printUnifiedDiff writes diff to w, colorizing +/- lines the way
// internal/testutils.TextAsserter does when w is a terminal.
func printUnifiedDiff(w io.Writer, diff string) {
	enable := false
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		enable = true
	}
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)
	for _, c := range []*color.Color{red, green, cyan, yellow} {
		if enable {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++"):
			fmt.Fprintln(w, yellow.Sprint(line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprintln(w, cyan.Sprint(line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprintln(w, red.Sprint(line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprintln(w, green.Sprint(line))
		default:
			fmt.Fprintln(w, line)
		}
	}
}
