package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <descriptor-file>",
	Short: "Parse a report descriptor and print its raw/human-readable listing",
	Long: `Parses a raw HID report descriptor (whitespace/comma-separated hex
bytes, "-" for stdin) and prints one "raw // human" line per item.

Examples:
  hidcli parse mouse.rdesc
  cat mouse.rdesc | hidcli parse -
  hidcli parse mouse.rdesc --kernel`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

var parseKernelFormat bool

func init() {
	parseCmd.Flags().BoolVar(&parseKernelFormat, "kernel", false, "Print the Linux-kernel hid-rdesc C comment format instead")
}

func runParse(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary(cmd)
	if err != nil {
		return err
	}

	descriptor, err := readBytes(args[0])
	if err != nil {
		return err
	}

	model, err := lib.ParseDescriptor(descriptor)
	if err != nil {
		return fmt.Errorf("parsing descriptor: %w", err)
	}
	cmd.SilenceUsage = true

	out := cmd.OutOrStdout()
	if parseKernelFormat {
		fmt.Fprint(out, lib.DumpKernel(model))
	} else {
		lib.DumpColor(out, model, false)
	}

	if info := lib.Describe(model); info.Win8Certified {
		fmt.Fprintln(out, "**** win 8 certified ****")
	}
	return nil
}
