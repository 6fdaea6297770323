package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/srg/hidrd/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <transcript-file>",
	Short: "Stream a captured R:/E:/N:/P:/I: HID debug transcript, decoding each report",
	Long: `Reads a Linux HID debug-interface transcript ("-" for stdin): each
"R:" line's report descriptor is parsed and pretty-printed, and each
subsequent "E:" line is decoded against the most recently seen descriptor
and printed as one rendered report line.

Example:
  hidcli replay mouse.trace`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary(cmd)
	if err != nil {
		return err
	}

	var in *os.File
	if args[0] == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		in = f
	}
	cmd.SilenceUsage = true

	session := lib.NewReplaySession()
	records, errs := session.Stream(in)

	var collectErr error
	collector, err := replay.NewCollector(records, replay.MaxBufferSize, func(err error) {
		collectErr = err
	})
	if err != nil {
		return err
	}
	if err := collector.Start(); err != nil {
		return err
	}

	streamErr := <-errs
	if err := collector.Stop(); err != nil {
		return err
	}
	if collectErr != nil {
		return fmt.Errorf("replaying %s: %w", args[0], collectErr)
	}

	out := cmd.OutOrStdout()
	if _, err := replay.ConsumeRecords(collector, func(rec *replay.Record) (string, error) {
		if rec == nil {
			return "done", nil
		}
		switch rec.Kind {
		case replay.RecordDescriptor:
			fmt.Fprint(out, rec.Text)
		case replay.RecordEvent, replay.RecordPassthrough:
			fmt.Fprintln(out, rec.Text)
		}
		return "", nil
	}); err != nil {
		return fmt.Errorf("replaying %s: %w", args[0], err)
	}

	if streamErr != nil {
		return fmt.Errorf("replaying %s: %w", args[0], streamErr)
	}
	return nil
}
