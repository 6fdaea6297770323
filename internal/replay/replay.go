// Package replay streams a captured HID debug-interface transcript (the
// "R:"/"E:"/"N:"/"P:"/"I:" line format emitted by Linux's hidraw/debugfs
// report-descriptor dumps) and turns each event line into a decoded,
// human-readable report line.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/srg/hidrd/internal/hiddecode"
	"github.com/srg/hidrd/internal/hidprint"
	"github.com/srg/hidrd/internal/hidreport"
	"github.com/srg/hidrd/internal/hidusage"
)

// RecordKind distinguishes the three kinds of output a Session produces.
type RecordKind int

const (
	// RecordDescriptor is the pretty-printed dump of an "R:" line's report
	// descriptor (plus a Win8-certification banner when applicable).
	RecordDescriptor RecordKind = iota
	// RecordEvent is one decoded "E:" report line.
	RecordEvent
	// RecordPassthrough is any other line, echoed verbatim. "N:", "P:" and
	// "I:" device metadata lines are dropped by Stream and produce no Record.
	RecordPassthrough
)

// Record is one line of Session output.
type Record struct {
	Kind     RecordKind
	Time     string
	ReportID int16
	Text     string
}

// Session holds the report model parsed from the most recent "R:" line and
// decodes subsequent "E:" lines against it.
type Session struct {
	usages  *hidusage.Table
	printer *hidprint.Printer
	model   *hidreport.ReportModel
}

// NewSession builds a Session bound to usages, which must be non-nil: event
// decoding always resolves usage names through it (the descriptor-dump side
// tolerates a nil hidusage.Table, but report decoding does not).
func NewSession(usages *hidusage.Table) *Session {
	return &Session{usages: usages, printer: hidprint.New(usages)}
}

// Stream reads r line by line and returns one Record per R:/E:/passthrough
// line on the returned channel. The channel closes when r is exhausted or
// an unrecoverable descriptor parse error occurs, in which case the error is
// sent on the returned error channel before both close.
func (s *Session) Stream(r io.Reader) (<-chan Record, <-chan error) {
	records := make(chan Record)
	errs := make(chan error, 1)

	go func() {
		defer close(records)
		defer close(errs)

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case strings.HasPrefix(line, "R:"):
				if err := s.handleDescriptor(line, records); err != nil {
					errs <- err
					return
				}
			case strings.HasPrefix(line, "E:"):
				s.handleEvent(line, records)
			case strings.HasPrefix(line, "N:"), strings.HasPrefix(line, "P:"), strings.HasPrefix(line, "I:"):
				// device metadata lines carry no report data
			default:
				records <- Record{Kind: RecordPassthrough, Text: line}
			}
		}
		if err := scanner.Err(); err != nil {
			errs <- fmt.Errorf("replay: reading transcript: %w", err)
		}
	}()

	return records, errs
}

func (s *Session) handleDescriptor(line string, records chan<- Record) error {
	fields := strings.Fields(strings.TrimPrefix(line, "R:"))
	if len(fields) < 1 {
		return fmt.Errorf("replay: empty R: line")
	}
	// fields[0] is the byte count the kernel prefixes the dump with, not
	// part of the descriptor itself.
	descriptor := make([]byte, 0, len(fields)-1)
	for _, f := range fields[1:] {
		v, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return fmt.Errorf("replay: invalid R: line byte %q: %w", f, err)
		}
		descriptor = append(descriptor, byte(v))
	}
	if n := len(descriptor); n > 0 && descriptor[n-1] == 0 {
		descriptor = descriptor[:n-1]
	}

	model, err := hidreport.Parse(descriptor)
	if err != nil {
		return err
	}
	s.model = model

	dump := s.printer.Dump(model.Items())
	if model.Win8() {
		dump += "**** win 8 certified ****\n"
	}
	records <- Record{Kind: RecordDescriptor, Text: dump}
	return nil
}

func (s *Session) handleEvent(line string, records chan<- Record) {
	if s.model == nil {
		return
	}
	// "E: <time> <size> <byte> <byte> ..."
	parts := strings.SplitN(line, " ", 4)
	if len(parts) < 4 {
		return
	}
	timeStr := parts[1]

	byteFields := strings.Fields(parts[3])
	payload := make([]byte, 0, len(byteFields))
	for _, f := range byteFields {
		v, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return
		}
		payload = append(payload, byte(v))
	}

	decoded, reportID, err := hiddecode.Decode(s.model, s.usages, payload)
	if err != nil {
		return
	}
	text := RenderReport(timeStr, reportID, reportID != -1, decoded)
	records <- Record{Kind: RecordEvent, Time: timeStr, ReportID: reportID, Text: text}
}
