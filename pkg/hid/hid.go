// Package hid is the public facade over hidrd's internal packages: load a
// Usage Table, parse a report descriptor, decode report payloads against
// it, and render either as text. It is the surface cmd/hidcli and any
// embedding application are expected to use; internal/* packages are not
// meant to be imported directly outside this module.
package hid

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/srg/hidrd/internal/hiddecode"
	"github.com/srg/hidrd/internal/hidprint"
	"github.com/srg/hidrd/internal/hidreport"
	"github.com/srg/hidrd/internal/hidusage"
	"github.com/srg/hidrd/internal/replay"
)

// DescriptorInfo is a structured, JSON-friendly summary of a parsed report
// descriptor.
type DescriptorInfo struct {
	Reports            []ReportInfo `json:"reports"`
	Win8Certified      bool         `json:"win8_certified"`
	MultitouchReportID int16        `json:"multitouch_report_id,omitempty"`
}

// ReportInfo summarizes one Report ID's field layout.
type ReportInfo struct {
	ReportID int16 `json:"report_id"`
	ByteSize int   `json:"byte_size"`
	Fields   int   `json:"field_count"`
}

// Library loads a Usage Table once and exposes parse/decode/render
// operations against it. The zero value is not usable; build one with Open.
type Library struct {
	usages  *hidusage.Table
	printer *hidprint.Printer
	logger  *logrus.Logger
}

// Open loads the .hut files in hutDir into a Usage Table and returns a
// Library bound to it. logger may be nil, in which case a default
// logrus.Logger is used.
func Open(hutDir string, logger *logrus.Logger) (*Library, error) {
	usages, err := hidusage.Load(hutDir)
	if err != nil {
		return nil, fmt.Errorf("hid: loading usage tables from %s: %w", hutDir, err)
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Library{usages: usages, printer: hidprint.New(usages), logger: logger}, nil
}

// ParseDescriptor parses a raw HID report descriptor into a ReportModel.
func (l *Library) ParseDescriptor(descriptor []byte) (*hidreport.ReportModel, error) {
	l.logger.WithField("bytes", len(descriptor)).Debug("parsing report descriptor")
	model, err := hidreport.Parse(descriptor)
	if err != nil {
		l.logger.WithError(err).Warn("report descriptor parse failed")
		return nil, err
	}
	return model, nil
}

// Describe summarizes a parsed ReportModel for structured output.
func (l *Library) Describe(model *hidreport.ReportModel) DescriptorInfo {
	entries := model.Reports()
	info := DescriptorInfo{
		Reports:            make([]ReportInfo, len(entries)),
		Win8Certified:      model.Win8(),
		MultitouchReportID: model.MultitouchReportID(),
	}
	for i, e := range entries {
		info.Reports[i] = ReportInfo{ReportID: e.ReportID, ByteSize: e.ByteSize, Fields: len(e.Fields)}
	}
	return info
}

// DumpText renders model's item stream as "raw // human" lines.
func (l *Library) DumpText(model *hidreport.ReportModel) string {
	return l.printer.Dump(model.Items())
}

// DumpColor writes model's item stream to w, colorized when w is a
// terminal (or force is true).
func (l *Library) DumpColor(w io.Writer, model *hidreport.ReportModel, force bool) {
	l.printer.DumpColor(w, model.Items(), force)
}

// DumpKernel renders model's item stream in the Linux-kernel hid-rdesc
// comment format.
func (l *Library) DumpKernel(model *hidreport.ReportModel) string {
	return l.printer.DumpKernel(model.Items())
}

// Decode decodes payload against model, resolving usage names through l's
// Usage Table.
func (l *Library) Decode(model *hidreport.ReportModel, payload []byte) ([]hiddecode.DecodedField, int16, error) {
	return hiddecode.Decode(model, l.usages, payload)
}

// NewReplaySession starts a replay.Session bound to l's Usage Table, for
// streaming a captured R:/E:/N:/P:/I: transcript.
func (l *Library) NewReplaySession() *replay.Session {
	return replay.NewSession(l.usages)
}

// Usages exposes the underlying Usage Table for callers that need direct
// page/usage name lookups.
func (l *Library) Usages() *hidusage.Table {
	return l.usages
}
