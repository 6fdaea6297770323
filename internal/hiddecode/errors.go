package hiddecode

import (
	"errors"
	"fmt"
)

// ErrDiffMismatch is returned by callers comparing a decode against an
// expected fixture (see cmd/hidcli's decode --diff) to signal a non-zero
// exit without itself being a decode failure.
var ErrDiffMismatch = errors.New("hiddecode: decoded output does not match expected fixture")

// UnresolvedReportError means no declared report matched the payload's
// report ID and size. It is never fatal to a stream: callers should skip
// the event and keep decoding subsequent ones.
type UnresolvedReportError struct {
	ReportID    int16
	PayloadSize int
}

func (e *UnresolvedReportError) Error() string {
	return fmt.Sprintf("hiddecode: no report matches id=%d size=%d", e.ReportID, e.PayloadSize)
}
