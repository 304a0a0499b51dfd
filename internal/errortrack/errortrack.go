// Package errortrack provides ErrorSink implementations. The production
// deployment points this at an external error tracker; the default just
// logs.
package errortrack

import (
	"log"

	"ppetrack/internal/port"
)

type logSink struct{}

// NewLogSink returns an ErrorSink that writes to the process log.
func NewLogSink() port.ErrorSink {
	return logSink{}
}

func (logSink) Notify(err error, msg string) {
	log.Printf("error report: %s: %v", msg, err)
}
