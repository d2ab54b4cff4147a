// FILE: dobrawek/drlogger/record.go
package drlogger

import (
	"fmt"
	"time"
)

// Record is a single log event as delivered to listeners
type Record struct {
	Time    time.Time
	Level   Level
	Tag     string
	Message string
	Err     error  // Optional error detail, rendered after the message
	TraceID string // Set when the record was logged with a span in context
}

// prepareMessage renders "tag: message", the trace id and the error detail
func prepareMessage(buf []byte, tag, message, traceID string, err error) []byte {
	if tag != "" {
		buf = append(buf, tag...)
		buf = append(buf, ':', ' ')
	}
	buf = append(buf, message...)
	if traceID != "" {
		buf = append(buf, " trace_id="...)
		buf = append(buf, traceID...)
	}
	if err != nil {
		buf = append(buf, '\n')
		buf = fmt.Appendf(buf, "%+v", err)
	}
	if n := len(buf); n == 0 || buf[n-1] != '\n' {
		buf = append(buf, '\n')
	}
	return buf
}

// appendLine renders a record as "HH:mm:ss.SSS [LEVEL] tag: message"
func appendLine(buf []byte, r Record, tag string) []byte {
	buf = r.Time.AppendFormat(buf, timeLayout)
	buf = append(buf, ' ', '[')
	buf = append(buf, r.Level.String()...)
	buf = append(buf, ']', ' ')
	return prepareMessage(buf, tag, r.Message, r.TraceID, r.Err)
}
