package logger

import (
	"strconv"
)

// maxPayload is the number of client bytes kept by Payload.
const maxPayload = 32

// Payload renders client supplied bytes for a log field. The result is
// quoted so control bytes cannot break log lines, and long input is cut to
// its first bytes followed by the total length.
func Payload(b []byte) string {
	if len(b) <= maxPayload {
		return strconv.Quote(string(b))
	}
	return strconv.Quote(string(b[:maxPayload])) + "...(" + strconv.Itoa(len(b)) + " bytes)"
}
