// Package logging emits one JSON object per line on stderr. The arena runs
// as a single binary behind a log collector, so structured lines are enough;
// no levels are filtered at runtime.
package logging

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// Fields carries the structured context attached to a log line.
type Fields map[string]interface{}

func emit(level, msg string, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	fields["level"] = level
	fields["ts"] = time.Now().UTC().Format(time.RFC3339)
	fields["msg"] = msg
	line, err := json.Marshal(fields)
	if err != nil {
		// A field that cannot marshal must not swallow the message.
		log.Printf("%s: %s (%v)\n", level, msg, fields)
		return
	}
	log.Println(string(line))
}

func Info(msg string, fields Fields) {
	emit("info", msg, fields)
}

// Error appends the error text to the fields under "error".
func Error(msg string, err error, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	emit("error", msg, fields)
}

// Fatal logs like Error and then exits the process. Reserved for startup
// failures before the router is serving.
func Fatal(msg string, err error, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	emit("fatal", msg, fields)
	os.Exit(1)
}
