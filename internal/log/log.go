// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a line handler on stderr and a log level
// from the EXTKIT_LOG env variable. Diagnostics go to stderr so piped
// command output stays clean.
func InitLogger() {
	level := strings.ToUpper(os.Getenv("EXTKIT_LOG"))
	if level == "" {
		level = "ERROR"
	}
	log.SetHandler(&LineHandler{Out: os.Stderr})
	log.SetLevelFromString(level)
}

// LineHandler writes one timestamped line per entry, with any fields
// appended as key=value pairs.
type LineHandler struct {
	Out io.Writer
}

// HandleLog implements the log.Handler interface.
func (h *LineHandler) HandleLog(e *log.Entry) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %.1s %s",
		time.Now().Format("2006-01-02 15:04:05"),
		strings.ToUpper(e.Level.String()),
		e.Message)
	for _, f := range e.Fields.Names() {
		fmt.Fprintf(&b, " %s=%v", f, e.Fields.Get(f))
	}
	fmt.Fprintln(h.Out, b.String())
	return nil
}
