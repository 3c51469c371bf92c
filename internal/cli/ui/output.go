package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects CLI output and returns a function restoring the previous writers
func SetOutput(out, errOut io.Writer) (restore func()) {
	prevOut, prevErr := stdout, stderr
	stdout, stderr = out, errOut
	return func() {
		stdout, stderr = prevOut, prevErr
	}
}

// Error prints an error message to stderr
func Error(format string, args ...interface{}) {
	fmt.Fprintf(stderr, "%s %s\n", ErrorIcon, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Fprintf(stdout, "%s %s\n", SuccessIcon, SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

// Info prints an informational message
func Info(format string, args ...interface{}) {
	fmt.Fprintf(stdout, "%s %s\n", InfoIcon, InfoStyle.Render(fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Fprintf(stdout, "%s %s\n", WarningIcon, WarningStyle.Render(fmt.Sprintf(format, args...)))
}

// OutputLine prints one formatted line
func OutputLine(format string, args ...interface{}) {
	fmt.Fprintf(stdout, format+"\n", args...)
}

// PrintField prints an indented "label: value" line
func PrintField(label string, value interface{}) {
	fmt.Fprintf(stdout, "   %s %v\n", DimStyle.Render(label+":"), value)
}

// FormatTime formats a time relative to now
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	if time.Since(t) < time.Minute {
		return "just now"
	}
	return humanize.Time(t)
}
