// Package logging wires up the process-wide structured logger: logrus's
// field-based API with a thin fatih/color accent on the
// session-lifecycle and blockhash-cadence lines.
package logging

import (
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// New builds the root logger. level is the textual log-level filter
// from the environment (e.g. "info", "debug"); an unrecognized value
// falls back to info rather than failing startup.
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}

var (
	magenta = color.New(color.FgMagenta).SprintFunc()
	cyan    = color.New(color.FgCyan).SprintFunc()
)

// Accent highlights a short status word (a session state, a slot
// number). Reserved for session-lifecycle and blockhash-cadence logs —
// never called from the per-instruction hot path.
func Accent(s string) string { return magenta(s) }

// AccentAlt is the secondary accent color.
func AccentAlt(s string) string { return cyan(s) }
