// Package logging wires this module's components to a shared logrus
// logger. It mirrors the teacher's internal/utils/debug.go shape (a
// package-level configure call plus a verbosity toggle) but delegates
// formatting and output to logrus instead of a hand-rolled file writer.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/gvsurenderreddy-rakoshare/btext/internal/config"
)

var std = logrus.StandardLogger()

// Configure applies s to the package-level logger: output destination and
// level. Called once at process startup after config.LoadSettings.
func Configure(s config.LoggingSettings) error {
	level, err := logrus.ParseLevel(firstNonEmpty(s.Level, "info"))
	if err != nil {
		return err
	}
	std.SetLevel(level)

	var out io.Writer = os.Stderr
	if s.LogPath != "" {
		f, err := os.OpenFile(s.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		out = f
	}
	std.SetOutput(out)
	std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

// Logger returns the package-level logger, logrus's standard logger. It is
// the same logger extension.Logger defaults to, so Configure also governs
// the extension package's trace unless extension.Logger is overridden.
func Logger() *logrus.Logger { return std }

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
