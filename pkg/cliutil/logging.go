// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package cliutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/datawire/dlib/dlog"
	"github.com/sirupsen/logrus"
)

// LevelPrefixFormatter is a logrus.Formatter that writes one line per entry, prefixed by the
// upper-cased level name ("WARNING: ...").  Info-level entries get no prefix, so that normal
// output reads like plain program output.
type LevelPrefixFormatter struct{}

func levelPrefix(level logrus.Level) string {
	switch level {
	case logrus.InfoLevel:
		return ""
	case logrus.WarnLevel:
		return "WARNING: "
	default:
		return strings.ToUpper(level.String()) + ": "
	}
}

// Format implements logrus.Formatter.
func (LevelPrefixFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(levelPrefix(entry.Level))
	buf.WriteString(strings.TrimRight(entry.Message, "\n"))

	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&buf, " %s=%v", key, entry.Data[key])
	}

	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// NewLogger returns a logrus.Logger writing to `out` through a LevelPrefixFormatter.  Debug
// entries are only shown if `verbose`.
func NewLogger(out io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(LevelPrefixFormatter{})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

// WithLogger returns a context that dlog calls will log to `logger` through.
func WithLogger(ctx context.Context, logger *logrus.Logger) context.Context {
	return dlog.WithLogger(ctx, dlog.WrapLogrus(logger))
}
