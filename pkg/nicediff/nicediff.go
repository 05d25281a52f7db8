// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package nicediff renders a compact, human-readable line diff between two texts.
//
// It is meant for log output: like an ndiff every line is marked as common ("  "), removed
// ("- ") or added ("+ "), but like a unified diff only a window of lines around each change is
// shown.
package nicediff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultWindow is the number of lines of context shown on either side of a changed line.
const DefaultWindow = 5

const (
	markCommon  = "  "
	markRemoved = "- "
	markAdded   = "+ "
)

// splitLines splits `s` in to lines, keeping the line terminators.  Unlike
// difflib.SplitLines, it does not invent a trailing line when `s` ends with a newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// full returns the complete marked diff of `a` against `b`, in order.
func full(a, b []string) []string {
	ret := make([]string, 0, len(a)+len(b))
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'e':
			for _, line := range a[op.I1:op.I2] {
				ret = append(ret, markCommon+line)
			}
		case 'd':
			for _, line := range a[op.I1:op.I2] {
				ret = append(ret, markRemoved+line)
			}
		case 'i':
			for _, line := range b[op.J1:op.J2] {
				ret = append(ret, markAdded+line)
			}
		case 'r':
			for _, line := range a[op.I1:op.I2] {
				ret = append(ret, markRemoved+line)
			}
			for _, line := range b[op.J1:op.J2] {
				ret = append(ret, markAdded+line)
			}
		}
	}
	return ret
}

// Render returns the diff of `a` against `b`, one marked line per element, keeping only the
// lines that are within `window` lines of a removed or added line.  Overlapping windows are
// merged.  Identical or empty inputs give an empty result.
func Render(a, b string, window int) []string {
	if window < 0 {
		window = 0
	}
	diff := full(splitLines(a), splitLines(b))

	keep := make([]bool, len(diff))
	for idx, line := range diff {
		if strings.HasPrefix(line, markCommon) {
			continue
		}
		lo, hi := idx-window, idx+window
		if lo < 0 {
			lo = 0
		}
		if hi > len(diff)-1 {
			hi = len(diff) - 1
		}
		for i := lo; i <= hi; i++ {
			keep[i] = true
		}
	}

	var ret []string
	for idx, line := range diff {
		if keep[idx] {
			ret = append(ret, line)
		}
	}
	return ret
}

// String is Render with the DefaultWindow, joined in to a single string for logging.  Lines
// that lack a trailing newline (the last line of a text) get one.
func String(a, b string) string {
	var ret strings.Builder
	for _, line := range Render(a, b, DefaultWindow) {
		ret.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			ret.WriteString("\n")
		}
	}
	return ret.String()
}
