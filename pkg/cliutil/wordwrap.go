package cliutil

import (
	"strings"
)

// slop is how far past the wrap column a line may run if that avoids orphaning a short word on
// a line by itself.
const slop = 5

// Wrap the string `s` to a maximum width `w`.  Pass `w` == 0 to do no wrapping.
//
// In order to have some room for slop to avoid things like a short word being on a line by itself,
// most lines are actually wrapped to `w - 5`.
func Wrap(w int, s string) string {
	return wrap(0, w, s)
}

// Wrap the string `s` to a maximum width `w` with leading indent `i`.  The first line is not
// indented (this is assumed to be done by caller).  Pass `w` == 0 to do no wrapping
//
// In order to have some room for slop to avoid things like a short word being on a line by itself,
// most lines are actually wrapped to `w - 5`.
func WrapIndent(i, w int, s string) string {
	return wrap(i, w, s)
}

// cutLine splits `s` at the last whitespace at or before `n` bytes, or at an earlier newline.
// If all of `s` fits in `n + slop`, it is not split.
func cutLine(n int, s string) (line, rest string) {
	if n+slop > len(s) {
		return s, ""
	}
	sp := strings.LastIndexAny(s[:n], " \t\n")
	if sp <= 0 {
		return s, ""
	}
	if nl := strings.LastIndex(s[:n], "\n"); nl > 0 && nl < sp {
		return s[:nl], s[nl+1:]
	}
	return s[:sp], s[sp+1:]
}

// wrap has the same behavior as the unexported word-wrapping in github.com/spf13/pflag, so that
// command descriptions line up with flag descriptions.
func wrap(i, w int, s string) string {
	if w == 0 {
		return strings.ReplaceAll(s, "\n", "\n"+strings.Repeat(" ", i))
	}

	var ret strings.Builder
	width := w - i
	if width < 24 {
		// Not enough room next to the indent; start a block on the next line instead.
		i = 16
		width = w - i
		ret.WriteString("\n" + strings.Repeat(" ", i))
	}
	if width < 24 {
		return strings.ReplaceAll(s, "\n", ret.String())
	}
	width -= slop

	indent := "\n" + strings.Repeat(" ", i)
	line, s := cutLine(width, s)
	ret.WriteString(strings.ReplaceAll(line, "\n", indent))
	for s != "" {
		line, s = cutLine(width, s)
		ret.WriteString(indent + strings.ReplaceAll(line, "\n", indent))
	}
	return ret.String()
}
