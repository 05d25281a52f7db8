package headers

import (
	"path/filepath"
	"regexp"
	"strings"
)

const (
	ShebangPython = "#!/usr/bin/env python"
	ShebangBash   = "#!/bin/bash"
)

// RequiredShebang returns the shebang that a script with the given filename must have; ok is
// false if the file type has no required shebang.
func RequiredShebang(filename string) (shebang string, ok bool) {
	switch filepath.Ext(filename) {
	case ".py":
		return ShebangPython, true
	case ".sh", "":
		return ShebangBash, true
	default:
		return "", false
	}
}

// reEncoding matches a PEP 263 source encoding declaration.
var reEncoding = regexp.MustCompile(`^\s*#.*?coding[:=]\s*[-\w.]+`)

// encodingLine returns the encoding declaration line of the header (with its newline), if it
// is one of the first two lines.
func encodingLine(header string) string {
	lines := strings.SplitAfterN(header, "\n", 3)
	for i := 0; i < len(lines) && i < 2; i++ {
		if reEncoding.MatchString(lines[i]) {
			return strings.TrimSuffix(lines[i], "\n") + "\n"
		}
	}
	return ""
}

var reExternal = regexp.MustCompile(`(?m)^### External compatible license\s*$`)

// IsExternal returns whether the header declares its license text as externally managed.
func IsExternal(header string) bool {
	return reExternal.MatchString(header)
}
