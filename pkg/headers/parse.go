// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package headers verifies and regenerates the license header at the top of Python modules
// and scripts.
//
// The header of a file is everything before the first line that starts with a docstring quote
// (''' or """) or with the marker "### END OF HEADER".  For a script, a leading "#!/" line is
// split off as the shebang.
package headers

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
)

// EndOfHeader is the marker line that ends a header in files without a docstring.
const EndOfHeader = "### END OF HEADER"

// ErrInternal is wrapped by errors that indicate a bug rather than a problem with the input.
var ErrInternal = errors.New("internal error")

var errIsDir = errors.New("is a directory")

// Header is the parsed head of a file.
type Header struct {
	// Text is the header body, not including the shebang line or the line that ends the
	// header.
	Text string
	// Shebang is the "#!/" line without its newline; only meaningful if HasShebang.
	Shebang    string
	HasShebang bool
	// Unterminated is set if the file has no line that ends the header.  Text is then empty,
	// and a rewritten header needs an EndOfHeader line after it.
	Unterminated bool
}

// String returns the header as it appears in the file.
func (h Header) String() string {
	if h.HasShebang {
		return h.Shebang + "\n" + h.Text
	}
	return h.Text
}

// Span returns the number of bytes that the header occupies at the start of the file.
func (h Header) Span() int {
	return len(h.String())
}

func isBoundary(line string) bool {
	return strings.HasPrefix(line, `'''`) ||
		strings.HasPrefix(line, `"""`) ||
		strings.HasPrefix(line, EndOfHeader)
}

// Parse extracts the header from the content of a file.  A file without a header boundary has
// an empty header, apart from the shebang of a script.
func Parse(content []byte, isScript bool) (Header, error) {
	text := string(content)

	header := Header{Unterminated: true}
	end := 0
	for pos := 0; pos < len(text); {
		if isBoundary(text[pos:]) {
			header.Unterminated = false
			end = pos
			break
		}
		nl := strings.IndexByte(text[pos:], '\n')
		if nl < 0 {
			break
		}
		pos += nl + 1
	}
	header.Text = text[:end]

	if isScript && strings.HasPrefix(text, "#!/") {
		// a shebang without a newline is the whole file; leave it to the body
		if nl := strings.IndexByte(text, '\n'); nl >= 0 {
			header.Shebang = text[:nl]
			header.HasShebang = true
			if header.Unterminated {
				header.Text = ""
			} else {
				header.Text = text[nl+1 : end]
			}
		}
	}
	if !strings.HasPrefix(text, header.String()) {
		return Header{}, fmt.Errorf("%w: header %q is not at the start of the file", ErrInternal, header.String())
	}
	return header, nil
}

// Read is Parse for the named file.
func Read(fsys afero.Fs, filename string, isScript bool) (Header, error) {
	content, err := readRegular(fsys, filename)
	if err != nil {
		return Header{}, err
	}
	return Parse(content, isScript)
}

func readRegular(fsys afero.Fs, filename string) ([]byte, error) {
	fi, err := fsys.Stat(filename)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, &fs.PathError{Op: "read header", Path: filename, Err: errIsDir}
	}
	return afero.ReadFile(fsys, filename)
}
