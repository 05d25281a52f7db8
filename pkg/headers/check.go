// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package headers

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/afero"

	"github.com/datawire/vscinstall/pkg/fsutil"
	"github.com/datawire/vscinstall/pkg/license"
	"github.com/datawire/vscinstall/pkg/nicediff"
	"github.com/datawire/vscinstall/pkg/project"
	"github.com/datawire/vscinstall/pkg/reproducible"
)

// Checker compares the headers of the files of one repository against the header that the
// repository's license and identity call for.
type Checker struct {
	Fs afero.Fs
	// BaseDir is the root of the repository; it holds the LICENSE file and either PKG-INFO or
	// .git/config.
	BaseDir  string
	Licenses *license.Registry
	Policy   *project.Policy
	// Now is the clock for the copyright end year; if nil, reproducible.Now is used.
	Now func() time.Time
}

func (c *Checker) now() time.Time {
	if c.Now == nil {
		return reproducible.Now()
	}
	return c.Now()
}

// ExpectedHeader renders the license header for this repository, with the copyright range
// starting at `beginYear`.
func (c *Checker) ExpectedHeader(ctx context.Context, beginYear int) (string, error) {
	lic, err := c.Licenses.Identify(c.Fs, filepath.Join(c.BaseDir, "LICENSE"))
	if err != nil {
		return "", err
	}
	ident, err := c.Policy.ResolveRepo(ctx, c.Fs, c.BaseDir, "", lic.Name)
	if err != nil {
		return "", err
	}
	org, err := c.Policy.OrganizationFor(ident.URL)
	if err != nil {
		return "", err
	}
	return c.Licenses.Render(lic.Name, license.Vars{
		BeginYear:  beginYear,
		EndYear:    c.now().Year(),
		Name:       ident.Name,
		URL:        ident.URL,
		OrgName:    org.Name,
		OrgTeamURL: org.TeamURL,
		OrgURL:     org.URL,
	})
}

// Check reports whether the header of `filename` differs from the expected header and, if
// `write` is set, rewrites the file with the expected header.  A script (`isScript`) also has
// its shebang checked.
func (c *Checker) Check(ctx context.Context, filename string, isScript, write bool) (changed bool, err error) {
	content, err := readRegular(c.Fs, filename)
	if err != nil {
		return false, err
	}
	orig, err := Parse(content, isScript)
	if err != nil {
		return false, err
	}
	expected := orig
	// written after the header of a file that had no line ending it
	var terminator string

	if isScript {
		if shebang, ok := RequiredShebang(filename); ok {
			if !orig.HasShebang || orig.Shebang != shebang {
				dlog.Infof(ctx, "%s: shebang %q should be %q", filename, orig.Shebang, shebang)
				expected.Shebang = shebang
				expected.HasShebang = true
				changed = true
			}
		} else {
			dlog.Warnf(ctx, "%s: no known shebang for this file type; keeping %q", filename, orig.Shebang)
		}
	}

	if IsExternal(orig.Text) {
		dlog.Infof(ctx, "%s: header is an external compatible license; leaving it as-is", filename)
	} else {
		rng, ok := ExtractCopyright(orig.Text, c.now())
		if !ok {
			dlog.Warnf(ctx, "%s: no copyright begin year found; using %d", filename, rng.Begin)
		}
		body, err := c.ExpectedHeader(ctx, rng.Begin)
		if err != nil {
			return false, fmt.Errorf("%s: %w", filename, err)
		}
		expected.Text = encodingLine(orig.Text) + body
		if orig.Unterminated {
			terminator = EndOfHeader + "\n"
		}

		if expected.String() != orig.String() {
			dlog.Infof(ctx, "%s: header differs from expected header:\n%s",
				filename, nicediff.String(orig.String(), expected.String()+terminator))
			changed = true
		}
	}

	if write && changed {
		dlog.Infof(ctx, "%s: writing new header", filename)
		newContent := append([]byte(expected.String()+terminator), content[orig.Span():]...)
		if err := fsutil.ReplaceFile(c.Fs, filename, newContent); err != nil {
			return changed, &fs.PathError{Op: "write header", Path: filename, Err: err}
		}
	}
	return changed, nil
}
