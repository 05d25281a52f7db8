// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package project derives a project's identity (name, canonical URL, download URL) from the
// state of its repository.
//
// The sources are either a packaging metadata file (PKG-INFO, as found in an sdist) or the git
// configuration of a checkout.  Both are line-oriented and are matched with regular
// expressions rather than parsed; everything that knows about their shape is in this file.
package project

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/afero"

	"github.com/datawire/vscinstall/pkg/license"
)

// maxScan is how much of a metadata source is searched.
const maxScan = 10240

// Identity is what is known about a project.
type Identity struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	// DownloadURL is empty if there is no external download URL.
	DownloadURL string `json:"download_url,omitempty"`
	// Private is whether the URL was derived from an ssh or git remote rather than from a
	// public https remote.
	Private bool `json:"-"`
}

// MissingKeyError is returned when a source does not contain a required field.
type MissingKeyError struct {
	Key     string
	Source  string
	Allowed string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing %s in %s (missing mandatory remote? %s)", e.Key, e.Source, e.Allowed)
}

func (p *Policy) patterns() map[string][]*regexp.Regexp {
	remotes := make([]string, 0, len(p.Remotes))
	for _, remote := range p.Remotes {
		remotes = append(remotes, remote.pattern())
	}
	domain := `(?:` + strings.Join(remotes, `|`) + `)`
	return map[string][]*regexp.Regexp{
		"name": {
			regexp.MustCompile(`(?m)^Name:\s*(.*?)\s*$`),
			regexp.MustCompile(`(?m)^\s*url\s*=.*/([^/]*?)(?:\.git)?\s*$`),
		},
		"url": {
			regexp.MustCompile(`(?m)^Home-page:\s*(.*?)\s*$`),
			regexp.MustCompile(`(?m)^\s*url\s*=\s*((?:https?|ssh).*?` + domain + `/.*?)(?:\.git)?\s*$`),
			regexp.MustCompile(`(?m)^\s*url\s*=\s*(git[:@].*?` + domain + `/.*?)(?:\.git)?\s*$`),
		},
		"download_url": {
			regexp.MustCompile(`(?m)^Download-URL:\s*(.*?)\s*$`),
		},
	}
}

var (
	reSCPLike   = regexp.MustCompile(`^git@(.*?):(.*)$`)
	reGitScheme = regexp.MustCompile(`^(?:git|ssh)://(?:[^@/]*@)?`)
)

// Resolve extracts the project identity from `source`, the text of a PKG-INFO file or a git
// config file; `sourceName` is used only in messages.  `version` may be empty if not known.
// `licenseName` is the short name of the project's license.
func (p *Policy) Resolve(ctx context.Context, sourceName, source, version, licenseName string) (*Identity, error) {
	if len(source) > maxScan {
		source = source[:maxScan]
	}

	patterns := p.compile().patterns
	found := make(map[string]string)
	for _, key := range []string{"name", "url", "download_url"} {
		for _, re := range patterns[key] {
			if match := re.FindStringSubmatch(source); match != nil {
				found[key] = match[1]
				dlog.Debugf(ctx, "found match %s %q in %s", key, match[1], sourceName)
				break
			}
		}
	}

	url, ok := found["url"]
	if !ok {
		return nil, &MissingKeyError{Key: "url", Source: sourceName, Allowed: p.AllowedRemotes()}
	}
	ident := &Identity{
		Name:        found["name"],
		DownloadURL: found["download_url"],
	}
	switch {
	case reSCPLike.MatchString(url):
		ident.URL = reSCPLike.ReplaceAllString(url, "https://$1/$2")
		ident.Private = true
	case reGitScheme.MatchString(url):
		ident.URL = reGitScheme.ReplaceAllString(url, "https://")
		ident.Private = true
	default:
		ident.URL = url
	}
	if ident.Name == "" {
		return nil, &MissingKeyError{Key: "name", Source: sourceName, Allowed: p.AllowedRemotes()}
	}

	if _, explicit := found["download_url"]; !explicit {
		switch {
		case license.ReleaseOnPyPI(licenseName):
			// published on PyPI; no external archive needed
		case strings.Contains(ident.URL, "github") && version != "":
			ident.DownloadURL = fmt.Sprintf("%s/archive/%s.tar.gz", ident.URL, version)
		}
	}

	dlog.Infof(ctx, "project %s: url=%s download_url=%q", ident.Name, ident.URL, ident.DownloadURL)
	return ident, nil
}

// SourceFile returns the file that ResolveRepo would read for the repository at `baseDir`:
// PKG-INFO if present (e.g. in an unpacked sdist), otherwise .git/config.
func SourceFile(fsys afero.Fs, baseDir string) (string, error) {
	for _, candidate := range []string{
		filepath.Join(baseDir, "PKG-INFO"),
		filepath.Join(baseDir, ".git", "config"),
	} {
		fi, err := fsys.Stat(candidate)
		if err == nil && fi.Mode().IsRegular() {
			return candidate, nil
		}
	}
	return "", &fs.PathError{
		Op:   "find PKG-INFO or .git/config",
		Path: baseDir,
		Err:  fs.ErrNotExist,
	}
}

// ResolveRepo is Resolve for the repository checked out at `baseDir`.
func (p *Policy) ResolveRepo(ctx context.Context, fsys afero.Fs, baseDir, version, licenseName string) (*Identity, error) {
	filename, err := SourceFile(fsys, baseDir)
	if err != nil {
		return nil, err
	}
	content, err := afero.ReadFile(fsys, filename)
	if err != nil {
		return nil, err
	}
	return p.Resolve(ctx, filename, string(content), version, licenseName)
}
