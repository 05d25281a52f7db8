// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package license knows which licenses a project may use: how to recognize a project's LICENSE
// file, what PyPI classifier goes with it, and what header each source file must carry.
package license

import (
	"crypto/md5" //nolint:gosec // it's a content fingerprint, not a security boundary
	"encoding/hex"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"text/template"

	"github.com/spf13/afero"
)

// Record describes a known license.
type Record struct {
	// Name is the short name, such as "LGPLv2+".
	Name string
	// MD5 is the hex md5sum of the canonical LICENSE file text.
	MD5 string
	// Classifier is the PyPI trove classifier.
	Classifier string
	// PyPI is whether projects under this license may be published on PyPI.
	PyPI bool
}

// LookupError is returned when a license (or the template for it) is not known.
type LookupError struct {
	What string
	Key  string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.What, e.Key)
}

// Registry is an immutable set of license records and their header templates.
type Registry struct {
	records   map[string]Record
	byMD5     map[string]string
	templates map[string]*template.Template
}

// NewRegistry builds a Registry.  Every template must belong to a record, and no two records
// may share a name or a checksum.
func NewRegistry(records []Record, templates map[string]string) (*Registry, error) {
	reg := &Registry{
		records:   make(map[string]Record, len(records)),
		byMD5:     make(map[string]string, len(records)),
		templates: make(map[string]*template.Template, len(templates)),
	}
	for _, rec := range records {
		if _, dup := reg.records[rec.Name]; dup {
			return nil, fmt.Errorf("license.NewRegistry: duplicate license name %q", rec.Name)
		}
		md5sum := strings.ToLower(rec.MD5)
		if other, dup := reg.byMD5[md5sum]; dup {
			return nil, fmt.Errorf("license.NewRegistry: licenses %q and %q have the same checksum %s",
				other, rec.Name, md5sum)
		}
		reg.records[rec.Name] = rec
		reg.byMD5[md5sum] = rec.Name
	}
	for name, text := range templates {
		if _, ok := reg.records[name]; !ok {
			return nil, fmt.Errorf("license.NewRegistry: template for unregistered license %q", name)
		}
		tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("license.NewRegistry: template %q: %w", name, err)
		}
		reg.templates[name] = tmpl
	}
	return reg, nil
}

// Names returns the short names of all registered licenses, sorted.
func (reg *Registry) Names() []string {
	ret := make([]string, 0, len(reg.records))
	for name := range reg.records {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// Lookup returns the record for a short name.
func (reg *Registry) Lookup(name string) (Record, error) {
	rec, ok := reg.records[name]
	if !ok {
		return Record{}, &LookupError{What: "license", Key: name}
	}
	return rec, nil
}

// MD5Sum returns the hex md5sum of `content`, as stored in Record.MD5.
func MD5Sum(content []byte) string {
	sum := md5.Sum(content) //nolint:gosec // see import
	return hex.EncodeToString(sum[:])
}

// Identify reads the license file `filename` and returns the single record whose checksum it
// matches.
func (reg *Registry) Identify(fsys afero.Fs, filename string) (Record, error) {
	content, err := afero.ReadFile(fsys, filename)
	if err != nil {
		return Record{}, err
	}
	md5sum := MD5Sum(content)
	name, ok := reg.byMD5[md5sum]
	if !ok {
		return Record{}, &fs.PathError{
			Op:   "identify license",
			Path: filename,
			Err:  &LookupError{What: "license checksum", Key: md5sum},
		}
	}
	return reg.records[name], nil
}

// pypiLicenses are the licenses that allow publishing on PyPI.
//
//nolint:gochecknoglobals // Would be 'const'.
var pypiLicenses = []string{"LGPLv2+", "GPLv2"}

// ReleaseOnPyPI returns whether a project under the named license may be published on PyPI.
func ReleaseOnPyPI(name string) bool {
	for _, lic := range pypiLicenses {
		if lic == name {
			return true
		}
	}
	return false
}
