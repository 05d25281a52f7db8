// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package license

import (
	"fmt"
	"strings"
)

// Vars are the values that get filled in to a license header template.
type Vars struct {
	BeginYear int
	EndYear   int

	// Name and URL of the project.
	Name string
	URL  string

	// The organization that hosts the project.
	OrgName    string
	OrgTeamURL string
	OrgURL     string
}

func (v Vars) missing() []string {
	var ret []string
	if v.BeginYear <= 0 {
		ret = append(ret, "BeginYear")
	}
	if v.EndYear <= 0 {
		ret = append(ret, "EndYear")
	}
	for _, pair := range []struct {
		name string
		val  string
	}{
		{"Name", v.Name},
		{"URL", v.URL},
		{"OrgName", v.OrgName},
		{"OrgTeamURL", v.OrgTeamURL},
		{"OrgURL", v.OrgURL},
	} {
		if pair.val == "" {
			ret = append(ret, pair.name)
		}
	}
	return ret
}

// Render returns the header text for the named license.
func (reg *Registry) Render(name string, vars Vars) (string, error) {
	tmpl, ok := reg.templates[name]
	if !ok {
		return "", &LookupError{What: "license template", Key: name}
	}
	if missing := vars.missing(); len(missing) > 0 {
		return "", fmt.Errorf("license %q: missing template variables: %s",
			name, strings.Join(missing, ", "))
	}
	var ret strings.Builder
	if err := tmpl.Execute(&ret, vars); err != nil {
		return "", fmt.Errorf("license %q: %w", name, err)
	}
	return ret.String(), nil
}

// DefaultRecords returns the built-in license records.
func DefaultRecords() []Record {
	// LGPLv2 and LGPLv2+ have the same text; we always assume the "+".  GPLv2 and GPLv2+ have
	// the same text; we always assume the plain one.
	records := []Record{
		{
			Name:       "LGPLv2+",
			MD5:        "5f30f0716dfdd0d91eb439ebec522ec2",
			Classifier: "License :: OSI Approved :: GNU Lesser General Public License v2 or later (LGPLv2+)",
		},
		{
			Name:       "GPLv2",
			MD5:        "b234ee4d69f5fce4486a80fdaf4a4263",
			Classifier: "License :: OSI Approved :: GNU General Public License v2 (GPLv2)",
		},
		{
			Name:       "ARR",
			MD5:        "4c917d76bb092659fa923f457c72d033",
			Classifier: "License :: Other/Proprietary License",
		},
	}
	for i := range records {
		records[i].PyPI = ReleaseOnPyPI(records[i].Name)
	}
	return records
}

// DefaultTemplates returns the built-in header templates, keyed by license name.
func DefaultTemplates() map[string]string {
	return map[string]string{
		"LGPLv2+": tmplLGPLv2Plus,
		"GPLv2":   tmplGPLv2,
		"ARR":     tmplARR,
	}
}

// DefaultRegistry returns the registry of licenses that projects are allowed to use.
func DefaultRegistry() *Registry {
	reg, err := NewRegistry(DefaultRecords(), DefaultTemplates())
	if err != nil {
		panic(err)
	}
	return reg
}

const tmplPreamble = `#
# Copyright {{ .BeginYear }}-{{ .EndYear }} {{ .OrgName }}
#
# This file is part of {{ .Name }},
# originally created by the HPC team of {{ .OrgName }} ({{ .OrgTeamURL }}),
# with support of {{ .OrgName }} ({{ .OrgURL }}),
# the Flemish Supercomputer Centre (VSC) (https://www.vscentrum.be),
# the Flemish Research Foundation (FWO) (http://www.fwo.be/en)
# and the Department of Economy, Science and Innovation (EWI) (http://www.ewi-vlaanderen.be/en).
#
# {{ .URL }}
#
`

const tmplLGPLv2Plus = tmplPreamble + `# {{ .Name }} is free software: you can redistribute it and/or modify
# it under the terms of the GNU Library General Public License as
# published by the Free Software Foundation, either version 2 of
# the License, or (at your option) any later version.
#
# {{ .Name }} is distributed in the hope that it will be useful,
# but WITHOUT ANY WARRANTY; without even the implied warranty of
# MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
# GNU Library General Public License for more details.
#
# You should have received a copy of the GNU Library General Public License
# along with {{ .Name }}. If not, see <http://www.gnu.org/licenses/>.
#
`

const tmplGPLv2 = tmplPreamble + `# {{ .Name }} is free software: you can redistribute it and/or modify
# it under the terms of the GNU General Public License as published by
# the Free Software Foundation v2.
#
# {{ .Name }} is distributed in the hope that it will be useful,
# but WITHOUT ANY WARRANTY; without even the implied warranty of
# MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
# GNU General Public License for more details.
#
# You should have received a copy of the GNU General Public License
# along with {{ .Name }}.  If not, see <http://www.gnu.org/licenses/>.
#
`

const tmplARR = tmplPreamble + `# All rights reserved.
#
`
