// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"sigs.k8s.io/yaml"
)

// Organization is the institution that a project's header credits.
type Organization struct {
	Name    string `json:"name"`
	TeamURL string `json:"teamURL"`
	URL     string `json:"url"`
}

// Remote is an allow-listed hosted repository namespace, such as github.com/hpcugent.  Only
// projects hosted under an allow-listed remote may be packaged; this keeps a fork from
// silently being released as the real thing.
type Remote struct {
	Host  string `json:"host"`
	Owner string `json:"owner"`

	Organization Organization `json:"organization"`
}

func (r Remote) String() string {
	return r.Host + "/" + r.Owner
}

// pattern matches the remote anywhere in a URL, in either "host/owner" or "host:owner" form.
func (r Remote) pattern() string {
	return regexp.QuoteMeta(r.Host) + `.*?[:/]` + regexp.QuoteMeta(r.Owner)
}

// Policy is the set of allow-listed remotes.  Remotes must not be modified once the Policy
// has been used.
type Policy struct {
	Remotes []Remote `json:"remotes"`

	compileOnce sync.Once
	compiled    *compiledPolicy
}

type compiledPolicy struct {
	// orgs[i] matches the URLs hosted by Remotes[i].
	orgs     []*regexp.Regexp
	patterns map[string][]*regexp.Regexp
}

func (p *Policy) compile() *compiledPolicy {
	p.compileOnce.Do(func() {
		orgs := make([]*regexp.Regexp, 0, len(p.Remotes))
		for _, remote := range p.Remotes {
			orgs = append(orgs, regexp.MustCompile(`^[a-z+]+://`+remote.pattern()+`(?:/|$)`))
		}
		p.compiled = &compiledPolicy{
			orgs:     orgs,
			patterns: p.patterns(),
		}
	})
	return p.compiled
}

//nolint:gochecknoglobals // Would be 'const'.
var (
	orgUGent = Organization{
		Name:    "Ghent University",
		TeamURL: "http://ugent.be/hpc/en",
		URL:     "http://ugent.be/hpc",
	}
	orgVUB = Organization{
		Name:    "Vrije Universiteit Brussel",
		TeamURL: "https://hpc.vub.be",
		URL:     "https://www.vub.be",
	}
)

// DefaultPolicy returns the built-in list of allowed remotes.
func DefaultPolicy() *Policy {
	return &Policy{
		Remotes: []Remote{
			{Host: "github.ugent.be", Owner: "hpcugent", Organization: orgUGent},
			{Host: "github.com", Owner: "hpcugent", Organization: orgUGent},
			{Host: "github.com", Owner: "vub-hpc", Organization: orgVUB},
			{Host: "dev.azure.com", Owner: "VUB-ICT", Organization: orgVUB},
		},
	}
}

// LoadPolicyFile reads a Policy from a YAML file.
func LoadPolicyFile(filename string) (*Policy, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var policy Policy
	if err := yaml.Unmarshal(bs, &policy, yaml.DisallowUnknownFields); err != nil {
		return nil, fmt.Errorf("policy file %q: %w", filename, err)
	}
	if err := policy.validate(); err != nil {
		return nil, fmt.Errorf("policy file %q: %w", filename, err)
	}
	return &policy, nil
}

func (p *Policy) validate() error {
	if len(p.Remotes) == 0 {
		return fmt.Errorf("no remotes")
	}
	for i, remote := range p.Remotes {
		if remote.Host == "" || remote.Owner == "" {
			return fmt.Errorf("remotes[%d]: host and owner are required", i)
		}
		if remote.Organization.Name == "" {
			return fmt.Errorf("remotes[%d] (%s): organization name is required", i, remote)
		}
	}
	return nil
}

// AllowedRemotes returns a human-readable list of the allowed remotes.
func (p *Policy) AllowedRemotes() string {
	strs := make([]string, 0, len(p.Remotes))
	for _, remote := range p.Remotes {
		strs = append(strs, remote.String())
	}
	return strings.Join(strs, ", ")
}

// LookupError is returned when a URL is not hosted by any known organization.
type LookupError struct {
	URL string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no known organization hosts %q", e.URL)
}

// OrganizationFor returns the organization of the first allowed remote that hosts `url`.
func (p *Policy) OrganizationFor(url string) (Organization, error) {
	for i, re := range p.compile().orgs {
		if re.MatchString(url) {
			return p.Remotes[i].Organization, nil
		}
	}
	return Organization{}, &LookupError{URL: url}
}
