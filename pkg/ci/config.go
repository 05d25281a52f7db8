// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package ci generates the CI configuration (tox.ini, Jenkinsfile, GitHub Actions workflow)
// of a project from its vsc-ci.ini.
package ci

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/afero"

	"github.com/datawire/vscinstall/pkg/python"
)

const (
	// ConfigFile is the per-project CI options file, relative to the repository root.
	ConfigFile = "vsc-ci.ini"
	// ConfigSection is the section of ConfigFile that holds the options.
	ConfigSection = "vsc-ci"
)

// Config is the set of CI options of a project.  The zero value is not the default
// configuration; use DefaultConfig.
type Config struct {
	AdditionalTestCommands       []string
	EnableGitHubActions          bool
	HomeInstall                  bool
	InheritSitePackages          bool
	InstallScriptsPrefixOverride bool
	JiraIssueIDInPRTitle         bool
	MoveSetupCfg                 bool
	PipInstallTestDeps           []string
	EasyInstallTox               bool
	RunShellcheck                bool
	RunRuffFormatCheck           bool
	RunRuffCheck                 bool
	Py36TestsMustPass            bool
	Py39TestsMustPass            bool
}

// DefaultConfig returns the options used for a project without a vsc-ci.ini.
func DefaultConfig() Config {
	return Config{
		Py36TestsMustPass: true,
		Py39TestsMustPass: true,
	}
}

func (cfg *Config) boolOptions() map[string]*bool {
	return map[string]*bool{
		"enable_github_actions":           &cfg.EnableGitHubActions,
		"home_install":                    &cfg.HomeInstall,
		"inherit_site_packages":           &cfg.InheritSitePackages,
		"install_scripts_prefix_override": &cfg.InstallScriptsPrefixOverride,
		"jira_issue_id_in_pr_title":       &cfg.JiraIssueIDInPRTitle,
		"move_setup_cfg":                  &cfg.MoveSetupCfg,
		"easy_install_tox":                &cfg.EasyInstallTox,
		"run_shellcheck":                  &cfg.RunShellcheck,
		"run_ruff_format_check":           &cfg.RunRuffFormatCheck,
		"run_ruff_check":                  &cfg.RunRuffCheck,
		"py36_tests_must_pass":            &cfg.Py36TestsMustPass,
		"py39_tests_must_pass":            &cfg.Py39TestsMustPass,
	}
}

func (cfg *Config) linesOptions() map[string]*[]string {
	return map[string]*[]string{
		"additional_test_commands": &cfg.AdditionalTestCommands,
		"pip_install_test_deps":    &cfg.PipInstallTestDeps,
	}
}

// deprecatedOptions are accepted and ignored.
//
//nolint:gochecknoglobals // Would be 'const'.
var deprecatedOptions = map[string]struct{}{
	"pip3_install_tox":    {},
	"py3_only":            {},
	"py3_tests_must_pass": {},
	"py2_tests_must_pass": {},
}

// ValidationError is returned for a vsc-ci.ini that sets an option that does not exist or
// gives an option a value of the wrong type.
type ValidationError struct {
	Key string
	Err error
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("unknown key in %s: %s", ConfigFile, e.Key)
	}
	return fmt.Sprintf("invalid value for %s in %s: %v", e.Key, ConfigFile, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ParseConfig parses the content of a vsc-ci.ini.  Options not set keep their default value; a
// file without a [vsc-ci] section yields the default configuration.
func ParseConfig(ctx context.Context, r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	ini, err := python.NewConfigParser().Parse(r)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", ConfigFile, err)
	}
	sect, ok := ini[ConfigSection]
	if !ok {
		dlog.Warnf(ctx, "%s has no [%s] section; using defaults", ConfigFile, ConfigSection)
		return cfg, nil
	}

	bools := cfg.boolOptions()
	lines := cfg.linesOptions()
	for _, key := range sect.Keys() {
		if ptr, ok := bools[key]; ok {
			val, _, err := sect.GetBoolean(key)
			if err != nil {
				return cfg, &ValidationError{Key: key, Err: err}
			}
			*ptr = val
		} else if ptr, ok := lines[key]; ok {
			*ptr = sect.GetLines(key)
		} else if _, ok := deprecatedOptions[key]; ok {
			dlog.Warnf(ctx, "option %s in %s is deprecated and has no effect", key, ConfigFile)
		} else {
			return cfg, &ValidationError{Key: key}
		}
	}
	dlog.Debugf(ctx, "%s: %+v", ConfigFile, cfg)
	return cfg, nil
}

// LoadConfig reads the vsc-ci.ini at `filename`.  A missing file yields the default
// configuration.
func LoadConfig(ctx context.Context, fsys afero.Fs, filename string) (Config, error) {
	fh, err := fsys.Open(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			dlog.Infof(ctx, "no %s found; using defaults", filename)
			return DefaultConfig(), nil
		}
		return DefaultConfig(), err
	}
	defer fh.Close()
	return ParseConfig(ctx, fh)
}
