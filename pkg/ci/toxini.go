package ci

import (
	"fmt"
	"strings"
)

const (
	ToxIniFile = "tox.ini"

	generatedBy = "This file was automatically generated using 'python -m vsc.install.ci'"
)

// ToxIni renders the tox configuration.
func ToxIni(cfg Config) string {
	pipInstall := "pip install"
	easyInstallArgs := "-U"
	setupArgs := "'-q', 'easy_install', '-v', '-U'"
	if cfg.InstallScriptsPrefixOverride {
		pipInstall += ` --install-option="--install-scripts={envdir}/bin"`
		easyInstallArgs += " --script-dir={envdir}/bin"
		setupArgs += ", '--script-dir={envdir}/bin'"
	}

	commandsPre := func(lines ...string) []string {
		ret := []string{"commands_pre ="}
		if cfg.MoveSetupCfg {
			ret = append(ret, "mv setup.cfg setup.cfg.moved")
		}
		for _, dep := range cfg.PipInstallTestDeps {
			ret = append(ret, fmt.Sprintf("%s '%s'", pipInstall, dep))
		}
		ret = append(ret, lines...)
		if cfg.MoveSetupCfg {
			ret = append(ret, "mv setup.cfg.moved setup.cfg")
		}
		for i := 1; i < len(ret); i++ {
			ret[i] = "    " + ret[i]
		}
		return ret
	}

	lines := []string{
		"# tox.ini: configuration file for tox",
		"# " + generatedBy,
		"# DO NOT EDIT MANUALLY",
		"",
		"[tox]",
		"envlist = py36,py39",
		"skipsdist = true",
		"",
		"[testenv:py36]",
	}
	if !cfg.Py36TestsMustPass {
		lines = append(lines, "ignore_outcome = true")
	}
	lines = append(lines, commandsPre(
		fmt.Sprintf("%s 'setuptools<42.0'", pipInstall),
		fmt.Sprintf("python -m easy_install %s vsc-install", easyInstallArgs),
	)...)

	lines = append(lines, "", "[testenv:py39]")
	if !cfg.Py39TestsMustPass {
		lines = append(lines, "ignore_outcome = true")
	}
	lines = append(lines, "setenv = SETUPTOOLS_USE_DISTUTILS=local")
	lines = append(lines, commandsPre(
		fmt.Sprintf("%s 'setuptools<54.0' wheel", pipInstall),
		fmt.Sprintf(`python -c "from setuptools import setup;setup(script_args=[%s, 'vsc-install'])"`, setupArgs),
	)...)

	lines = append(lines,
		"",
		"[testenv]",
		"commands = python setup.py test",
		"passenv = USER",
	)
	if cfg.InheritSitePackages {
		lines = append(lines, "sitepackages = true")
	}

	return strings.Join(lines, "\n") + "\n"
}
