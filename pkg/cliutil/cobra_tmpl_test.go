// Copyright (C) 2021-2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package cliutil_test

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/datawire/vscinstall/pkg/cliutil"
)

const (
	lintShort = "Check the license headers of a whole repository"
	lintLong  = "Check the license header of every Python module under lib/ and of every script " +
		"under bin/.  Files whose header differs from the one expected for the repository are " +
		"reported, and are rewritten in place if --write is given."
)

func addLintFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("write", "w", false, "Rewrite files whose header differs")
	cmd.Flags().StringP("exclude", "e", "", "Skip files matching `GLOB`, relative to the "+
		"repository root; useful for vendored code that carries its own license")
}

//nolint:paralleltest // can't use .Parallel() with .Setenv()
func TestHelpTemplate(t *testing.T) {
	t.Setenv("COLUMNS", "80")
	noopRunE := func(_ *cobra.Command, _ []string) error {
		return nil
	}
	type testcase struct {
		InputCmd     *cobra.Command
		ExpectedHelp string
	}
	testcases := map[string]testcase{
		"basic": {
			InputCmd: func() *cobra.Command {
				cmd := &cobra.Command{
					Use:   "headers-lint [flags]",
					Args:  cobra.NoArgs,
					Short: lintShort,
					Long:  lintLong,
					RunE:  noopRunE,
				}
				addLintFlags(cmd)
				return cmd
			}(),
			ExpectedHelp: "" +
				// 0      1         2         3         4         5         6         7         8
				// 345678901234567890123456789012345678901234567890123456789012345678901234567890
				"Usage: headers-lint [flags]\n" +
				"Check the license headers of a whole repository\n" +
				"\n" +
				"Check the license header of every Python module under lib/ and of every\n" +
				"script under bin/.  Files whose header differs from the one expected for\n" +
				"the repository are reported, and are rewritten in place if --write is given.\n" +
				"\n" +
				"Flags:\n" +
				"  -e, --exclude GLOB   Skip files matching GLOB, relative to the\n" +
				"                       repository root; useful for vendored code that\n" +
				"                       carries its own license\n" +
				"  -w, --write          Rewrite files whose header differs\n" +
				"",
		},
		"no-short": {
			InputCmd: func() *cobra.Command {
				cmd := &cobra.Command{
					Use:  "headers-lint [flags]",
					Args: cobra.NoArgs,
					Long: lintLong,
					RunE: noopRunE,
				}
				addLintFlags(cmd)
				return cmd
			}(),
			ExpectedHelp: "" +
				// 0      1         2         3         4         5         6         7         8
				// 345678901234567890123456789012345678901234567890123456789012345678901234567890
				"Usage: headers-lint [flags]\n" +
				"\n" +
				"Check the license header of every Python module under lib/ and of every\n" +
				"script under bin/.  Files whose header differs from the one expected for\n" +
				"the repository are reported, and are rewritten in place if --write is given.\n" +
				"\n" +
				"Flags:\n" +
				"  -e, --exclude GLOB   Skip files matching GLOB, relative to the\n" +
				"                       repository root; useful for vendored code that\n" +
				"                       carries its own license\n" +
				"  -w, --write          Rewrite files whose header differs\n" +
				"",
		},
		"no-long": {
			InputCmd: func() *cobra.Command {
				cmd := &cobra.Command{
					Use:   "headers-lint [flags]",
					Args:  cobra.NoArgs,
					Short: lintShort,
					RunE:  noopRunE,
				}
				addLintFlags(cmd)
				return cmd
			}(),
			ExpectedHelp: "" +
				// 0      1         2         3         4         5         6         7         8
				// 345678901234567890123456789012345678901234567890123456789012345678901234567890
				"Usage: headers-lint [flags]\n" +
				"Check the license headers of a whole repository\n" +
				"\n" +
				"Flags:\n" +
				"  -e, --exclude GLOB   Skip files matching GLOB, relative to the\n" +
				"                       repository root; useful for vendored code that\n" +
				"                       carries its own license\n" +
				"  -w, --write          Rewrite files whose header differs\n" +
				"",
		},
		"environment": {
			InputCmd: func() *cobra.Command {
				cmd := &cobra.Command{
					Use:   "vscinstall",
					Args:  cobra.NoArgs,
					Short: "Shared build tooling for VSC Python projects",
					RunE:  noopRunE,
				}
				cliutil.DocumentEnvironment(cmd,
					cliutil.EnvVar{Name: "REPO_BASE_DIR", Usage: "Default for --repo-base-dir"},
					cliutil.EnvVar{Name: "SOURCE_DATE_EPOCH", Usage: "Pin the copyright end year"})
				return cmd
			}(),
			ExpectedHelp: "" +
				"Usage: vscinstall\n" +
				"Shared build tooling for VSC Python projects\n" +
				"\n" +
				"Environment:\n" +
				"  REPO_BASE_DIR       Default for --repo-base-dir\n" +
				"  SOURCE_DATE_EPOCH   Pin the copyright end year\n" +
				"",
		},
		"subcommandWrap": {
			InputCmd: func() *cobra.Command {
				cmd := &cobra.Command{
					Use:   "headers [flags]",
					Args:  cliutil.OnlySubcommands,
					Short: lintShort,
					Long:  lintLong,
					RunE:  noopRunE,
				}
				addLintFlags(cmd)
				cmd.AddCommand(&cobra.Command{
					Use:   "lint [flags]",
					Args:  cobra.NoArgs,
					Short: "Check the license headers of every module and script, optionally fixing them in place", //nolint:lll
					RunE:  noopRunE,
				})
				return cmd
			}(),
			ExpectedHelp: "" +
				// 0      1         2         3         4         5         6         7         8
				// 345678901234567890123456789012345678901234567890123456789012345678901234567890
				"Usage: headers [flags]\n" +
				"Check the license headers of a whole repository\n" +
				"\n" +
				"Check the license header of every Python module under lib/ and of every\n" +
				"script under bin/.  Files whose header differs from the one expected for\n" +
				"the repository are reported, and are rewritten in place if --write is given.\n" +
				"\n" +
				"Available Commands:\n" +
				"  lint          Check the license headers of every module and script,\n" +
				"                optionally fixing them in place\n" +
				"\n" +
				"Flags:\n" +
				"  -e, --exclude GLOB   Skip files matching GLOB, relative to the\n" +
				"                       repository root; useful for vendored code that\n" +
				"                       carries its own license\n" +
				"  -w, --write          Rewrite files whose header differs\n" +
				"\n" +
				"Use \"headers [command] --help\" for more information about a command.\n" +
				"",
		},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			tcData.InputCmd.SetHelpTemplate(cliutil.HelpTemplate)

			var out strings.Builder
			tcData.InputCmd.SetOutput(&out)
			tcData.InputCmd.HelpFunc()(tcData.InputCmd, []string{"--help"})

			assert.Equal(t, tcData.ExpectedHelp, out.String())
		})
	}
}
