package cliutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/datawire/vscinstall/pkg/cliutil"
)

func newTestCLI() *cobra.Command {
	root := &cobra.Command{
		Use:  "vscinstall {[flags]|SUBCOMMAND...}",
		Args: cliutil.OnlySubcommands,
		RunE: cliutil.RunSubcommands,

		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetFlagErrorFunc(cliutil.FlagErrorFunc)
	root.SetHelpTemplate(cliutil.HelpTemplate)

	headers := &cobra.Command{
		Use:  "headers {[flags]|SUBCOMMAND...}",
		Args: cliutil.OnlySubcommands,
		RunE: cliutil.RunSubcommands,
	}
	headers.AddCommand(&cobra.Command{
		Use:  "lint [flags]",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			return nil
		},
	})
	root.AddCommand(headers)
	return root
}

func TestUsageErrors(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Args           []string
		ExpectedCode   int
		ExpectedStderr string
	}
	testcases := map[string]testcase{
		"ok": {
			Args:         []string{"headers", "lint"},
			ExpectedCode: 0,
		},
		"typo": {
			Args:         []string{"headers", "lnt"},
			ExpectedCode: 2,
			ExpectedStderr: "" +
				"vscinstall headers: invalid subcommand \"lnt\"\n" +
				"Did you mean one of these?\n" +
				"\tlint\n" +
				"\n" +
				"See 'vscinstall headers --help' for more information.\n",
		},
		"bad-flag": {
			Args:         []string{"headers", "lint", "--bogus"},
			ExpectedCode: 2,
			ExpectedStderr: "" +
				"vscinstall headers lint: unknown flag: --bogus\n" +
				"See 'vscinstall headers lint --help' for more information.\n",
		},
		"extra-arg": {
			Args:         []string{"headers", "lint", "setup.py"},
			ExpectedCode: 2,
			ExpectedStderr: "" +
				"vscinstall headers lint: unknown command \"setup.py\" for \"vscinstall headers lint\"\n" +
				"See 'vscinstall headers lint --help' for more information.\n",
		},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			cmd := newTestCLI()
			var stdout, stderr strings.Builder
			cmd.SetOut(&stdout)
			cmd.SetErr(&stderr)
			cmd.SetArgs(tcData.Args)

			err := cmd.Execute()
			assert.Equal(t, tcData.ExpectedCode, cliutil.ExitCode(err))
			assert.Equal(t, tcData.ExpectedStderr, stderr.String())
			assert.Equal(t, "", stdout.String())
		})
	}
}

func TestRunSubcommands(t *testing.T) {
	t.Parallel()
	cmd := newTestCLI()
	var stdout, stderr strings.Builder
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"headers"})

	err := cmd.Execute()
	assert.Equal(t, 2, cliutil.ExitCode(err))
	assert.True(t, strings.HasPrefix(stderr.String(), "Usage: vscinstall headers "), stderr.String())
	assert.Contains(t, stderr.String(), "Available Commands:\n")
	assert.Equal(t, "", stdout.String())
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, cliutil.ExitCode(nil))
	assert.Equal(t, 1, cliutil.ExitCode(errors.New("boom")))
	assert.Equal(t, 3, cliutil.ExitCode(&cliutil.ExitError{Code: 3}))
	assert.EqualError(t, &cliutil.ExitError{Code: 3}, "exit status 3")
}
