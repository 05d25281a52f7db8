// Command vscinstall is the shared build tooling of the VSC Python projects: it checks and
// rewrites license headers, derives packaging metadata, and generates CI configuration.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/datawire/vscinstall/pkg/cliutil"
)

var logger = cliutil.NewLogger(os.Stderr, false)

var argparser = &cobra.Command{
	Use:   "vscinstall {[flags]|SUBCOMMAND...}",
	Short: "Shared build tooling for VSC Python projects",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,

	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if settings.GetBool("verbose") {
			logger.SetLevel(logrus.DebugLevel)
		}
		return nil
	},

	SilenceErrors: true, // main() will handle this after .ExecuteContext() returns
	SilenceUsage:  true, // our FlagErrorFunc will handle it
}

func init() {
	argparser.SetFlagErrorFunc(cliutil.FlagErrorFunc)
	argparser.SetHelpTemplate(cliutil.HelpTemplate)
	addGlobalFlags(settings, argparser.PersistentFlags())
	cliutil.DocumentEnvironment(argparser,
		cliutil.EnvVar{Name: "REPO_BASE_DIR", Usage: "Default for --repo-base-dir"},
		cliutil.EnvVar{Name: "SOURCE_DATE_EPOCH", Usage: "Unix time to take the copyright end year from"},
		cliutil.EnvVar{Name: "COLUMNS", Usage: "Width to wrap help text to"})
}

func main() {
	ctx := cliutil.WithLogger(context.Background(), logger)

	if err := argparser.ExecuteContext(ctx); err != nil {
		var exitErr *cliutil.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(argparser.ErrOrStderr(), "%s: error: %v\n", argparser.CommandPath(), err)
		}
		os.Exit(cliutil.ExitCode(err))
	}
}
