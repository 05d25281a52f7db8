package main

import (
	"context"
	"fmt"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/datawire/vscinstall/pkg/cliutil"
	"github.com/datawire/vscinstall/pkg/headers"
)

func init() {
	cmd := &cobra.Command{
		Use:   "headers {[flags]|SUBCOMMAND...}",
		Short: "Check and fix license headers",

		Args: cliutil.OnlySubcommands,
		RunE: cliutil.RunSubcommands,
	}
	cmd.AddCommand(headersFixCommand(), headersLintCommand())
	argparser.AddCommand(cmd)
}

func headersFixCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fix [flags] FILE... [0|1]",
		Short: "Rewrite the license header of the given files",
		Long: "Rewrite the license header (and, for scripts, the shebang) of each FILE to " +
			"the header expected for the repository.  A trailing argument of 1 marks the " +
			"files as scripts; 0 (the default) marks them as Python modules." +
			"\n\n" +
			"Processing stops at the first file that can not be fixed.",
		Args: cliutil.WrapPositionalArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, isScript, err := parseFixArgs(args)
			if err != nil {
				return cliutil.FlagErrorFunc(cmd, err)
			}
			env, err := loadEnv(settings)
			if err != nil {
				return err
			}
			_, err = runHeadersFix(cmd.Context(), env, files, isScript)
			return err
		},
	}
}

// parseFixArgs splits off the optional trailing is-script flag.
func parseFixArgs(args []string) (files []string, isScript bool, err error) {
	files = args
	if n := len(args); n > 0 {
		switch args[n-1] {
		case "0":
			files = args[:n-1]
		case "1":
			files, isScript = args[:n-1], true
		}
	}
	if len(files) == 0 {
		return nil, false, fmt.Errorf("no files given")
	}
	return files, isScript, nil
}

func runHeadersFix(ctx context.Context, env *appEnv, files []string, isScript bool) (changed []string, err error) {
	checker := env.checker()
	for _, filename := range files {
		fileChanged, err := checker.Check(ctx, filename, isScript, true)
		if err != nil {
			return changed, err
		}
		if fileChanged {
			changed = append(changed, filename)
		}
	}
	return changed, nil
}

func headersLintCommand() *cobra.Command {
	var opts headers.TreeOptions
	cmd := &cobra.Command{
		Use:   "lint [flags]",
		Short: "Check the license headers of the whole repository",
		Long: "Check the license header of every Python module under lib/ and of every " +
			"script under bin/.  Files whose header differs from the one expected for the " +
			"repository are reported, and are rewritten in place if --write is given." +
			"\n\n" +
			"Without --write, the exit status is 1 if any file differs.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnv(settings)
			if err != nil {
				return err
			}
			return runHeadersLint(cmd.Context(), env, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false,
		"Rewrite files whose header differs from the expected header")
	cmd.Flags().StringArrayVarP(&opts.Exclude, "exclude", "e", nil,
		"Skip files matching `GLOB`, relative to the repository root (may be given more than once)")
	return cmd
}

func runHeadersLint(ctx context.Context, env *appEnv, opts headers.TreeOptions) error {
	changed, err := env.checker().CheckTree(ctx, opts)
	if err != nil {
		return err
	}
	if len(changed) == 0 {
		dlog.Infof(ctx, "all headers are up to date")
		return nil
	}
	if opts.Write {
		dlog.Infof(ctx, "rewrote %d file(s)", len(changed))
		return nil
	}
	for _, filename := range changed {
		dlog.Errorf(ctx, "%s: header is out of date", filename)
	}
	dlog.Errorf(ctx, "%d file(s) need a new header; run again with --write to fix them", len(changed))
	return &cliutil.ExitError{Code: 1}
}
