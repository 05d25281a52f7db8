package main

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/datawire/vscinstall/pkg/ci"
	"github.com/datawire/vscinstall/pkg/cliutil"
	"github.com/datawire/vscinstall/pkg/project"
)

func init() {
	var force bool
	cmd := &cobra.Command{
		Use:   "ci [flags]",
		Short: "Generate the CI configuration files",
		Long: "Generate tox.ini and Jenkinsfile (and, if enable_github_actions is set, " +
			".github/workflows/unittest.yml) in the repository root, as configured by the " +
			"[" + ci.ConfigSection + "] section of " + ci.ConfigFile + ".  All options have " +
			"defaults, so " + ci.ConfigFile + " may be absent.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnv(settings)
			if err != nil {
				return err
			}
			_, err = runCI(cmd.Context(), env, force)
			return err
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files")
	argparser.AddCommand(cmd)
}

func runCI(ctx context.Context, env *appEnv, force bool) ([]string, error) {
	cfg, err := ci.LoadConfig(ctx, env.Fs, filepath.Join(env.BaseDir, ci.ConfigFile))
	if err != nil {
		return nil, err
	}
	var ident *project.Identity
	if cfg.EnableGitHubActions {
		lic, err := env.Licenses.Identify(env.Fs, filepath.Join(env.BaseDir, "LICENSE"))
		if err != nil {
			return nil, err
		}
		ident, err = env.Policy.ResolveRepo(ctx, env.Fs, env.BaseDir, "", lic.Name)
		if err != nil {
			return nil, err
		}
	}
	return ci.Generate(ctx, env.Fs, env.BaseDir, cfg, ident, force)
}
