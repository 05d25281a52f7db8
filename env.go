package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/datawire/vscinstall/pkg/headers"
	"github.com/datawire/vscinstall/pkg/license"
	"github.com/datawire/vscinstall/pkg/project"
	"github.com/datawire/vscinstall/pkg/reproducible"
)

// settings resolves the global flags; each may also be given through the environment.
var settings = viper.New()

func addGlobalFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.String("repo-base-dir", "",
		"The root of the repository to operate on (default: $REPO_BASE_DIR, or the current directory)")
	flags.String("policy", "",
		"Read the allowed remotes and their organizations from the YAML `FILE`, instead of "+
			"using the built-in list")
	flags.BoolP("verbose", "v", false, "Show debug messages")

	for _, name := range []string{"repo-base-dir", "policy", "verbose"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	if err := v.BindEnv("repo-base-dir", "REPO_BASE_DIR"); err != nil {
		panic(err)
	}
}

// appEnv is everything a subcommand needs to know about the repository it operates on.
type appEnv struct {
	Fs       afero.Fs
	BaseDir  string
	Policy   *project.Policy
	Licenses *license.Registry
	Now      func() time.Time
}

func loadEnv(v *viper.Viper) (*appEnv, error) {
	env := &appEnv{
		Fs:       afero.NewOsFs(),
		BaseDir:  v.GetString("repo-base-dir"),
		Policy:   project.DefaultPolicy(),
		Licenses: license.DefaultRegistry(),
		Now:      reproducible.Now,
	}
	if env.BaseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		env.BaseDir = wd
	}
	if filename := v.GetString("policy"); filename != "" {
		policy, err := project.LoadPolicyFile(filename)
		if err != nil {
			return nil, fmt.Errorf("--policy: %w", err)
		}
		env.Policy = policy
	}
	return env, nil
}

func (env *appEnv) checker() *headers.Checker {
	return &headers.Checker{
		Fs:       env.Fs,
		BaseDir:  env.BaseDir,
		Licenses: env.Licenses,
		Policy:   env.Policy,
		Now:      env.Now,
	}
}
