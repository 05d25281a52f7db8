package main

import (
	"context"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/datawire/vscinstall/pkg/cliutil"
)

// packageMetadata is the subset of setup() keyword arguments that is derived from the repository.
type packageMetadata struct {
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	DownloadURL string   `json:"download_url,omitempty"`
	License     string   `json:"license"`
	Classifiers []string `json:"classifiers"`
}

func init() {
	var version string
	cmd := &cobra.Command{
		Use:   "metadata [flags]",
		Short: "Print the packaging metadata derived from the repository",
		Long: "Identify the repository's LICENSE file and its name and URL (from PKG-INFO, " +
			"or else .git/config), and print the resulting packaging metadata as YAML." +
			"\n\n" +
			"For licenses that may not be released on PyPI, a download_url pointing at the " +
			"GitHub archive of --version is included.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnv(settings)
			if err != nil {
				return err
			}
			meta, err := runMetadata(cmd.Context(), env, version)
			if err != nil {
				return err
			}
			return printMetadata(cmd.OutOrStdout(), meta)
		},
	}
	cmd.Flags().StringVar(&version, "version", "", "The `VERSION` of the release being built")
	argparser.AddCommand(cmd)
}

func runMetadata(ctx context.Context, env *appEnv, version string) (*packageMetadata, error) {
	lic, err := env.Licenses.Identify(env.Fs, filepath.Join(env.BaseDir, "LICENSE"))
	if err != nil {
		return nil, err
	}
	ident, err := env.Policy.ResolveRepo(ctx, env.Fs, env.BaseDir, version, lic.Name)
	if err != nil {
		return nil, err
	}
	return &packageMetadata{
		Name:        ident.Name,
		URL:         ident.URL,
		DownloadURL: ident.DownloadURL,
		License:     lic.Name,
		Classifiers: []string{lic.Classifier},
	}, nil
}

func printMetadata(w io.Writer, meta *packageMetadata) error {
	out, err := yaml.Marshal(meta)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
