package ci

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/afero"

	"github.com/datawire/vscinstall/pkg/fsutil"
	"github.com/datawire/vscinstall/pkg/project"
)

type generatedFile struct {
	Name    string
	Content func() (string, error)
}

// Generate writes the CI configuration files of the project at `dir`.  Existing files are only
// overwritten if `force` is set.  It returns the paths written.
func Generate(ctx context.Context, fsys afero.Fs, dir string, cfg Config, ident *project.Identity, force bool) ([]string, error) {
	files := []generatedFile{
		{ToxIniFile, func() (string, error) { return ToxIni(cfg), nil }},
		{JenkinsfileFile, func() (string, error) { return Jenkinsfile(cfg), nil }},
	}
	if cfg.EnableGitHubActions {
		files = append(files, generatedFile{GitHubActionsFile, func() (string, error) { return GitHubActions(cfg, ident) }})
	}

	var written []string
	for _, file := range files {
		filename := filepath.Join(dir, filepath.FromSlash(file.Name))
		content, err := file.Content()
		if err != nil {
			return written, fmt.Errorf("generate %s: %w", file.Name, err)
		}
		if exists, _ := afero.Exists(fsys, filename); exists && force {
			dlog.Infof(ctx, "found existing file %s, overwriting it since --force is used", filename)
		}
		if err := fsutil.WriteNewFile(fsys, filename, []byte(content), force); err != nil {
			return written, fmt.Errorf("generate %s (use --force to overwrite): %w", file.Name, err)
		}
		dlog.Infof(ctx, "wrote %s", filename)
		written = append(written, filename)
	}
	return written, nil
}
