package project_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/vscinstall/pkg/project"
)

func readTestdata(t *testing.T, name string) string {
	t.Helper()
	bs, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(bs)
}

func TestResolve(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Version  string
		License  string
		Expected project.Identity
	}
	vscInstall := project.Identity{
		Name:        "vsc-install",
		URL:         "https://github.com/hpcugent/vsc-install",
		DownloadURL: "https://github.com/hpcugent/vsc-install/archive/0.1.2.tar.gz",
	}
	private := vscInstall
	private.Private = true
	noDownload := vscInstall
	noDownload.DownloadURL = ""

	testcases := map[string]testcase{
		"PKG-INFO":              {"0.1.2", "", vscInstall},
		"git_config":            {"0.1.2", "", vscInstall},
		"git_config_scp":        {"0.1.2", "", private},
		"git_config_git":        {"0.1.2", "", private},
		"git_config_ssh":        {"0.1.2", "", private},
		"git_config_fork_first": {"0.1.2", "", vscInstall},
		"git_config_azure": {"1.0", "ARR", project.Identity{
			Name: "vsc-azure",
			URL:  "https://dev.azure.com/VUB-ICT/hpc/_git/vsc-azure",
		}},
	}
	for tcName, tcData := range testcases {
		tcName, tcData := tcName, tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			ctx := dlog.NewTestContext(t, true)
			ident, err := project.DefaultPolicy().Resolve(ctx, tcName, readTestdata(t, tcName),
				tcData.Version, tcData.License)
			require.NoError(t, err)
			assert.Equal(t, tcData.Expected, *ident)
		})
	}

	t.Run("pypi-license", func(t *testing.T) {
		t.Parallel()
		ctx := dlog.NewTestContext(t, true)
		ident, err := project.DefaultPolicy().Resolve(ctx, "git_config", readTestdata(t, "git_config"),
			"0.1.2", "LGPLv2+")
		require.NoError(t, err)
		assert.Equal(t, noDownload, *ident)
	})

	t.Run("no-version", func(t *testing.T) {
		t.Parallel()
		ctx := dlog.NewTestContext(t, true)
		ident, err := project.DefaultPolicy().Resolve(ctx, "git_config", readTestdata(t, "git_config"),
			"", "ARR")
		require.NoError(t, err)
		assert.Equal(t, noDownload, *ident)
	})
}

func TestResolveFork(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	_, err := project.DefaultPolicy().Resolve(ctx, "git_config_fork_only", readTestdata(t, "git_config_fork_only"),
		"0.1.2", "")
	var missing *project.MissingKeyError
	require.True(t, errors.As(err, &missing), "got %v", err)
	assert.Equal(t, "url", missing.Key)
	assert.EqualError(t, err, "missing url in git_config_fork_only (missing mandatory remote? "+
		"github.ugent.be/hpcugent, github.com/hpcugent, github.com/vub-hpc, dev.azure.com/VUB-ICT)")
}

func TestResolveScansOnlyTheStart(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	source := "[core]\n" + strings.Repeat("# padding\n", 2000) +
		"[remote \"origin\"]\n\turl = https://github.com/hpcugent/vsc-install.git\n"
	_, err := project.DefaultPolicy().Resolve(ctx, "padded", source, "", "")
	var missing *project.MissingKeyError
	assert.True(t, errors.As(err, &missing), "got %v", err)
}

func TestResolveRepo(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	fsys := afero.NewMemMapFs()

	_, err := project.DefaultPolicy().ResolveRepo(ctx, fsys, "/repo", "", "")
	assert.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)

	require.NoError(t, afero.WriteFile(fsys, "/repo/.git/config",
		[]byte(readTestdata(t, "git_config_scp")), 0o644))
	ident, err := project.DefaultPolicy().ResolveRepo(ctx, fsys, "/repo", "", "GPLv2")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/hpcugent/vsc-install", ident.URL)

	// PKG-INFO wins over .git/config
	require.NoError(t, afero.WriteFile(fsys, "/repo/PKG-INFO",
		[]byte("Name: other\nHome-page: https://github.com/vub-hpc/other\n"), 0o644))
	ident, err = project.DefaultPolicy().ResolveRepo(ctx, fsys, "/repo", "", "GPLv2")
	require.NoError(t, err)
	assert.Equal(t, project.Identity{Name: "other", URL: "https://github.com/vub-hpc/other"}, *ident)
}
