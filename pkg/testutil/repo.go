package testutil

import (
	"io/fs"
	"path"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/datawire/vscinstall/pkg/license"
)

const (
	// RepoDir is where NewRepo puts the repository.
	RepoDir = "/repo"

	// LicenseText stands in for the LGPLv2+ LICENSE file in NewRepo repositories.
	LicenseText = "pretend this is the LGPL\n"

	// GitConfig is the .git/config of a clone of hpcugent/vsc-install.
	GitConfig = `[core]
	repositoryformatversion = 0
[remote "origin"]
	url = git@github.com:hpcugent/vsc-install.git
	fetch = +refs/heads/*:refs/remotes/origin/*
`
)

// Licenses returns the default license registry, except that LGPLv2+ is identified by
// LicenseText instead of the full text of the LGPL.
func Licenses(t *testing.T) *license.Registry {
	t.Helper()
	records := license.DefaultRecords()
	for i := range records {
		if records[i].Name == "LGPLv2+" {
			records[i].MD5 = license.MD5Sum([]byte(LicenseText))
		}
	}
	reg, err := license.NewRegistry(records, license.DefaultTemplates())
	require.NoError(t, err)
	return reg
}

// NewRepo returns an in-memory filesystem holding an LGPLv2+ clone of hpcugent/vsc-install at
// RepoDir, plus `files` (keyed by slash-separated path relative to RepoDir).  Files under bin/
// are made executable.
func NewRepo(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	write := func(name, content string) {
		perm := fs.FileMode(0o644)
		if strings.HasPrefix(name, "bin/") {
			perm = 0o755
		}
		require.NoError(t, afero.WriteFile(fsys, path.Join(RepoDir, name), []byte(content), perm))
	}
	write("LICENSE", LicenseText)
	write(".git/config", GitConfig)
	for name, content := range files {
		write(name, content)
	}
	return fsys
}
