package headers_test

import (
	"io/fs"
	"testing"

	"github.com/datawire/dlib/dlog"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/vscinstall/pkg/headers"
	"github.com/datawire/vscinstall/pkg/testutil"
)

func TestCheckTree(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	fsys, checker := newTestRepo(t)
	good := expectedHeader(ctx, t, checker, 2001)

	files := map[string]string{
		"/repo/lib/vsc/__init__.py":     good + "\"\"\"pkg\"\"\"\n",
		"/repo/lib/vsc/stale.py":        "# stale\n\"\"\"doc\"\"\"\n",
		"/repo/lib/vsc/data.txt":        "not python\n",
		"/repo/lib/vsc/vendor/thing.py": "# someone else's\n\"\"\"doc\"\"\"\n",
		"/repo/bin/tool.sh":             "#!/bin/bash\n" + good + "### END OF HEADER\necho\n",
		"/repo/bin/stale.py":            "#!/usr/bin/python\n" + good + "\"\"\"doc\"\"\"\n",
		"/repo/test/test_x.py":          "# tests are not checked\n\"\"\"doc\"\"\"\n",
	}
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(content), 0o644))
	}

	changed, err := checker.CheckTree(ctx, headers.TreeOptions{
		Exclude: []string{"lib/**/vendor/**"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/repo/lib/vsc/stale.py", "/repo/bin/stale.py"}, changed)
	for name, content := range files {
		actual, err := afero.ReadFile(fsys, name)
		require.NoError(t, err)
		assert.Equal(t, content, string(actual), "lint must not write %s", name)
	}

	changed, err = checker.CheckTree(ctx, headers.TreeOptions{
		Exclude: []string{"lib/**/vendor/**"},
		Write:   true,
	})
	require.NoError(t, err)
	assert.Len(t, changed, 2)

	changed, err = checker.CheckTree(ctx, headers.TreeOptions{
		Exclude: []string{"lib/**/vendor/**"},
	})
	if !assert.NoError(t, err) || !assert.Empty(t, changed) {
		testutil.DumpFS(t, fsys)
	}
}

func TestCheckTreeCollectsErrors(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	fsys, checker := newTestRepo(t)
	require.NoError(t, fsys.Remove("/repo/LICENSE"))
	require.NoError(t, afero.WriteFile(fsys, "/repo/lib/a.py", []byte("# a\n\"\"\"\n"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/repo/lib/b.py", []byte("# b\n\"\"\"\n"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/repo/lib/ext.py",
		[]byte("### External compatible license\n\"\"\"\n"), 0o644))

	changed, err := checker.CheckTree(ctx, headers.TreeOptions{})
	assert.Empty(t, changed)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok, "got %T", err)
	assert.Len(t, merr.Errors, 2)
}

func TestCheckTreeIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, true)
	fsys, checker := newTestRepo(t)
	require.NoError(t, afero.WriteFile(fsys, "/repo/lib/a.py", []byte("# a\n\"\"\"\n"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/repo/lib/b.py", []byte("import os\n"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/repo/bin/run.sh", []byte("#!/bin/bash\necho hi\n"), 0o755))

	// fixing a tree twice gives the same result as fixing it once
	once := afero.NewMemMapFs()
	_, err := checker.CheckTree(ctx, headers.TreeOptions{Write: true})
	require.NoError(t, err)
	require.NoError(t, copyFS(fsys, once))
	_, err = checker.CheckTree(ctx, headers.TreeOptions{Write: true})
	require.NoError(t, err)
	testutil.AssertEqualFS(t, once, fsys)
}

func copyFS(src, dst afero.Fs) error {
	return afero.Walk(src, "/", func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return dst.MkdirAll(path, info.Mode().Perm())
		}
		content, err := afero.ReadFile(src, path)
		if err != nil {
			return err
		}
		return afero.WriteFile(dst, path, content, info.Mode().Perm())
	})
}
