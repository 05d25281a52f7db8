package testutil

import (
	"fmt"
	"io/fs"
	"strings"
	"testing"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"
)

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

func unifiedDiff(exp, act string) string {
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(exp),
		B:        difflib.SplitLines(act),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  1,
	})
	return diff
}

// AssertEqualText is like assert.Equal for strings, but reports a unified line diff.
func AssertEqualText(t *testing.T, exp, act string) bool {
	t.Helper()
	if exp != act {
		t.Errorf("Text diff:\n%s", unifiedDiff(exp, act))
		return false
	}
	return true
}

// DumpFSListing returns a listing (mode, size, path) of every file and directory in `fsys`,
// in lexical order.
func DumpFSListing(fsys afero.Fs) (string, error) {
	ret := new(strings.Builder)
	table := tabwriter.NewWriter(
		ret, // output
		0,   // minwidth
		1,   // tabwidth
		1,   // padding
		' ', // padchar
		0)   // flags
	err := afero.Walk(fsys, "/", func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(table, strings.Join([]string{
			"",
			info.Mode().String(),
			fmt.Sprintf("% 8d", info.Size()),
			path,
		}, "\t"))
		return err
	})
	if err != nil {
		return "", err
	}
	if err := table.Flush(); err != nil {
		return "", err
	}
	return ret.String(), nil
}

// DumpFSFull returns the listing of `fsys` followed by a dump of the content of every regular
// file.
func DumpFSFull(fsys afero.Fs) (string, error) {
	ret := new(strings.Builder)
	listing, err := DumpFSListing(fsys)
	if err != nil {
		return "", err
	}
	ret.WriteString(listing)
	err = afero.Walk(fsys, "/", func(path string, info fs.FileInfo, err error) error {
		if err != nil || !info.Mode().IsRegular() {
			return err
		}
		content, err := afero.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(ret, "%s =\n%s", path, spewConfig.Sdump(string(content)))
		return err
	})
	if err != nil {
		return "", err
	}
	return ret.String(), nil
}

// DumpFS logs the full content of `fsys`; call it when an assertion about a filesystem fails.
func DumpFS(t *testing.T, fsys afero.Fs) {
	t.Helper()
	dump, err := DumpFSFull(fsys)
	if err != nil {
		t.Errorf("error dumping filesystem: %v", err)
		return
	}
	t.Log(dump)
}

// AssertEqualFS checks that two filesystems have the same tree and file contents.
func AssertEqualFS(t *testing.T, exp, act afero.Fs) bool {
	t.Helper()

	// First just compare the listings, in order to "fail fast" and give more readable output.
	expStr, err := DumpFSListing(exp)
	if err != nil {
		t.Errorf("error dumping expected listing: %v", err)
		return false
	}
	actStr, err := DumpFSListing(act)
	if err != nil {
		t.Errorf("error dumping actual listing: %v", err)
		return false
	}
	if expStr != actStr {
		t.Errorf("Listing diff:\n%s", unifiedDiff(expStr, actStr))
		return false
	}

	expStr, err = DumpFSFull(exp)
	if err != nil {
		t.Errorf("error dumping expected filesystem: %v", err)
		return false
	}
	actStr, err = DumpFSFull(act)
	if err != nil {
		t.Errorf("error dumping actual filesystem: %v", err)
		return false
	}
	if expStr != actStr {
		t.Errorf("Full diff:\n%s", unifiedDiff(expStr, actStr))
		return false
	}
	return true
}
