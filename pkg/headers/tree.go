package headers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/datawire/dlib/dlog"
	"github.com/gobwas/glob"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
)

// TreeOptions controls CheckTree.
type TreeOptions struct {
	// Exclude holds glob patterns, matched against slash-separated paths relative to the
	// repository root.  "**" matches across directories.
	Exclude []string
	Write   bool
}

type treeRoot struct {
	Dir      string
	IsScript bool
	Match    func(name string) bool
}

// CheckTree runs Check over the modules under lib/ (*.py) and the scripts under bin/ (every
// file).  A failure for one file does not stop the others; all failures are returned together.
// It returns the files whose header differs.
func (c *Checker) CheckTree(ctx context.Context, opts TreeOptions) (changed []string, err error) {
	excludes := make([]glob.Glob, 0, len(opts.Exclude))
	for _, pattern := range opts.Exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		excludes = append(excludes, g)
	}
	excluded := func(rel string) bool {
		for _, g := range excludes {
			if g.Match(rel) {
				return true
			}
		}
		return false
	}

	roots := []treeRoot{
		{Dir: "lib", IsScript: false, Match: func(name string) bool { return filepath.Ext(name) == ".py" }},
		{Dir: "bin", IsScript: true, Match: func(string) bool { return true }},
	}

	var errs *multierror.Error
	for _, root := range roots {
		rootDir := filepath.Join(c.BaseDir, root.Dir)
		if _, err := c.Fs.Stat(rootDir); errors.Is(err, fs.ErrNotExist) {
			dlog.Debugf(ctx, "no %s directory", root.Dir)
			continue
		}
		walkErr := afero.Walk(c.Fs, rootDir, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				errs = multierror.Append(errs, err)
				return nil
			}
			rel, err := filepath.Rel(c.BaseDir, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if excluded(rel) {
				dlog.Debugf(ctx, "excluding %s", rel)
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !info.Mode().IsRegular() || !root.Match(info.Name()) {
				return nil
			}
			fileChanged, err := c.Check(ctx, path, root.IsScript, opts.Write)
			if err != nil {
				errs = multierror.Append(errs, err)
			}
			if fileChanged {
				changed = append(changed, path)
			}
			return nil
		})
		if walkErr != nil {
			errs = multierror.Append(errs, walkErr)
		}
	}
	return changed, errs.ErrorOrNil()
}
