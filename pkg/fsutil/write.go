// Copyright (C) 2021-2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package fsutil holds small filesystem helpers that operate on an afero.Fs.
package fsutil

import (
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// ReplaceFile replaces the full content of the existing file `filename` with `content`.
//
// The new content is written to a temporary file in the same directory, which is then renamed
// over the original; readers observe either the old file or the new file, never a mix.  The
// original file's permission bits are kept.  On error the original file is left untouched and
// the temporary file is removed.
func ReplaceFile(fsys afero.Fs, filename string, content []byte) (err error) {
	fi, err := fsys.Stat(filename)
	if err != nil {
		return err
	}
	if !fi.Mode().IsRegular() {
		return &fs.PathError{Op: "replace", Path: filename, Err: fs.ErrInvalid}
	}

	tmp, err := afero.TempFile(fsys, filepath.Dir(filename), "."+filepath.Base(filename)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	maybeSetErr := func(_err error) {
		if _err != nil && err == nil {
			err = _err
		}
	}
	defer func() {
		if err != nil {
			_ = fsys.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		maybeSetErr(tmp.Close())
		return err
	}
	if err := tmp.Sync(); err != nil {
		maybeSetErr(tmp.Close())
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := fsys.Chmod(tmpName, fi.Mode().Perm()); err != nil {
		return err
	}
	return fsys.Rename(tmpName, filename)
}

// WriteNewFile writes `content` to `filename`, creating parent directories as needed.  If the
// file already exists and `force` is false, it fails with an error wrapping fs.ErrExist.
func WriteNewFile(fsys afero.Fs, filename string, content []byte, force bool) error {
	exists, err := afero.Exists(fsys, filename)
	if err != nil {
		return err
	}
	if exists && !force {
		return &fs.PathError{Op: "write", Path: filename, Err: fs.ErrExist}
	}
	if err := fsys.MkdirAll(filepath.Dir(filename), 0o777); err != nil {
		return err
	}
	return afero.WriteFile(fsys, filename, content, 0o666)
}
