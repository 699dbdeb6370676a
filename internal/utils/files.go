//
// Copyright (c) 2025 Matthew Pickle and `bmsync` contributors.
//
// All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// This file is part of bmsync.
//
// bmsync is free software: you can redistribute it and/or modify it under the terms of
// the GNU Affero General Public License as published by the Free Software Foundation,
// either version 3 of the License, or (at your option) any later version.
//
// bmsync is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR
// PURPOSE.  See the GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License along with
// bmsync.  If not, see <http://www.gnu.org/licenses/>.

package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

func CheckFileExists(file string) (bool, error) {
	info, err := os.Stat(file)
	if err == nil {
		if info.IsDir() {
			errMsg := fmt.Sprintf("'%s' is a directory", file)
			return false, errors.New(errMsg)
		}

		return true, nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

// CopyFileToDst copies src to dst, carrying over the source's modification
// time so snapshots keep the original timestamp.
func CopyFileToDst(src string, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	if err != nil {
		return err
	}

	err = dstFile.Sync()
	if err != nil {
		return err
	}

	return os.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime())
}

// ExpandUser expands environment variables and a leading tilde without
// touching the filesystem. Use this for paths that may not exist yet.
func ExpandUser(path string) (string, error) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	path = os.ExpandEnv(path)

	if len(path) > 0 && path[0] == '~' {
		path = filepath.Join(homedir, path[1:])
	}
	return path, nil
}

// ExpandPath expands a path with environment variables and tilde.
// Symlinks are followed by default.
func ExpandPath(paths ...string) (string, error) {
	var homedir string
	var err error
	if homedir, err = os.UserHomeDir(); err != nil {
		return "", err
	}
	path := os.ExpandEnv(filepath.Join(paths...))

	if len(path) > 0 && path[0] == '~' {
		path = filepath.Join(homedir, path[1:])
	}
	return filepath.EvalSymlinks(path)
}
