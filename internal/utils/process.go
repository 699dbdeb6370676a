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
	"os"
	"path/filepath"

	psutil "github.com/shirou/gopsutil/v4/process"
)

// FileProcessUsers returns the processes currently holding path open, keyed
// by pid. Used to refuse syncing while a browser still owns its bookmark
// file.
func FileProcessUsers(path string) (map[int32]*psutil.Process, error) {
	fusers := make(map[int32]*psutil.Process)

	processes, err := psutil.Processes()
	if err != nil &&
		err != os.ErrPermission {
		return nil, err
	}

	// Eval symlinks
	relPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, err
	}

	for _, p := range processes {
		files, err := p.OpenFiles()
		if err != nil {
			// processes we cannot inspect are not ours to report
			continue
		}

		for _, f := range files {
			if f.Path == relPath {
				fusers[p.Pid] = p
			}
		}
	}

	return fusers, nil
}
