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

// Package stores defines the contracts between the sync pipeline and the
// per-browser bookmark store adapters.
package stores

import (
	"errors"
	"fmt"

	"github.com/matthewpickle/bmsync"
)

var (
	// ErrNotFound means the native bookmark file does not exist. Browsers
	// only create it after their first run.
	ErrNotFound = errors.New("bookmark file not found")

	// ErrPermission means the native bookmark file exists but cannot be
	// accessed. On macOS this usually calls for granting full disk access.
	ErrPermission = errors.New("bookmark file access denied")
)

// WriteError wraps a failure while serializing the native tree back to disk.
// The store name tells the user which backup to restore from.
type WriteError struct {
	Store string
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s bookmarks: %s", e.Store, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Reader extracts the flat bookmark list out of a browser's native store.
type Reader interface {
	// Read parses the native bookmark tree and returns its bookmarks in
	// document order. Folder hierarchy is flattened. Records with an empty
	// URL are dropped here, before they reach the merge engine.
	Read() ([]bmsync.Bookmark, error)
}

// Writer inserts a flat folder of bookmarks into a browser's native store.
type Writer interface {
	// AppendFolder replaces any top-level folder called name with a fresh
	// one holding the given records, preserving all other content of the
	// native tree.
	AppendFolder(name string, marks []bmsync.Bookmark) error
}

// Store is what the sync pipeline needs from one browser.
type Store interface {
	Reader
	Writer

	// Name is the human-readable store name used in logs and errors.
	Name() string

	// Path returns the absolute path of the native bookmark file, for
	// backups and preflight checks.
	Path() (string, error)
}
