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

package bmsync

// Merge returns the URL-deduplicated union of two bookmark lists. Records are
// emitted in order of first appearance scanning a then b, so when both lists
// contain the same URL the record from a wins and keeps its title.
//
// Merge is a pure function: inputs are never mutated and no state survives the
// call. It is total over its domain, a record with an empty URL is treated
// like any other (validating URLs is the store adapter's job). Re-merging the
// result with either input yields the same URL set, which is what makes the
// whole sync pipeline safe to re-run.
func Merge(a, b []Bookmark) []Bookmark {
	seen := make(map[string]struct{}, len(a)+len(b))
	merged := make([]Bookmark, 0, len(a)+len(b))

	for _, mark := range append(append([]Bookmark{}, a...), b...) {
		if _, ok := seen[mark.URL]; ok {
			continue
		}
		seen[mark.URL] = struct{}{}
		merged = append(merged, mark)
	}

	return merged
}
