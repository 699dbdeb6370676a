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

// Package bmsync holds the core bookmark model and the merge engine shared by
// the browser store adapters.
package bmsync

// Origin identifies which browser a bookmark was read from. It is
// informational only, the merge engine never looks at it.
type Origin int

const (
	OriginUnknown Origin = iota
	OriginSafari
	OriginChrome
)

func (o Origin) String() string {
	switch o {
	case OriginSafari:
		return "safari"
	case OriginChrome:
		return "chrome"
	}
	return "unknown"
}

// Bookmark is the normalized record shared by all store adapters. The URL is
// the identity key and is compared byte-exact; titles may be empty and never
// participate in identity.
type Bookmark struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Origin Origin `json:"origin"`
}
