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

package safari

import (
	"github.com/matthewpickle/bmsync/pkg/config"
)

const (
	BrowserName         = "safari"
	DefaultBookmarkFile = "~/Library/Safari/Bookmarks.plist"
)

type SafariConfig struct {
	BookmarkFile string `toml:"bookmark_file" mapstructure:"bookmark_file"`
}

var Config = &SafariConfig{
	BookmarkFile: DefaultBookmarkFile,
}

func init() {
	config.RegisterConfigurator(BrowserName, config.AsConfigurator(Config))
}
