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

package config

import (
	"fmt"
	"os"
	"path"

	"github.com/BurntSushi/toml"

	"github.com/matthewpickle/bmsync/internal/utils"
)

const (
	ConfigFileName = "config.toml"
	ConfigDirName  = "bmsync"
)

// DefaultConfPath returns the default config file location under the user
// config dir.
func DefaultConfPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("could not get config dir: %s", err)
	}

	return path.Join(configDir, ConfigDirName, ConfigFileName)
}

func CheckConfigExists(path string) (bool, error) {
	return utils.CheckFileExists(path)
}

// LoadFromTomlFile maps each top-level toml section onto the configurator
// registered under the same name.
func LoadFromTomlFile(path string) error {
	buffer := make(map[string]any)
	_, err := toml.DecodeFile(path, &buffer)
	if err != nil {
		return fmt.Errorf("loading config file %w", err)
	}

	for k, val := range buffer {
		c, ok := configs[k]
		if !ok {
			log.Warnf("unknown config section [%s]", k)
			continue
		}
		if err := c.MapFrom(val); err != nil {
			return fmt.Errorf("parsing config <%s>: %w", k, err)
		}
	}

	return nil
}
