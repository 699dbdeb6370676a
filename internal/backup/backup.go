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

// Package backup snapshots native bookmark files before the sync pipeline
// mutates them. Snapshots are plain copies named
// <base>.<YYYYMMDD_HHMMSS>.bak under the backup dir.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/OneOfOne/xxhash"
	"github.com/hako/durafmt"

	"github.com/matthewpickle/bmsync/internal/logging"
	"github.com/matthewpickle/bmsync/internal/utils"
	"github.com/matthewpickle/bmsync/pkg/config"
)

var log = logging.GetLogger("BKUP")

const (
	Name            = "backup"
	DefaultDir      = "~/Desktop/bookmark_sync_backups"
	snapshotExt     = ".bak"
	timestampLayout = "20060102_150405"
)

type BackupConfig struct {
	Dir string `toml:"dir" mapstructure:"dir"`
}

var Config = &BackupConfig{
	Dir: DefaultDir,
}

func init() {
	config.RegisterConfigurator(Name, config.AsConfigurator(Config))
}

type Service struct {
	*BackupConfig
}

func NewService() *Service {
	return &Service{Config}
}

func (s *Service) dir() (string, error) {
	return utils.ExpandUser(s.Dir)
}

// Snapshot copies path unchanged into the backup dir and returns the
// snapshot's path. The copy is checksummed against the source before it
// counts as a usable backup.
func (s *Service) Snapshot(path string) (string, error) {
	dir, err := s.dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating backup dir: %w", err)
	}

	stamp := time.Now().Format(timestampLayout)
	dst := filepath.Join(dir,
		fmt.Sprintf("%s.%s%s", filepath.Base(path), stamp, snapshotExt))

	if err := utils.CopyFileToDst(path, dst); err != nil {
		return "", fmt.Errorf("snapshot %s: %w", path, err)
	}

	srcSum, err := checksum(path)
	if err != nil {
		return "", err
	}
	dstSum, err := checksum(dst)
	if err != nil {
		return "", err
	}
	if srcSum != dstSum {
		os.Remove(dst)
		return "", fmt.Errorf("snapshot %s: checksum mismatch", path)
	}

	log.Infof("backup created: %s", dst)
	return dst, nil
}

// Snapshot describes one existing backup file.
type Snapshot struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Age renders how long ago the snapshot was taken.
func (sn Snapshot) Age() string {
	return durafmt.ParseShort(time.Since(sn.ModTime)).String()
}

// List returns existing snapshots, newest first. A missing backup dir is not
// an error, it just means no backups were taken yet.
func (s *Service) List() ([]Snapshot, error) {
	dir, err := s.dir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snaps []Snapshot
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), snapshotExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		snaps = append(snaps, Snapshot{
			Path:    filepath.Join(dir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].ModTime.After(snaps[j].ModTime)
	})

	return snaps, nil
}

func checksum(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return xxhash.Checksum64(data), nil
}
