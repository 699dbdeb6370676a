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

// Package syncer sequences one batch sync run: backup both native files,
// read both stores, merge, write the merged folder back into both.
package syncer

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"

	"github.com/matthewpickle/bmsync"
	"github.com/matthewpickle/bmsync/internal/logging"
	"github.com/matthewpickle/bmsync/internal/utils"
	"github.com/matthewpickle/bmsync/pkg/config"
	"github.com/matthewpickle/bmsync/pkg/stores"
)

var log = logging.GetLogger("SYNC")

const (
	Name              = "sync"
	DefaultFolderName = "Synced"
)

type SyncConfig struct {
	Folder string `toml:"folder" mapstructure:"folder"`
}

var Config = &SyncConfig{
	Folder: DefaultFolderName,
}

func init() {
	config.RegisterConfigurator(Name, config.AsConfigurator(Config))
}

// Snapshotter copies a file somewhere safe before it gets mutated.
type Snapshotter interface {
	Snapshot(path string) (string, error)
}

// ErrBrowserRunning is returned by Preflight when a process still holds a
// native bookmark file open. Mutating the file under a live browser loses
// writes, the browser must be closed first.
type ErrBrowserRunning struct {
	Store string
	Pids  []int32
}

func (e *ErrBrowserRunning) Error() string {
	return fmt.Sprintf("%s bookmark file is held open by pid(s) %v, close the browser first",
		e.Store, e.Pids)
}

// Syncer runs the pipeline over two stores. The first store wins URL
// conflicts, its titles are kept.
type Syncer struct {
	First   stores.Store
	Second  stores.Store
	Backups Snapshotter

	// DryRun computes the merge without mutating either store.
	DryRun bool
}

// Result describes one finished run.
type Result struct {
	RunID      string
	Merged     []bmsync.Bookmark
	Backups    []string
	FromFirst  int
	FromSecond int
}

// Preflight reports an error when either native bookmark file is still held
// open by a running process. Mutual exclusion with the browsers is
// procedural, there is no lock to take on the files.
func (s *Syncer) Preflight() error {
	for _, store := range []stores.Store{s.First, s.Second} {
		path, err := store.Path()
		if err != nil {
			return err
		}

		users, err := utils.FileProcessUsers(path)
		if err != nil {
			log.Warnf("could not check processes for %s: %s", path, err)
			continue
		}
		if len(users) > 0 {
			pids := make([]int32, 0, len(users))
			for pid := range users {
				pids = append(pids, pid)
			}
			return &ErrBrowserRunning{Store: store.Name(), Pids: pids}
		}
	}

	return nil
}

// Run executes one sync: snapshot both files, read both stores, merge,
// write the first store then the second.
//
// Error policy: a backup failure aborts before anything is touched. A write
// failure on the first store aborts before the second store is touched so
// the two browsers never end up merged against different sets. A failure on
// the second store reports the backup to restore from. Any aborted run can
// simply be re-run, the merge is idempotent.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	runID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	res := &Result{RunID: runID.String()}
	log.Infof("starting sync run %s", res.RunID)

	if !s.DryRun {
		for _, store := range []stores.Store{s.First, s.Second} {
			path, err := store.Path()
			if err != nil {
				return nil, err
			}
			bk, err := s.Backups.Snapshot(path)
			if err != nil {
				return nil, fmt.Errorf("aborting before any write: %w", err)
			}
			res.Backups = append(res.Backups, bk)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	firstMarks, err := s.First.Read()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.First.Name(), err)
	}
	secondMarks, err := s.Second.Read()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Second.Name(), err)
	}

	res.FromFirst = len(firstMarks)
	res.FromSecond = len(secondMarks)
	res.Merged = bmsync.Merge(firstMarks, secondMarks)
	log.Infof("merged %d + %d bookmarks into %d",
		len(firstMarks), len(secondMarks), len(res.Merged))

	if s.DryRun {
		log.Info("dry run, not writing")
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.First.AppendFolder(Config.Folder, res.Merged); err != nil {
		// second store deliberately left untouched
		return nil, fmt.Errorf("%w (restore from %s if needed)",
			err, res.Backups[0])
	}

	if err := s.Second.AppendFolder(Config.Folder, res.Merged); err != nil {
		return nil, fmt.Errorf("%w (restore from %s)", err, res.Backups[1])
	}

	log.Infof("sync run %s done, check the %q folder in both browsers",
		res.RunID, Config.Folder)
	return res, nil
}
