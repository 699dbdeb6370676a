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

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/xlab/treeprint"

	"github.com/matthewpickle/bmsync/browsers/chrome"
	"github.com/matthewpickle/bmsync/browsers/safari"
	"github.com/matthewpickle/bmsync/internal/backup"
	"github.com/matthewpickle/bmsync/pkg/syncer"
)

func newSyncer(dryRun bool) *syncer.Syncer {
	return &syncer.Syncer{
		// safari first, it wins url conflicts
		First:   safari.New(),
		Second:  chrome.New(),
		Backups: backup.NewService(),
		DryRun:  dryRun,
	}
}

func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

var syncCmd = &cli.Command{
	Name:  "sync",
	Usage: "merge both bookmark stores and write the result back",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "skip the close-your-browsers confirmation",
		},
		&cli.BoolFlag{
			Name:  "force",
			Usage: "sync even when a browser seems to be running",
		},
		&cli.BoolFlag{
			Name:    "dry-run",
			Aliases: []string{"n"},
			Usage:   "compute the merge without writing anything",
		},
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		s := newSyncer(c.Bool("dry-run"))

		if !s.DryRun {
			if err := s.Preflight(); err != nil {
				var running *syncer.ErrBrowserRunning
				if errors.As(err, &running) && c.Bool("force") {
					log.Warnf("%s, continuing anyway", running)
				} else {
					return err
				}
			}

			if !c.Bool("yes") &&
				!confirm("Please close Safari and Chrome first. Continue?") {
				return errors.New("aborted")
			}
		}

		res, err := s.Run(ctx)
		if err != nil {
			return err
		}

		if s.DryRun {
			fmt.Printf("would sync %d bookmarks (%d from safari, %d from chrome)\n",
				len(res.Merged), res.FromFirst, res.FromSecond)
			return nil
		}

		fmt.Printf("Bookmarks synced! %d entries in the %q folder of both browsers.\n",
			len(res.Merged), syncer.Config.Folder)
		return nil
	},
}

var previewCmd = &cli.Command{
	Name:  "preview",
	Usage: "show the merged folder that a sync would write",
	Action: func(ctx context.Context, c *cli.Command) error {
		s := newSyncer(true)
		res, err := s.Run(ctx)
		if err != nil {
			return err
		}

		tree := treeprint.New()
		folder := tree.AddBranch(syncer.Config.Folder)
		for _, mark := range res.Merged {
			folder.AddNode(fmt.Sprintf("%s (%s)", mark.Title, mark.URL))
		}
		fmt.Print(tree.String())

		fmt.Printf("%d bookmarks: %d from safari, %d from chrome\n",
			len(res.Merged), res.FromFirst, res.FromSecond)
		return nil
	},
}

var backupsCmd = &cli.Command{
	Name:  "backups",
	Usage: "list pre-sync snapshots, newest first",
	Action: func(ctx context.Context, c *cli.Command) error {
		snaps, err := backup.NewService().List()
		if err != nil {
			return err
		}

		if len(snaps) == 0 {
			fmt.Println("no backups yet")
			return nil
		}

		for _, snap := range snaps {
			fmt.Printf("%s\t%d bytes\t%s ago\n", snap.Path, snap.Size, snap.Age())
		}
		return nil
	},
}
