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

// Main command line entry point for bmsync
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/matthewpickle/bmsync/browsers/chrome"
	"github.com/matthewpickle/bmsync/browsers/safari"
	"github.com/matthewpickle/bmsync/internal/backup"
	"github.com/matthewpickle/bmsync/internal/logging"
	"github.com/matthewpickle/bmsync/pkg/config"
	"github.com/matthewpickle/bmsync/pkg/syncer"
)

var log = logging.GetLogger("MAIN")

func main() {

	app := cli.Command{}

	app.Name = "bmsync"
	app.Usage = "merge Safari and Chrome bookmarks into a shared Synced folder in both browsers"
	app.Description = `bmsync reads the native bookmark stores of Safari and Chrome, merges
them into one list deduplicated by url, and writes the merged set back
into a flat "Synced" folder in each browser. Both native files are backed
up before anything is written and re-running the sync never creates
duplicates, so it is safe to run as often as you like.

Close both browsers before syncing, they keep their bookmark files open.`
	app.Suggest = true
	app.EnableShellCompletion = true
	app.ExitErrHandler = func(ctx context.Context, cli *cli.Command, err error) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		} else {
			os.Exit(0)
		}
	}

	app.Flags = []cli.Flag{

		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Value:       config.DefaultConfPath(),
			Usage:       "config `path`",
			DefaultText: "~/.config/bmsync/config.toml",
		},

		&cli.IntFlag{
			Name:        "debug",
			Aliases:     []string{"D"},
			DefaultText: "0",
			Usage:       "set debug `level` (-1..3)",
			Sources:     cli.EnvVars(logging.EnvBmsyncDebug),
			Action: func(_ context.Context, _ *cli.Command, val int) error {
				logging.SetLogLevel(val)
				return nil
			},
		},

		&cli.BoolFlag{
			Name:    "silent",
			Aliases: []string{"S"},
			Usage:   "disable all log output",
			Action: func(_ context.Context, _ *cli.Command, val bool) error {
				if val {
					logging.SetLogLevel(-1)
				}
				return nil
			},
		},

		&cli.StringFlag{
			Name:  "safari-bookmarks",
			Usage: "safari bookmark plist `path`",
		},

		&cli.StringFlag{
			Name:  "chrome-bookmarks",
			Usage: "chrome bookmark file `path`",
		},

		&cli.StringFlag{
			Name:  "backup-dir",
			Usage: "`dir` for pre-sync snapshots",
		},

		&cli.StringFlag{
			Name:  "folder",
			Usage: "`name` of the merged folder written to both browsers",
		},
	}

	app.Before = func(ctx context.Context, c *cli.Command) (context.Context, error) {
		// file config first, cli flags override it
		config.Init(c.String("config"))

		if c.IsSet("safari-bookmarks") {
			safari.Config.BookmarkFile = c.String("safari-bookmarks")
		}
		if c.IsSet("chrome-bookmarks") {
			chrome.Config.BookmarkFile = c.String("chrome-bookmarks")
		}
		if c.IsSet("backup-dir") {
			backup.Config.Dir = c.String("backup-dir")
		}
		if c.IsSet("folder") {
			syncer.Config.Folder = c.String("folder")
		}

		return ctx, nil
	}

	app.Commands = []*cli.Command{
		syncCmd,
		previewCmd,
		backupsCmd,
	}

	// bare `bmsync` runs a sync
	app.Action = syncCmd.Action

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
