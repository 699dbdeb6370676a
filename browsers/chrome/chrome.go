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

// Chrome store adapter.
//
// Chrome bookmarks are stored in a json file normally called Bookmarks. The
// bookmark roots (bookmark_bar, other, synced) live under the top-level
// `roots` key; url entries carry type "url" with the title under `name`,
// folders carry type "folder" and nest entries under `children`.
package chrome

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/buger/jsonparser"

	"github.com/matthewpickle/bmsync"
	"github.com/matthewpickle/bmsync/internal/logging"
	"github.com/matthewpickle/bmsync/internal/utils"
	"github.com/matthewpickle/bmsync/pkg/stores"
)

var log = logging.GetLogger("Chrome")

var jsonNodePaths = struct {
	Type, Name, URL, Children string
}{"type", "name", "url", "children"}

const (
	nodeTypeURL    = "url"
	nodeTypeFolder = "folder"
	rootsKey       = "roots"
	bookmarkBarKey = "bookmark_bar"
)

// type used to store json nodes in memory for parsing.
type rawNode struct {
	title        []byte
	nType        []byte
	url          []byte
	children     []byte
	childrenType jsonparser.ValueType
}

func (rn *rawNode) parseItems(nodeData []byte) {
	// Paths to lookup in node payload
	paths := [][]string{
		{jsonNodePaths.Type},
		{jsonNodePaths.Name}, // Title of page
		{jsonNodePaths.URL},
		{jsonNodePaths.Children},
	}

	jsonparser.EachKey(nodeData, func(idx int, value []byte, vt jsonparser.ValueType, err error) {
		if err != nil {
			log.Error("error parsing node items")
			return
		}

		switch idx {
		case 0:
			rn.nType = value
		case 1:
			rn.title = value
		case 2:
			rn.url = value
		case 3:
			rn.children, rn.childrenType = value, vt
		}
	}, paths...)
}

type Chrome struct {
	*ChromeConfig
}

func New() *Chrome {
	return &Chrome{Config}
}

func (ch *Chrome) Name() string {
	return BrowserName
}

func (ch *Chrome) Path() (string, error) {
	path, err := utils.ExpandPath(ch.BookmarkFile)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w (run Chrome once to create it)",
				ch.BookmarkFile, stores.ErrNotFound)
		}
		return "", err
	}
	return path, nil
}

func (ch *Chrome) load() ([]byte, error) {
	path, err := ch.Path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%s: %w", path, stores.ErrPermission)
		}
		return nil, err
	}

	return data, nil
}

func (ch *Chrome) Read() ([]bmsync.Bookmark, error) {
	data, err := ch.load()
	if err != nil {
		return nil, err
	}

	rootsData, _, _, err := jsonparser.Get(data, rootsKey)
	if err != nil {
		return nil, fmt.Errorf("no bookmark roots: %w", err)
	}

	var marks []bmsync.Bookmark

	var parseNode func(node []byte)
	parseChildren := func(childVal []byte,
		dataType jsonparser.ValueType,
		offset int,
		err error) {
		if err != nil {
			log.Error(err)
			return
		}
		if dataType != jsonparser.Object {
			return
		}
		parseNode(childVal)
	}

	parseNode = func(node []byte) {
		raw := new(rawNode)
		raw.parseItems(node)

		if string(raw.nType) == nodeTypeURL {
			url := string(raw.url)
			if url == "" {
				// not a bookmark, skip before it reaches the merge
				return
			}
			title := string(raw.title)
			if title == "" {
				title = url
			}
			marks = append(marks, bmsync.Bookmark{
				Title:  title,
				URL:    url,
				Origin: bmsync.OriginChrome,
			})
			return
		}

		if raw.childrenType == jsonparser.Array {
			jsonparser.ArrayEach(node, parseChildren, jsonNodePaths.Children)
		}
	}

	// Each root (bookmark_bar, other, synced) is a folder node. String
	// values like sync_transaction_version are ignored.
	err = jsonparser.ObjectEach(rootsData, func(key, node []byte,
		dataType jsonparser.ValueType, _ int) error {
		if dataType != jsonparser.Object {
			return nil
		}
		parseNode(node)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing bookmark roots: %w", err)
	}

	log.Debugf("parsed %d bookmarks", len(marks))
	return marks, nil
}

// AppendFolder places a fresh folder named name at the end of the bookmark
// bar, dropping any previous folder with that name first. The rest of the
// tree is written back untouched.
//
// The write path round-trips the document through encoding/json rather than
// jsonparser, which is read-oriented.
func (ch *Chrome) AppendFolder(name string, marks []bmsync.Bookmark) error {
	data, err := ch.load()
	if err != nil {
		return err
	}

	doc := make(map[string]any)
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding bookmark file: %w", err)
	}

	roots, ok := doc[rootsKey].(map[string]any)
	if !ok {
		return fmt.Errorf("bookmark file has no %q object", rootsKey)
	}
	bar, ok := roots[bookmarkBarKey].(map[string]any)
	if !ok {
		return fmt.Errorf("bookmark file has no %q root", bookmarkBarKey)
	}

	children, _ := bar[jsonNodePaths.Children].([]any)
	kept := make([]any, 0, len(children)+1)
	for _, child := range children {
		if node, ok := child.(map[string]any); ok && node[jsonNodePaths.Name] == name {
			continue
		}
		kept = append(kept, child)
	}

	leaves := make([]any, 0, len(marks))
	for _, mark := range marks {
		leaves = append(leaves, map[string]any{
			jsonNodePaths.Type: nodeTypeURL,
			jsonNodePaths.Name: mark.Title,
			jsonNodePaths.URL:  mark.URL,
		})
	}

	bar[jsonNodePaths.Children] = append(kept, map[string]any{
		jsonNodePaths.Type:     nodeTypeFolder,
		jsonNodePaths.Name:     name,
		jsonNodePaths.Children: leaves,
	})

	// Chrome rejects the stale checksum otherwise and recomputes it on load
	// either way.
	delete(doc, "checksum")

	return ch.store(doc)
}

func (ch *Chrome) store(doc map[string]any) error {
	path, err := ch.Path()
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &stores.WriteError{Store: BrowserName, Err: err}
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return &stores.WriteError{Store: BrowserName, Err: err}
	}

	return nil
}
