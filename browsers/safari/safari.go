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

// Safari store adapter.
//
// Safari keeps its bookmarks in a binary property list at
// ~/Library/Safari/Bookmarks.plist. Leaf entries carry the
// WebBookmarkTypeLeaf marker with the url under URLString and the title
// nested in URIDictionary; folders are WebBookmarkTypeList nodes holding
// their entries under Children.
package safari

import (
	"fmt"
	"os"

	"howett.net/plist"

	"github.com/matthewpickle/bmsync"
	"github.com/matthewpickle/bmsync/internal/logging"
	"github.com/matthewpickle/bmsync/internal/utils"
	"github.com/matthewpickle/bmsync/pkg/stores"
)

var log = logging.GetLogger("Safari")

const (
	keyType     = "WebBookmarkType"
	keyURL      = "URLString"
	keyURIDict  = "URIDictionary"
	keyTitle    = "Title"
	keyChildren = "Children"

	typeLeaf = "WebBookmarkTypeLeaf"
	typeList = "WebBookmarkTypeList"
)

type Safari struct {
	*SafariConfig
}

func New() *Safari {
	return &Safari{Config}
}

func (sf *Safari) Name() string {
	return BrowserName
}

func (sf *Safari) Path() (string, error) {
	path, err := utils.ExpandPath(sf.BookmarkFile)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w (run Safari once to create it)",
				sf.BookmarkFile, stores.ErrNotFound)
		}
		return "", err
	}
	return path, nil
}

// load reads and decodes the whole plist tree.
func (sf *Safari) load() (map[string]any, error) {
	path, err := sf.Path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%s: %w (grant full disk access)",
				path, stores.ErrPermission)
		}
		return nil, err
	}

	root := make(map[string]any)
	if _, err := plist.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return root, nil
}

func (sf *Safari) Read() ([]bmsync.Bookmark, error) {
	root, err := sf.load()
	if err != nil {
		return nil, err
	}

	var marks []bmsync.Bookmark
	flatten(root[keyChildren], &marks)
	log.Debugf("parsed %d bookmarks", len(marks))

	return marks, nil
}

// flatten walks the plist tree depth-first collecting leaves in document
// order. Leaves without a url are skipped, they are not valid bookmarks.
func flatten(node any, marks *[]bmsync.Bookmark) {
	switch n := node.(type) {
	case map[string]any:
		if n[keyType] == typeLeaf {
			url, _ := n[keyURL].(string)
			if url == "" {
				return
			}

			title := url
			if uriDict, ok := n[keyURIDict].(map[string]any); ok {
				if t, ok := uriDict["title"].(string); ok {
					title = t
				}
			}

			*marks = append(*marks, bmsync.Bookmark{
				Title:  title,
				URL:    url,
				Origin: bmsync.OriginSafari,
			})
			return
		}
		flatten(n[keyChildren], marks)

	case []any:
		for _, child := range n {
			flatten(child, marks)
		}
	}
}

// AppendFolder rewrites the plist with a fresh top-level folder named name
// holding marks. A previous folder with the same name is dropped first so
// repeated syncs do not pile up stale copies.
func (sf *Safari) AppendFolder(name string, marks []bmsync.Bookmark) error {
	root, err := sf.load()
	if err != nil {
		return err
	}

	children, _ := root[keyChildren].([]any)
	kept := make([]any, 0, len(children)+1)
	for _, child := range children {
		if node, ok := child.(map[string]any); ok && node[keyTitle] == name {
			continue
		}
		kept = append(kept, child)
	}

	leaves := make([]any, 0, len(marks))
	for _, mark := range marks {
		leaves = append(leaves, map[string]any{
			keyType:    typeLeaf,
			keyURL:     mark.URL,
			keyURIDict: map[string]any{"title": mark.Title},
		})
	}

	root[keyChildren] = append(kept, map[string]any{
		keyTitle:    name,
		keyType:     typeList,
		keyChildren: leaves,
	})

	return sf.store(root)
}

// store serializes the tree back in binary plist format, which is what
// Safari itself writes.
func (sf *Safari) store(root map[string]any) error {
	path, err := sf.Path()
	if err != nil {
		return err
	}

	data, err := plist.Marshal(root, plist.BinaryFormat)
	if err != nil {
		return &stores.WriteError{Store: BrowserName, Err: err}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return &stores.WriteError{Store: BrowserName, Err: err}
	}

	return nil
}
