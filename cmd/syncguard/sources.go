// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"fillmore-labs.com/syncguard/internal/frontend/javasitter"
	"fillmore-labs.com/syncguard/internal/tree"
	"fillmore-labs.com/syncguard/internal/treeio"
)

const javaExt = ".java"

// ignoredDirs are never descended into.
var ignoredDirs = map[string]bool{
	".git":    true,
	".gradle": true,
	".idea":   true,
	"build":   true,
	"target":  true,
	"out":     true,
}

// discover expands paths into source files. Directories are walked recursively, honoring
// a .gitignore file at their root; files named explicitly are always included.
func discover(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var files []string

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			files = append(files, root)

			continue
		}

		gitignore := loadGitignore(root)

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && (ignoredDirs[d.Name()] || gitignore != nil && gitignore.MatchesPath(rel+"/")) {
					return filepath.SkipDir
				}

				return nil
			}

			if !isSource(path) || gitignore != nil && gitignore.MatchesPath(rel) {
				return nil
			}

			files = append(files, path)

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	slices.Sort(files)

	return slices.Compact(files), nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}

	return gi
}

func isSource(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	return ext == javaExt || ext == treeio.Ext
}

// load reads a source file or a tree document.
func load(ctx context.Context, path string) (*tree.Tree, error) {
	if filepath.Ext(path) == treeio.Ext {
		return treeio.ReadFile(path)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return javasitter.Parse(ctx, path, src)
}

// loadAll reads files in order.
func loadAll(ctx context.Context, files []string) ([]*tree.Tree, error) {
	trees := make([]*tree.Tree, 0, len(files))

	for _, f := range files {
		t, err := load(ctx, f)
		if err != nil {
			return nil, err
		}

		trees = append(trees, t)
	}

	return trees, nil
}

// save writes a modified tree back to path, keeping its permissions.
func save(path string, t *tree.Tree) error {
	if filepath.Ext(path) == treeio.Ext {
		return treeio.WriteFile(path, t)
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	return os.WriteFile(path, t.Source(), info.Mode().Perm())
}
