// Package fsutil provides file system discovery helpers for pipeline
// documents.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PipelineExtensions lists the file extensions recognized as pipeline
// documents when expanding directory and glob targets.
var PipelineExtensions = []string{".hcl", ".yaml", ".yml"}

// FindFilesByExtension recursively searches the given root path for all files
// ending with one of the specified extensions. It returns their full paths in
// lexical walk order.
func FindFilesByExtension(rootPath string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		panic("fsutil: at least one extension is required")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, ext := range extensions {
			if strings.HasSuffix(d.Name(), ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// ExpandTargets resolves a mixed list of files, directories, and doublestar
// glob patterns into a deduplicated, sorted list of pipeline document paths.
// A literal path that does not exist and matches no pattern is an error, so
// typos surface instead of silently shrinking the lint scope.
func ExpandTargets(targets []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		switch {
		case err == nil && info.IsDir():
			found, err := FindFilesByExtension(target, PipelineExtensions...)
			if err != nil {
				return nil, fmt.Errorf("walking %s: %w", target, err)
			}
			for _, f := range found {
				add(f)
			}
		case err == nil:
			add(target)
		default:
			matches, err := doublestar.FilepathGlob(target)
			if err != nil {
				return nil, fmt.Errorf("invalid path pattern %q: %w", target, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("path %q matched no files", target)
			}
			for _, m := range matches {
				if hasPipelineExtension(m) {
					add(m)
				}
			}
		}
	}

	slices.Sort(files)
	return files, nil
}

func hasPipelineExtension(path string) bool {
	return slices.Contains(PipelineExtensions, filepath.Ext(path))
}
