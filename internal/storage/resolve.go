package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	verrors "github.com/PolarWolf314/vellum/internal/errors"
	"github.com/bmatcuk/doublestar/v4"
)

// SealedExt is the file extension of encrypted documents.
const SealedExt = ".vlm"

// Kind selects which files ResolveFiles returns.
type Kind int

const (
	// KindPlain selects documents that are not sealed.
	KindPlain Kind = iota
	// KindSealed selects documents with SealedExt.
	KindSealed
)

func (k Kind) matches(path string) bool {
	sealed := IsSealed(path)
	if k == KindSealed {
		return sealed
	}
	return !sealed
}

// IsSealed reports whether path names an encrypted document.
func IsSealed(path string) bool {
	return strings.HasSuffix(filepath.Base(path), SealedExt)
}

// SealedPath returns the envelope path for a plain document.
func SealedPath(path string) string {
	return path + SealedExt
}

// PlainPath returns the plain document path for an envelope.
func PlainPath(path string) string {
	return strings.TrimSuffix(path, SealedExt)
}

// ResolveFiles takes user-provided paths, directories and globs and returns
// the matching files of the given kind, deduplicated, in pattern order.
// Relative patterns are resolved against basePath.
func ResolveFiles(patterns []string, basePath string, kind Kind) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern, basePath, kind)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		return nil, verrors.ErrNoFilesFound
	}

	return files, nil
}

func resolvePattern(pattern string, basePath string, kind Kind) ([]string, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(basePath, pattern)
	}

	info, err := os.Stat(absPattern)
	if err == nil && info.IsDir() {
		return findFilesInDir(absPattern, kind)
	}

	if strings.ContainsAny(pattern, "*?[{") {
		return expandGlob(absPattern, pattern, kind)
	}

	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", verrors.ErrRead, pattern)
	}
	if !kind.matches(absPattern) {
		if kind == KindSealed {
			return nil, fmt.Errorf("file is not a %s file: %s", SealedExt, pattern)
		}
		return nil, fmt.Errorf("file is already sealed: %s", pattern)
	}

	return []string{absPattern}, nil
}

func expandGlob(absPattern, pattern string, kind Kind) ([]string, error) {
	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var filtered []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if strings.HasPrefix(filepath.Base(m), ".") {
			continue
		}
		if kind.matches(m) {
			filtered = append(filtered, m)
		}
	}

	return filtered, nil
}

func findFilesInDir(dir string, kind Kind) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		if kind.matches(path) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}
