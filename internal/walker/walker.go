// File: internal/walker/walker.go
// Enumerates candidate source files under a project root. The walk probes
// the directories where backend and frontend projects conventionally keep
// their source, skips dependency caches and build output, and accepts a
// fixed set of source extensions. Partial results always beat failure; only
// an unreadable root aborts.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// CandidateDirs are the conventionally-named directories probed under the
// project root, in fixed order. The root's own direct files are scanned as
// well.
var CandidateDirs = []string{
	"api", "routes", "controllers", "models", "services", "middleware",
	"config", "server", "backend", "src", "app", "pages", "components",
	"lib", "utils",
}

// EntryFiles are well-known root-level entry points probed independently of
// the candidate directories.
var EntryFiles = []string{
	"index.js", "index.ts", "server.js", "server.ts",
	"app.js", "app.ts", "main.js", "main.ts", "main.py", "main.go",
}

// SupportedExtensions lists accepted source extensions in resolver probe
// order. The order is part of the import-resolution contract: a ".ts"
// candidate is tried before a ".js" one.
var SupportedExtensions = []string{
	".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs",
	".py", ".rb", ".go", ".java", ".php", ".cs", ".rs",
}

// excludedDirs are never descended into: dependency caches, VCS metadata and
// build output.
var excludedDirs = map[string]struct{}{
	"node_modules": {}, ".git": {}, ".svn": {}, ".hg": {},
	"dist": {}, "build": {}, "out": {}, "target": {}, "vendor": {},
	"__pycache__": {}, ".next": {}, ".nuxt": {}, "coverage": {},
	"venv": {}, ".venv": {},
}

var extSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(SupportedExtensions))
	for _, ext := range SupportedExtensions {
		m[ext] = struct{}{}
	}
	return m
}()

// RootError reports that the project root itself could not be opened as a
// directory. It is the only fatal error class a scan can surface.
type RootError struct {
	Path string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("project root %q cannot be read: %v", e.Path, e.Err)
}

func (e *RootError) Unwrap() error { return e.Err }

// Walker enumerates candidate files under a project root.
type Walker struct {
	logger      *zap.Logger
	maxFileSize int64
}

// New creates a Walker. Files larger than maxFileSize bytes are skipped.
func New(logger *zap.Logger, maxFileSize int64) *Walker {
	return &Walker{
		logger:      logger.Named("walker"),
		maxFileSize: maxFileSize,
	}
}

// IsSupported reports whether a path carries one of the accepted source
// extensions.
func IsSupported(path string) bool {
	_, ok := extSet[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Walk returns the absolute paths of every candidate file under root, in
// deterministic order: root-level files first, then each candidate directory
// in table order, lexically within each. An unreadable subdirectory is
// logged and skipped; only an unreadable root returns an error, and that
// error is always a *RootError.
func (w *Walker) Walk(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, &RootError{Path: root, Err: err}
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	// Root-level files, including the well-known entry points. os.ReadDir
	// sorts by name, so this pass is deterministic.
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(root, entry.Name())
		if w.accept(path, entry) {
			add(path)
		}
	}
	for _, name := range EntryFiles {
		path := filepath.Join(root, name)
		if _, dup := seen[path]; dup {
			continue
		}
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			add(path)
		}
	}

	// Candidate directories, recursively, in table order.
	for _, dir := range CandidateDirs {
		dirPath := filepath.Join(root, dir)
		info, err := os.Stat(dirPath)
		if err != nil || !info.IsDir() {
			continue
		}
		w.walkDir(dirPath, add)
	}

	return files, nil
}

// walkDir recursively collects supported files under dir, pruning excluded
// directories and tolerating unreadable ones.
func (w *Walker) walkDir(dir string, add func(string)) {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// An unreadable entry must not abort the whole walk.
			w.logger.Warn("Skipping unreadable path",
				zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			if _, excluded := excludedDirs[d.Name()]; excluded {
				return filepath.SkipDir
			}
			return nil
		}
		if w.accept(path, d) {
			add(path)
		}
		return nil
	})
	if err != nil {
		w.logger.Warn("Directory walk ended early",
			zap.String("dir", dir), zap.Error(err))
	}
}

// accept applies the extension and size filters to one file entry.
func (w *Walker) accept(path string, d fs.DirEntry) bool {
	if !IsSupported(path) {
		return false
	}
	info, err := d.Info()
	if err != nil {
		w.logger.Warn("Cannot stat file, skipping",
			zap.String("path", path), zap.Error(err))
		return false
	}
	if w.maxFileSize > 0 && info.Size() > w.maxFileSize {
		w.logger.Debug("Skipping oversized file",
			zap.String("path", path), zap.Int64("size", info.Size()))
		return false
	}
	return true
}
