// File: pkg/pack/traversal.go
package pack

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"ctxpack/pkg/bundle"
	"ctxpack/pkg/ignore"

	"go.uber.org/zap"
)

// IgnoreParser decides whether a root-relative, slash separated path is
// excluded. Directory paths carry a trailing slash.
type IgnoreParser interface {
	MatchesPath(path string) bool
}

// WalkOptions controls which files the walker keeps.
type WalkOptions struct {
	TextOnly bool // Skip files that do not classify as text.
}

// Walk collects every non-ignored regular file below dir. Paths in the
// returned records are relative to rootDir and sorted.
//
// A file that cannot be read is logged and skipped; the walk continues.
// Only a missing or unreadable dir aborts.
func Walk(dir, rootDir string, gi IgnoreParser, opts WalkOptions, logger *zap.Logger) ([]bundle.FileRecord, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: directory %s", bundle.ErrNotFound, dir)
		}
		return nil, fmt.Errorf("%w: %v", bundle.ErrRead, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", bundle.ErrNotFound, dir)
	}

	// WalkDir does not descend into a symlinked root, so walk its target
	// and keep record paths relative to rootDir as given.
	base, err := filepath.Rel(rootDir, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bundle.ErrRead, err)
	}
	walkDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bundle.ErrRead, err)
	}
	if walkDir != filepath.Clean(dir) {
		logger.Debug("Resolved symlinked directory", zap.String("dir", dir), zap.String("target", walkDir))
	}

	var records []bundle.FileRecord
	logger.Debug("Starting file traversal", zap.String("dir", dir), zap.Bool("textOnly", opts.TextOnly))

	err = filepath.WalkDir(walkDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == walkDir {
				return fmt.Errorf("%w: %v", bundle.ErrRead, err)
			}
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			return nil
		}
		if path == walkDir {
			return nil
		}

		relPath, err := filepath.Rel(walkDir, path)
		if err != nil {
			logger.Warn("Unable to determine relative path", zap.String("path", path), zap.Error(err))
			return nil
		}
		relPath = filepath.ToSlash(filepath.Join(base, relPath))

		if d.IsDir() {
			if ignored, ip := matchIgnore(gi, relPath+"/"); ignored {
				logger.Debug("Skipping ignored directory", append([]zap.Field{zap.String("directory", relPath)}, patternFields(ip)...)...)
				return filepath.SkipDir
			}
			return nil
		}

		if ignored, ip := matchIgnore(gi, relPath); ignored {
			logger.Debug("Skipping ignored file", append([]zap.Field{zap.String("file", relPath)}, patternFields(ip)...)...)
			return nil
		}
		if !d.Type().IsRegular() {
			logger.Debug("Skipping non-regular file", zap.String("file", relPath), zap.Stringer("mode", d.Type()))
			return nil
		}
		if opts.TextOnly && !bundle.IsText(relPath) {
			logger.Debug("Skipping binary file", zap.String("file", relPath))
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Failed to read file, skipping", zap.String("file", relPath), zap.Error(err))
			return nil
		}
		if bundle.IsText(relPath) && !utf8.Valid(data) {
			logger.Warn("Text file is not valid UTF-8 and will not round-trip exactly", zap.String("file", relPath))
		}

		records = append(records, bundle.FileRecord{Path: relPath, Data: data})
		logger.Debug("Added file", zap.String("file", relPath), zap.Int("sizeBytes", len(data)))
		return nil
	})
	if err != nil {
		logger.Error("Error during file traversal", zap.Error(err))
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Path < records[j].Path
	})

	logger.Debug("Completed file traversal", zap.Int("files", len(records)))
	return records, nil
}

// matchIgnore asks gi about path, including the deciding pattern when gi
// can report one.
func matchIgnore(gi IgnoreParser, path string) (bool, *ignore.IgnorePattern) {
	if pm, ok := gi.(interface {
		MatchesPathWithPattern(string) (bool, *ignore.IgnorePattern)
	}); ok {
		return pm.MatchesPathWithPattern(path)
	}
	return gi.MatchesPath(path), nil
}

func patternFields(ip *ignore.IgnorePattern) []zap.Field {
	if ip == nil {
		return nil
	}
	return []zap.Field{
		zap.String("patternSource", ip.Source),
		zap.Int("patternLine", ip.LineNo),
		zap.String("pattern", ip.Line),
	}
}
