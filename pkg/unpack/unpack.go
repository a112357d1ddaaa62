// Package unpack recreates a file tree from a structured bundle, read
// either directly or by reassembling the parts listed in a manifest.
package unpack

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"ctxpack/pkg/bundle"

	"go.uber.org/zap"
)

// Options configures an unpack run.
type Options struct {
	OutputDir string // Destination root; derived from the bundle source when empty.
}

// Result describes a completed unpack.
type Result struct {
	OutputDir    string
	FilesWritten int
	Source       string
}

// Unpack reads the bundle or manifest at input and writes every file it
// contains below the output directory. Existing files are overwritten.
// The first write failure aborts the run.
func Unpack(input string, opts Options, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()

	text, err := ReadBundleText(input, logger)
	if err != nil {
		return nil, err
	}

	b, err := bundle.Unmarshal(text)
	if err != nil {
		logger.Error("Failed to parse bundle", zap.String("input", input), zap.Error(err))
		return nil, fmt.Errorf("failed to parse %s: %w", input, err)
	}
	if b.Metadata.FileCount != len(b.Files) {
		logger.Warn("Bundle file count does not match its records",
			zap.Int("fileCount", b.Metadata.FileCount),
			zap.Int("records", len(b.Files)))
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = DefaultOutputDir(b.Metadata.Source)
	}
	logger.Info("Starting unpack",
		zap.String("input", input),
		zap.String("outputDir", outputDir),
		zap.Int("files", len(b.Files)))

	written := 0
	for _, f := range b.Files {
		target, err := targetPath(outputDir, f.Path)
		if err != nil {
			return nil, err
		}
		data, err := bundle.Decode(f)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			logger.Error("Failed to create directory", zap.String("path", filepath.Dir(target)), zap.Error(err))
			return nil, fmt.Errorf("%w: %s: %v", bundle.ErrWrite, f.Path, err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			logger.Error("Failed to write file", zap.String("path", target), zap.Error(err))
			return nil, fmt.Errorf("%w: %s: %v", bundle.ErrWrite, f.Path, err)
		}
		written++
		logger.Debug("Wrote file", zap.String("path", f.Path), zap.Int("sizeBytes", len(data)))
	}

	logger.Info("Unpack completed",
		zap.String("outputDir", outputDir),
		zap.Int("filesWritten", written),
		zap.Duration("elapsed", time.Since(startTime)))
	return &Result{OutputDir: outputDir, FilesWritten: written, Source: b.Metadata.Source}, nil
}

// ReadBundleText returns the serialized bundle at input. Manifests are
// resolved by concatenating their parts, relative to the manifest's
// directory, in listed order.
func ReadBundleText(input string, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	data, err := readInput(input)
	if err != nil {
		return "", err
	}
	if !bundle.IsManifestPath(input) {
		return string(data), nil
	}

	m, err := bundle.UnmarshalManifest(string(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse manifest %s: %w", input, err)
	}
	logger.Debug("Reassembling bundle from manifest", zap.String("manifest", input), zap.Int("parts", len(m.Parts)))

	dir := filepath.Dir(input)
	parts := make([]string, 0, len(m.Parts))
	for _, name := range m.Parts {
		part, err := readInput(filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil {
			return "", err
		}
		parts = append(parts, string(part))
	}
	return bundle.Join(parts), nil
}

// DefaultOutputDir derives the output directory from a bundle source.
func DefaultOutputDir(source string) string {
	name := strings.TrimSpace(filepath.Base(filepath.Clean(source)))
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		name = "bundle"
	}
	return name + "-unpacked"
}

func readInput(p string) ([]byte, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", bundle.ErrNotFound, p)
		}
		return nil, fmt.Errorf("%w: %s: %v", bundle.ErrRead, p, err)
	}
	return data, nil
}

// targetPath joins a record path onto outputDir, rejecting paths that are
// absolute or climb out of it.
func targetPath(outputDir, recordPath string) (string, error) {
	p := strings.ReplaceAll(recordPath, `\`, "/")
	clean := path.Clean(p)
	if p == "" || path.IsAbs(p) || filepath.IsAbs(recordPath) || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: unsafe path %q", bundle.ErrParse, recordPath)
	}
	return filepath.Join(outputDir, filepath.FromSlash(clean)), nil
}
