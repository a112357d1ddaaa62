// Package pack walks a project directory and renders it as a single
// bundle, optionally split into numbered parts with a manifest.
package pack

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ctxpack/pkg/bundle"
	"ctxpack/pkg/ignore"

	"go.uber.org/zap"
)

// RunPack orchestrates a pack: it builds the ignore set, collects files,
// renders the bundle and writes it to disk in one final step.
func RunPack(args *Arguments, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()

	rootDir, err := filepath.Abs(args.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	logger.Info("Starting pack", zap.String("directory", rootDir), zap.String("format", string(args.Format)))

	format := args.Format
	if format == "" {
		format = FormatStructured
	}
	source := SourceName(rootDir)
	output := args.Output
	if output == "" {
		output = DefaultOutput(source, format)
	}

	patterns := append([]string{}, args.IgnorePatterns...)
	patterns = append(patterns, selfIgnorePatterns(rootDir, output, args.Split)...)

	gi, err := ignore.Build(rootDir, patterns, args.GlobalIgnoreFile, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded ignore patterns", zap.Int("totalPatterns", gi.Len()))

	records, err := Walk(rootDir, rootDir, gi, WalkOptions{TextOnly: args.NoBinary}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to collect files: %w", err)
	}
	if len(records) == 0 {
		logger.Warn("No files to pack after filtering", zap.String("directory", rootDir))
	}

	now := args.Now
	if now.IsZero() {
		now = time.Now()
	}
	b := bundle.New(source, now, bundle.EncodeAll(records))

	text, err := Render(b, format)
	if err != nil {
		return nil, fmt.Errorf("failed to render bundle: %w", err)
	}

	result := &Result{
		Output: output,
		Text:   text,
		Files:  len(b.Files),
		Stats:  ComputeStats(records, text, logger),
	}

	if args.Split {
		if err := writeSplit(result, b.Metadata, format, args.ChunkSize, logger); err != nil {
			return nil, err
		}
	} else {
		if err := ensureDirectory(filepath.Dir(output), logger); err != nil {
			return nil, err
		}
		if err := writeToFile(output, []byte(text), logger); err != nil {
			return nil, err
		}
	}

	logger.Info("Pack completed",
		zap.String("output", result.Output),
		zap.Int("files", result.Files),
		zap.Int("parts", len(result.Parts)),
		zap.Int64("totalSize", result.Stats.TotalSize),
		zap.Duration("elapsed", time.Since(startTime)))
	return result, nil
}

// writeSplit writes the rendered text as numbered parts next to the output
// path, followed by the manifest.
func writeSplit(result *Result, meta bundle.Metadata, format Format, chunkSize int, logger *zap.Logger) error {
	if chunkSize == 0 {
		chunkSize = bundle.DefaultChunkSize
	}
	chunks, err := bundle.Split(result.Text, chunkSize)
	if err != nil {
		return err
	}

	dir := filepath.Dir(result.Output)
	if err := ensureDirectory(dir, logger); err != nil {
		return err
	}

	names := bundle.PartNames(result.Output, len(chunks))
	for i, chunk := range chunks {
		partPath := filepath.Join(dir, names[i])
		if err := writeToFile(partPath, []byte(chunk), logger); err != nil {
			return err
		}
		result.Parts = append(result.Parts, partPath)
	}

	manifest := &bundle.Manifest{Source: meta.Source, CreatedAt: meta.CreatedAt, Parts: names}
	text, err := bundle.MarshalManifest(manifest)
	if err != nil {
		return fmt.Errorf("failed to render manifest: %w", err)
	}
	manifestPath := filepath.Join(dir, bundle.ManifestName(result.Output))
	if err := writeToFile(manifestPath, []byte(text), logger); err != nil {
		return err
	}

	logger.Debug("Wrote split output",
		zap.String("manifest", manifestPath),
		zap.Int("parts", len(chunks)),
		zap.String("format", string(format)),
		zap.Int("chunkSize", chunkSize))
	result.Output = manifestPath
	result.Manifest = manifest
	return nil
}

// SourceName is the bundle source recorded for a root directory.
func SourceName(rootDir string) string {
	name := filepath.Base(filepath.Clean(rootDir))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "project"
	}
	return name
}

// DefaultOutput is the output path used when none is given.
func DefaultOutput(source string, format Format) string {
	return source + "-bundle" + format.Extension()
}

// selfIgnorePatterns keeps a previous run's output from being packed when
// the output lives inside the root directory.
func selfIgnorePatterns(rootDir, output string, split bool) []string {
	absOutput, err := filepath.Abs(output)
	if err != nil {
		return nil
	}
	rel, err := filepath.Rel(rootDir, absOutput)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	rel = filepath.ToSlash(rel)

	patterns := []string{"/" + escapeGlob(rel)}
	if split {
		dir := filepath.ToSlash(filepath.Dir(rel))
		prefix := "/"
		if dir != "." {
			prefix += escapeGlob(dir) + "/"
		}
		base := filepath.Base(rel)
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)
		if stem == "" {
			stem, ext = base, ""
		}
		patterns = append(patterns,
			prefix+escapeGlob(stem)+".part*"+escapeGlob(ext),
			prefix+escapeGlob(bundle.ManifestName(base)))
	}
	return patterns
}

func escapeGlob(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`*?[]{}\`, r) {
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: create directory %s: %v", bundle.ErrWrite, path, err)
	}
	return nil
}

// writeToFile writes data to a file and logs the operation.
func writeToFile(path string, data []byte, logger *zap.Logger) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Error("Failed to write file", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %s: %v", bundle.ErrWrite, path, err)
	}
	logger.Debug("Successfully wrote file", zap.String("path", path), zap.Int("sizeBytes", len(data)))
	return nil
}
