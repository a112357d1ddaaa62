// Package ignore compiles gitignore-style pattern lists into a single
// path predicate.
//
// Patterns are layered in the order they are added: built-in defaults,
// an optional global ignore file, user supplied patterns and finally the
// project's own .gitignore. The last pattern that matches a path decides
// the outcome, so a "!" pattern added later re-includes a path excluded
// earlier.
package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// ProjectIgnoreFile is the ignore file read from the packing root.
const ProjectIgnoreFile = ".gitignore"

// Pattern sources, recorded on every compiled pattern.
const (
	SourceDefault = "default"
	SourceUser    = "user"
)

// IgnorePattern is one compiled rule.
type IgnorePattern struct {
	Glob    string // doublestar glob evaluated against slash separated paths.
	Negate  bool   // Pattern started with '!'.
	DirOnly bool   // Pattern ended with '/'.
	Source  string // "default", "user" or the file the line came from.
	LineNo  int    // Line number in the source (1-based).
	Line    string // Original pattern line.
}

// Matcher is an ordered, immutable-once-built set of ignore patterns.
type Matcher struct {
	patterns []*IgnorePattern
	logger   *zap.Logger
}

// NewMatcher returns an empty matcher.
func NewMatcher(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Build assembles the matcher used for a pack run: defaults, the optional
// global ignore file, userPatterns and rootDir/.gitignore, in that order.
// A missing global or project ignore file is not an error.
func Build(rootDir string, userPatterns []string, globalIgnoreFile string, logger *zap.Logger) (*Matcher, error) {
	m := NewMatcher(logger)
	m.CompileIgnoreLines(SourceDefault, DefaultPatterns...)

	if globalIgnoreFile != "" {
		if err := m.CompileIgnoreFile(globalIgnoreFile); err != nil {
			return nil, fmt.Errorf("failed to load global ignore file: %w", err)
		}
	}

	if len(userPatterns) > 0 {
		m.CompileIgnoreLines(SourceUser, userPatterns...)
		m.logger.Debug("Added command-line ignore patterns", zap.Int("count", len(userPatterns)))
	}

	if err := m.CompileIgnoreFile(filepath.Join(rootDir, ProjectIgnoreFile)); err != nil {
		return nil, fmt.Errorf("failed to load project ignore file: %w", err)
	}

	m.logger.Debug("Finished loading ignore patterns", zap.Int("totalPatterns", len(m.patterns)))
	return m, nil
}

// Len reports the number of compiled patterns.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// CompileIgnoreLines compiles pattern lines and appends them to the matcher.
// Empty lines, comments and invalid globs are skipped.
func (m *Matcher) CompileIgnoreLines(source string, lines ...string) {
	for i, line := range lines {
		ip, ok := parsePatternLine(line)
		if !ok {
			continue
		}
		if !doublestar.ValidatePattern(ip.Glob) {
			m.logger.Warn("Invalid ignore pattern",
				zap.String("source", source),
				zap.Int("lineNo", i+1),
				zap.String("pattern", line))
			continue
		}
		ip.Source = source
		ip.LineNo = i + 1
		m.patterns = append(m.patterns, ip)
		m.logger.Debug("Compiled ignore pattern",
			zap.String("source", source),
			zap.Int("lineNo", ip.LineNo),
			zap.String("pattern", ip.Line),
			zap.Bool("negate", ip.Negate))
	}
}

// CompileIgnoreFile reads an ignore file line by line into the matcher.
// A file that does not exist is skipped silently.
func (m *Matcher) CompileIgnoreFile(filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", filePath))
			return nil
		}
		m.logger.Error("Failed to read ignore file", zap.String("filePath", filePath), zap.Error(err))
		return err
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	before := len(m.patterns)
	m.CompileIgnoreLines(filePath, lines...)
	m.logger.Debug("Compiled ignore file",
		zap.String("filePath", filePath),
		zap.Int("lineCount", len(lines)),
		zap.Int("patternCount", len(m.patterns)-before))
	return nil
}

// MatchesPath reports whether path is ignored. Directories are marked by a
// trailing slash; directory-only patterns match nothing else.
func (m *Matcher) MatchesPath(p string) bool {
	matched, _ := m.MatchesPathWithPattern(p)
	return matched
}

// MatchesPathWithPattern is MatchesPath that also returns the pattern that
// decided the outcome, or nil when none matched.
//
// A path below an ignored directory stays ignored whatever later patterns
// say about the path itself. A negation naming a directory only re-includes
// the directory; files inside it are still tested against every pattern.
func (m *Matcher) MatchesPathWithPattern(p string) (bool, *IgnorePattern) {
	target, isDir := normalizePath(p)
	if target == "" {
		return false, nil
	}

	segments := strings.Split(target, "/")
	for i := 1; i < len(segments); i++ {
		if matched, ip := m.decide(strings.Join(segments[:i], "/"), true); matched {
			return true, ip
		}
	}
	return m.decide(target, isDir)
}

// decide applies every pattern to candidate alone, last match wins.
func (m *Matcher) decide(candidate string, isDir bool) (bool, *IgnorePattern) {
	matched := false
	var decided *IgnorePattern
	for _, ip := range m.patterns {
		if ip.DirOnly && !isDir {
			continue
		}
		if ok, _ := doublestar.Match(ip.Glob, candidate); ok {
			matched = !ip.Negate
			decided = ip
		}
	}
	return matched, decided
}

// normalizePath converts p to a clean, slash separated relative path and
// reports whether it carried a trailing slash.
func normalizePath(p string) (string, bool) {
	p = filepath.ToSlash(p)
	isDir := strings.HasSuffix(p, "/")
	p = strings.TrimPrefix(path.Clean(p), "/")
	if p == "." {
		return "", isDir
	}
	return p, isDir
}

// parsePatternLine turns one ignore file line into a pattern. It returns
// false for blank lines and comments.
func parsePatternLine(line string) (*IgnorePattern, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, false
	}

	ip := &IgnorePattern{Line: line}
	if strings.HasPrefix(trimmed, "!") {
		ip.Negate = true
		trimmed = trimmed[1:]
	} else if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}

	if strings.HasSuffix(trimmed, "/") {
		ip.DirOnly = true
		trimmed = strings.TrimRight(trimmed, "/")
	}
	if trimmed == "" {
		return nil, false
	}

	// A slash anywhere but the end anchors the pattern to the root.
	anchored := strings.Contains(trimmed, "/")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if anchored {
		ip.Glob = trimmed
	} else {
		ip.Glob = "**/" + trimmed
	}
	return ip, true
}
