package bundle

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the default part size for split output, in bytes.
const DefaultChunkSize = 1_000_000

// Split cuts text into consecutive chunks of at most chunkSize bytes.
// Cuts are moved back to a rune boundary when that leaves a non-empty
// chunk. Join(Split(text, n)) == text for every n >= 1.
func Split(text string, chunkSize int) ([]string, error) {
	if chunkSize < 1 {
		return nil, fmt.Errorf("chunk size must be at least 1, got %d", chunkSize)
	}

	var chunks []string
	for len(text) > 0 {
		end := chunkSize
		if end >= len(text) {
			chunks = append(chunks, text)
			break
		}
		cut := end
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		if cut == 0 {
			cut = end
		}
		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}
	return chunks, nil
}

// Join concatenates parts in order.
func Join(parts []string) string {
	return strings.Join(parts, "")
}

// PartNames returns the base names of n part files for output, e.g.
// "bundle.json" -> "bundle.part1.json", "bundle.part2.json".
func PartNames(output string, n int) []string {
	stem, ext := splitExt(filepath.Base(output))
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s.part%d%s", stem, i+1, ext)
	}
	return names
}

// ManifestName returns the manifest file name for output, e.g.
// "bundle.json" -> "bundle.manifest.json".
func ManifestName(output string) string {
	stem, _ := splitExt(filepath.Base(output))
	return stem + ManifestSuffix
}

// ManifestSuffix identifies manifest files by name.
const ManifestSuffix = ".manifest.json"

// IsManifestPath reports whether p names a manifest.
func IsManifestPath(p string) bool {
	base := strings.ToLower(filepath.Base(p))
	return base == "manifest.json" || strings.HasSuffix(base, ManifestSuffix)
}

func splitExt(name string) (string, string) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" {
		return name, ""
	}
	return stem, ext
}
