// File: pkg/pack/format.go
package pack

import (
	"fmt"
	"strings"

	"ctxpack/pkg/bundle"
)

// Format selects the output rendering.
type Format string

const (
	// FormatStructured is the JSON bundle document; the only unpackable form.
	FormatStructured Format = "structured"
	// FormatFlattened is a tree diagram followed by inlined file contents.
	FormatFlattened Format = "flattened"
)

// Separators used by the flattened rendering.
var (
	treeSeparator    = strings.Repeat("=", 80)
	sectionSeparator = strings.Repeat("-", 80)
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatStructured, "json", "":
		return FormatStructured, nil
	case FormatFlattened, "text", "txt":
		return FormatFlattened, nil
	default:
		return "", fmt.Errorf("invalid format %q: supported formats are %s and %s", s, FormatStructured, FormatFlattened)
	}
}

// Extension returns the file extension used for outputs of this format.
func (f Format) Extension() string {
	if f == FormatFlattened {
		return ".txt"
	}
	return ".json"
}

// Render serializes b in the requested format.
func Render(b *bundle.Bundle, format Format) (string, error) {
	switch format {
	case FormatStructured:
		return bundle.Marshal(b)
	case FormatFlattened:
		return RenderFlattened(b), nil
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}
}

// RenderFlattened produces the readable, non-reversible rendering: the
// project tree, then one section per file. Binary content is replaced by
// a placeholder.
func RenderFlattened(b *bundle.Bundle) string {
	paths := make([]string, len(b.Files))
	for i, f := range b.Files {
		paths[i] = f.Path
	}

	var sb strings.Builder
	sb.WriteString("Project Structure:\n")
	if tree := RenderTree(BuildTree(paths)); tree != "" {
		sb.WriteString(tree)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(treeSeparator)
	sb.WriteString("\n")

	for i, f := range b.Files {
		if i > 0 {
			sb.WriteString("\n")
			sb.WriteString(sectionSeparator)
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "\n--- File: %s ---\n\n", f.Path)
		if f.Encoding == bundle.EncodingUTF8 {
			sb.WriteString(f.Content)
			if !strings.HasSuffix(f.Content, "\n") {
				sb.WriteString("\n")
			}
		} else {
			fmt.Fprintf(&sb, "[binary file omitted: %d bytes base64]\n", len(f.Content))
		}
	}
	return sb.String()
}
