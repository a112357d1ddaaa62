package bundle

import (
	"path"
	"strings"
)

// Kind is the result of classifying a path.
type Kind int

const (
	KindBinary Kind = iota
	KindText
)

func (k Kind) String() string {
	if k == KindText {
		return "text"
	}
	return "binary"
}

// TextExtensions lists the lower-case extensions stored as readable text.
// Everything else is stored as base64.
var TextExtensions = map[string]bool{
	// docs and plain text
	".txt": true, ".md": true, ".markdown": true, ".rst": true, ".adoc": true,
	".tex": true, ".org": true, ".csv": true, ".tsv": true,

	// web
	".html": true, ".htm": true, ".css": true, ".scss": true, ".sass": true,
	".less": true, ".js": true, ".mjs": true, ".cjs": true, ".jsx": true,
	".ts": true, ".tsx": true, ".vue": true, ".svelte": true, ".astro": true,
	".svg": true,

	// data and config
	".json": true, ".jsonc": true, ".json5": true, ".yaml": true, ".yml": true,
	".toml": true, ".ini": true, ".cfg": true, ".conf": true, ".env": true,
	".properties": true, ".xml": true, ".graphql": true, ".gql": true,
	".proto": true, ".sql": true, ".prisma": true, ".lock": true,

	// languages
	".go": true, ".mod": true, ".py": true, ".pyi": true, ".rb": true,
	".php": true, ".java": true, ".kt": true, ".kts": true, ".scala": true,
	".groovy": true, ".gradle": true, ".c": true, ".h": true, ".cc": true,
	".cpp": true, ".cxx": true, ".hpp": true, ".hh": true, ".cs": true,
	".fs": true, ".swift": true, ".m": true, ".mm": true, ".rs": true,
	".zig": true, ".dart": true, ".lua": true, ".pl": true, ".pm": true,
	".r": true, ".jl": true, ".ex": true, ".exs": true, ".erl": true,
	".hrl": true, ".hs": true, ".elm": true, ".clj": true, ".cljs": true,
	".ml": true, ".mli": true, ".nim": true, ".v": true, ".sol": true,
	".tf": true, ".hcl": true,

	// shell and build
	".sh": true, ".bash": true, ".zsh": true, ".fish": true, ".ps1": true,
	".bat": true, ".cmd": true, ".mk": true, ".cmake": true, ".dockerfile": true,

	// templates
	".tmpl": true, ".tpl": true, ".hbs": true, ".ejs": true, ".pug": true,
	".erb": true, ".j2": true,

	// misc dotfiles handled by extension
	".gitignore": true, ".gitattributes": true, ".editorconfig": true,
	".npmrc": true, ".nvmrc": true, ".prettierrc": true, ".eslintrc": true,
	".babelrc": true, ".dockerignore": true,
}

// TextFileNames lists lower-case extensionless file names stored as text.
var TextFileNames = map[string]bool{
	"makefile":    true,
	"dockerfile":  true,
	"license":     true,
	"readme":      true,
	"procfile":    true,
	"gemfile":     true,
	"rakefile":    true,
	"jenkinsfile": true,
	"vagrantfile": true,
}

// Classify decides text or binary from the path alone. Content is never
// inspected, so two files with the same extension always classify alike.
func Classify(p string) Kind {
	base := strings.ToLower(path.Base(strings.ReplaceAll(p, `\`, "/")))
	if TextExtensions[path.Ext(base)] || TextFileNames[base] {
		return KindText
	}
	return KindBinary
}

// IsText reports whether p classifies as text.
func IsText(p string) bool {
	return Classify(p) == KindText
}
