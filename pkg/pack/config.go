// File: pkg/pack/config.go
package pack

import (
	"time"

	"ctxpack/pkg/bundle"
)

// Arguments holds the configuration options for one pack run.
type Arguments struct {
	Directory        string    // Root directory to pack.
	Output           string    // Destination file; derived from the directory name when empty.
	Format           Format    // Output rendering.
	Split            bool      // Write numbered parts plus a manifest instead of one file.
	ChunkSize        int       // Maximum part size in bytes when Split is set.
	IgnorePatterns   []string  // Additional ignore patterns from the command line or config.
	GlobalIgnoreFile string    // Optional ignore file applied before user patterns.
	NoBinary         bool      // Only pack text-classified files.
	Now              time.Time // Bundle timestamp; time.Now() when zero.
}

// Result describes what a pack run produced.
type Result struct {
	Output   string   // Path of the written bundle, or of the manifest when split.
	Parts    []string // Paths of written part files; empty unless split.
	Text     string   // The rendered output.
	Files    int      // Number of packed files.
	Stats    Stats
	Manifest *bundle.Manifest // Nil unless split.
}
