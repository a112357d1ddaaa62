// Package bundle defines the portable bundle document and the pure
// transformations around it: text/binary classification, content
// encoding, JSON serialization and chunked splitting.
package bundle

import (
	"time"
)

// Encoding tags how EncodedFile.Content is stored.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf8"
	EncodingBase64 Encoding = "base64"
)

// FileRecord is a file read from disk during a pack.
type FileRecord struct {
	Path string // Slash separated path relative to the packing root.
	Data []byte // Raw file content.
}

// EncodedFile is a FileRecord encoded for transport.
type EncodedFile struct {
	Path     string   `json:"path"`
	Content  string   `json:"content"`
	Encoding Encoding `json:"encoding"`
}

// Metadata describes where and when a bundle was produced.
type Metadata struct {
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
	FileCount int       `json:"fileCount"`
}

// Bundle is the structured document produced by a pack and consumed by an
// unpack.
type Bundle struct {
	Metadata Metadata      `json:"metadata"`
	Files    []EncodedFile `json:"files"`
}

// Manifest lists the part files of a split output in reassembly order.
type Manifest struct {
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
	Parts     []string  `json:"parts"`
}

// New builds a bundle from encoded files. FileCount always equals
// len(files).
func New(source string, createdAt time.Time, files []EncodedFile) *Bundle {
	if files == nil {
		files = []EncodedFile{}
	}
	return &Bundle{
		Metadata: Metadata{
			Source:    source,
			CreatedAt: createdAt.UTC(),
			FileCount: len(files),
		},
		Files: files,
	}
}
