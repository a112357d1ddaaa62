package bundle

import "errors"

// Error kinds shared by the pack and unpack pipelines. Callers wrap them
// with context and test with errors.Is.
var (
	ErrNotFound = errors.New("not found")
	ErrRead     = errors.New("read failed")
	ErrParse    = errors.New("invalid bundle")
	ErrWrite    = errors.New("write failed")
	ErrCapacity = errors.New("content exceeds capacity")
)
