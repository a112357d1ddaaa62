// Package clipboard copies pack output to the system clipboard, refusing
// payloads above a configured size.
package clipboard

import (
	"fmt"

	"ctxpack/pkg/bundle"

	atotto "github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// DefaultLimit is the largest payload copied by default, in bytes.
const DefaultLimit = 5 * 1024 * 1024

// Copier writes text to a clipboard.
type Copier struct {
	Limit int                    // Maximum payload in bytes; <= 0 means DefaultLimit.
	Write func(text string) error // Clipboard backend; the system clipboard when nil.

	logger *zap.Logger
}

// New returns a Copier for the system clipboard.
func New(limit int, logger *zap.Logger) *Copier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Copier{Limit: limit, logger: logger}
}

// Copy places text on the clipboard. A payload over the limit is not
// copied and yields an error wrapping bundle.ErrCapacity.
func (c *Copier) Copy(text string) error {
	logger := c.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := c.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	if len(text) > limit {
		logger.Warn("Output too large for clipboard", zap.Int("sizeBytes", len(text)), zap.Int("limitBytes", limit))
		return fmt.Errorf("%w: %d bytes exceeds clipboard limit of %d bytes", bundle.ErrCapacity, len(text), limit)
	}

	write := c.Write
	if write == nil {
		if atotto.Unsupported {
			return fmt.Errorf("clipboard is not supported on this system")
		}
		write = atotto.WriteAll
	}
	if err := write(text); err != nil {
		logger.Error("Failed to copy to clipboard", zap.Error(err))
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	logger.Debug("Copied output to clipboard", zap.Int("sizeBytes", len(text)))
	return nil
}
