// File: pkg/pack/stats.go
package pack

import (
	"ctxpack/pkg/bundle"

	"github.com/tiktoken-go/tokenizer"
	"go.uber.org/zap"
)

// Stats summarizes a pack run for reporting.
type Stats struct {
	TotalSize       int64 // Sum of raw file sizes in bytes.
	TextFiles       int
	BinaryFiles     int
	EstimatedTokens int // Tokens in the rendered output (o200k_base).
}

// ComputeStats derives Stats from the packed records and the rendered
// output.
func ComputeStats(records []bundle.FileRecord, output string, logger *zap.Logger) Stats {
	var s Stats
	for _, r := range records {
		s.TotalSize += int64(len(r.Data))
		if bundle.IsText(r.Path) {
			s.TextFiles++
		} else {
			s.BinaryFiles++
		}
	}
	s.EstimatedTokens = EstimateTokens(output, logger)
	return s
}

// EstimateTokens counts tokens with tiktoken, falling back to a
// characters/4 estimate when the tokenizer is unavailable.
func EstimateTokens(text string, logger *zap.Logger) int {
	if logger == nil {
		logger = zap.NewNop()
	}
	enc, err := tokenizer.Get(tokenizer.O200kBase)
	if err != nil {
		logger.Debug("Tokenizer unavailable, using estimate", zap.Error(err))
		return len(text) / 4
	}
	count, err := enc.Count(text)
	if err != nil {
		logger.Debug("Token count failed, using estimate", zap.Error(err))
		return len(text) / 4
	}
	return count
}
