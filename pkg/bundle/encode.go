package bundle

import (
	"encoding/base64"
	"fmt"
)

// Encode converts a record to its transport form. The encoding follows
// Classify(r.Path).
func Encode(r FileRecord) EncodedFile {
	if IsText(r.Path) {
		return EncodedFile{Path: r.Path, Content: string(r.Data), Encoding: EncodingUTF8}
	}
	return EncodedFile{
		Path:     r.Path,
		Content:  base64.StdEncoding.EncodeToString(r.Data),
		Encoding: EncodingBase64,
	}
}

// EncodeAll encodes records in order.
func EncodeAll(records []FileRecord) []EncodedFile {
	files := make([]EncodedFile, 0, len(records))
	for _, r := range records {
		files = append(files, Encode(r))
	}
	return files
}

// Decode returns the raw bytes of an encoded file.
func Decode(f EncodedFile) ([]byte, error) {
	switch f.Encoding {
	case EncodingUTF8:
		return []byte(f.Content), nil
	case EncodingBase64:
		data, err := base64.StdEncoding.DecodeString(f.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: bad base64 content: %v", ErrParse, f.Path, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %s: unknown encoding %q", ErrParse, f.Path, f.Encoding)
	}
}
