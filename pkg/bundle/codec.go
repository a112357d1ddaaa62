package bundle

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Marshal renders a bundle as the indented JSON interchange document.
func Marshal(b *Bundle) (string, error) {
	return marshalIndent(b)
}

// MarshalManifest renders a manifest as JSON.
func MarshalManifest(m *Manifest) (string, error) {
	return marshalIndent(m)
}

// Unmarshal parses a bundle document. The text must be valid JSON with a
// "metadata" object and a "files" array.
func Unmarshal(text string) (*Bundle, error) {
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrParse)
	}
	if !gjson.Get(text, "metadata").IsObject() {
		return nil, fmt.Errorf("%w: missing metadata object", ErrParse)
	}
	if !gjson.Get(text, "files").IsArray() {
		return nil, fmt.Errorf("%w: missing files array", ErrParse)
	}

	var b Bundle
	if err := json.Unmarshal([]byte(text), &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &b, nil
}

// UnmarshalManifest parses a manifest document; it must carry a "parts"
// array.
func UnmarshalManifest(text string) (*Manifest, error) {
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("%w: manifest is not valid JSON", ErrParse)
	}
	if !gjson.Get(text, "parts").IsArray() {
		return nil, fmt.Errorf("%w: manifest has no parts array", ErrParse)
	}

	var m Manifest
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &m, nil
}

// marshalIndent is json.MarshalIndent without HTML escaping.
func marshalIndent(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}
