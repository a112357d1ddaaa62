package bundle

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		want Kind
	}{
		{"src/app.js", KindText},
		{"README.md", KindText},
		{"main.GO", KindText},
		{"dir/Makefile", KindText},
		{"Dockerfile", KindText},
		{".gitignore", KindText},
		{`win\style\path.ts`, KindText},
		{"logo.png", KindBinary},
		{"archive.tar.gz", KindBinary},
		{"noext", KindBinary},
		{"bin/tool.exe", KindBinary},
	}
	for _, tt := range cases {
		assert.Equal(t, tt.want, Classify(tt.path), tt.path)
	}
}

func TestClassify_ExtensionOnly(t *testing.T) {
	// content never influences the decision
	png := Encode(FileRecord{Path: "a.png", Data: []byte("plain ascii")})
	js := Encode(FileRecord{Path: "b.js", Data: []byte{0x00, 0x01, 0x02}})

	assert.Equal(t, EncodingBase64, png.Encoding)
	assert.Equal(t, EncodingUTF8, js.Encoding)
	assert.Equal(t, "text", KindText.String())
	assert.Equal(t, "binary", KindBinary.String())
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	records := []FileRecord{
		{Path: "src/app.js", Data: []byte("console.log(1)")},
		{Path: "unicode.md", Data: []byte("héllo wörld ✓\n")},
		{Path: "logo.png", Data: []byte{0x89, 'P', 'N', 'G', 0x00, 0xff, 0xfe}},
		{Path: "empty.bin", Data: []byte{}},
	}

	for _, r := range records {
		enc := Encode(r)
		assert.Equal(t, r.Path, enc.Path)
		got, err := Decode(enc)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(r.Data, got), r.Path)
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(EncodedFile{Path: "x", Content: "!!!", Encoding: EncodingBase64})
	assert.True(t, errors.Is(err, ErrParse))

	_, err = Decode(EncodedFile{Path: "x", Content: "abc", Encoding: "rot13"})
	assert.True(t, errors.Is(err, ErrParse))
}

func TestNew_FileCount(t *testing.T) {
	files := EncodeAll([]FileRecord{{Path: "a.txt", Data: []byte("a")}, {Path: "b.txt", Data: []byte("b")}})
	b := New("proj", time.Now(), files)
	assert.Equal(t, 2, b.Metadata.FileCount)
	assert.Equal(t, len(b.Files), b.Metadata.FileCount)

	empty := New("proj", time.Now(), nil)
	assert.Equal(t, 0, empty.Metadata.FileCount)
	assert.NotNil(t, empty.Files)
}

func TestMarshalUnmarshal(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b := New("proj", created, []EncodedFile{
		Encode(FileRecord{Path: "index.html", Data: []byte("<div>a && b</div>")}),
	})

	text, err := Marshal(b)
	require.NoError(t, err)
	assert.Contains(t, text, `"source": "proj"`)
	assert.Contains(t, text, `"createdAt": "2024-05-01T12:00:00Z"`)
	assert.Contains(t, text, `"fileCount": 1`)
	assert.Contains(t, text, `<div>a && b</div>`)
	assert.False(t, strings.HasSuffix(text, "\n"))

	got, err := Unmarshal(text)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestUnmarshal_Shape(t *testing.T) {
	cases := map[string]string{
		"not json":        "{nope",
		"no metadata":     `{"files": []}`,
		"metadata scalar": `{"metadata": 3, "files": []}`,
		"no files":        `{"metadata": {}}`,
		"files object":    `{"metadata": {}, "files": {}}`,
		"bad record":      `{"metadata": {}, "files": [{"path": 1}]}`,
	}
	for name, text := range cases {
		_, err := Unmarshal(text)
		assert.True(t, errors.Is(err, ErrParse), name)
	}
}

func TestManifest_RoundTrip(t *testing.T) {
	m := &Manifest{Source: "proj", CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), Parts: []string{"b.part1.json", "b.part2.json"}}
	text, err := MarshalManifest(m)
	require.NoError(t, err)

	got, err := UnmarshalManifest(text)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	_, err = UnmarshalManifest(`{"source": "x"}`)
	assert.True(t, errors.Is(err, ErrParse))
	_, err = UnmarshalManifest(`[]]`)
	assert.True(t, errors.Is(err, ErrParse))
}
