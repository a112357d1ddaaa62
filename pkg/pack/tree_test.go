package pack

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTree(t *testing.T) {
	tree := BuildTree([]string{
		"README.md",
		"src/app.js",
		"src/lib/util.js",
		"src/lib/deep/x.js",
		"src/main.js",
		"docs/guide.md",
	})

	want := strings.Join([]string{
		"├── README.md",
		"├── src/",
		"│   ├── app.js",
		"│   ├── lib/",
		"│   │   ├── util.js",
		"│   │   └── deep/",
		"│   │       └── x.js",
		"│   └── main.js",
		"└── docs/",
		"    └── guide.md",
	}, "\n")
	assert.Equal(t, want, RenderTree(tree))
}

func TestBuildTree_EachDirectoryOnce(t *testing.T) {
	paths := []string{"a/b/c/1.txt", "a/b/c/2.txt", "a/b/3.txt", "a/4.txt", "e/f/5.txt"}
	lines := strings.Split(RenderTree(BuildTree(paths)), "\n")

	for dir, wantDepth := range map[string]int{"a/": 0, "b/": 1, "c/": 2, "e/": 0, "f/": 1} {
		seen := 0
		for _, line := range lines {
			name := strings.TrimLeft(line, "│├└─ ")
			if name != dir {
				continue
			}
			seen++
			// each nesting level and the connector are four columns wide
			prefix := len([]rune(line)) - len([]rune(name))
			assert.Equal(t, wantDepth, prefix/4-1, dir)
		}
		assert.Equal(t, 1, seen, dir)
	}
}

func TestBuildTree_DirectoryFlags(t *testing.T) {
	root := BuildTree([]string{"x/y.txt", "z.txt"})
	require.Len(t, root.Children, 2)
	assert.True(t, root.IsDir())
	assert.True(t, root.Children[0].IsDir())
	assert.False(t, root.Children[1].IsDir())
	assert.Equal(t, "", RenderTree(BuildTree(nil)))
}
