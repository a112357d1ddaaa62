package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchesPath_Patterns(t *testing.T) {
	cases := []struct {
		pat  string
		path string
		want bool
	}{
		// unanchored names match at any depth
		{"*.png", "logo.png", true},
		{"*.png", "assets/img/logo.png", true},
		{"*.png", "logo.png.txt", false},
		{"secret.txt", "a/b/secret.txt", true},

		// single-char ?
		{"file?.txt", "file1.txt", true},
		{"file?.txt", "file12.txt", false},

		// anchored patterns
		{"/todo.md", "todo.md", true},
		{"/todo.md", "docs/todo.md", false},
		{"docs/*.md", "docs/a.md", true},
		{"docs/*.md", "docs/sub/a.md", false},
		{"docs/*.md", "other/docs/a.md", false},

		// double star
		{"docs/**/*.md", "docs/a.md", true},
		{"docs/**/*.md", "docs/x/y/a.md", true},
		{"**/gen/*.go", "a/b/gen/x.go", true},

		// directory patterns cover their subtree
		{"build/", "build/", true},
		{"build/", "build/out/app.bin", true},
		{"build/", "src/build/x.c", true},
		{"build/", "build", false},
		{"tmp", "tmp/x.txt", true},

		// character classes
		{"[ab].txt", "a.txt", true},
		{"[ab].txt", "c.txt", false},
	}

	for _, tt := range cases {
		m := NewMatcher(nil)
		m.CompileIgnoreLines(SourceUser, tt.pat)
		assert.Equal(t, tt.want, m.MatchesPath(tt.path), "pattern %q path %q", tt.pat, tt.path)
	}
}

func TestMatchesPath_NegationLastMatchWins(t *testing.T) {
	m := NewMatcher(nil)
	m.CompileIgnoreLines(SourceUser, "*.log", "!important.log")

	assert.True(t, m.MatchesPath("debug.log"))
	assert.False(t, m.MatchesPath("important.log"))
	assert.False(t, m.MatchesPath("logs/important.log"))

	matched, ip := m.MatchesPathWithPattern("important.log")
	assert.False(t, matched)
	require.NotNil(t, ip)
	assert.True(t, ip.Negate)
	assert.Equal(t, 2, ip.LineNo)

	// a later broad pattern wins again
	m.CompileIgnoreLines(SourceUser, "important.*")
	assert.True(t, m.MatchesPath("important.log"))
}

func TestMatchesPath_DirectoryNegation(t *testing.T) {
	cases := []struct {
		patterns []string
		path     string
		want     bool
	}{
		// re-including a directory leaves file-level matches inside it alone
		{[]string{"*.log", "!src/"}, "src/debug.log", true},
		{[]string{"*.log", "!src/"}, "src/", false},
		{[]string{"*.log", "!src/"}, "src/main.go", false},
		{[]string{"secret.txt", "!docs"}, "docs/secret.txt", true},
		{[]string{"secret.txt", "!docs"}, "docs/guide.md", false},
		{[]string{"build/", "!build/"}, "build/app.bin", false},
		{[]string{"build/", "*.log", "!build/"}, "build/out/run.log", true},

		// nothing below an ignored directory can be re-included
		{[]string{"build/", "!build/keep.txt"}, "build/keep.txt", true},
		{[]string{"vendor", "!*.go"}, "vendor/lib/x.go", true},
	}

	for _, tt := range cases {
		m := NewMatcher(nil)
		m.CompileIgnoreLines(SourceUser, tt.patterns...)
		assert.Equal(t, tt.want, m.MatchesPath(tt.path), "patterns %q path %q", tt.patterns, tt.path)
	}
}

func TestMatchesPathWithPattern_ReportsAncestor(t *testing.T) {
	m := NewMatcher(nil)
	m.CompileIgnoreLines(SourceUser, "dist/", "!*.js")

	matched, ip := m.MatchesPathWithPattern("dist/app.js")
	assert.True(t, matched)
	require.NotNil(t, ip)
	assert.Equal(t, "dist/", ip.Line)
	assert.Equal(t, 1, ip.LineNo)

	matched, ip = m.MatchesPathWithPattern("README.md")
	assert.False(t, matched)
	assert.Nil(t, ip)
}

func TestMatchesPath_CommentsAndEscapes(t *testing.T) {
	m := NewMatcher(nil)
	m.CompileIgnoreLines(SourceUser, "", "   ", "# comment", `\#hash`, `\!bang`)

	assert.Equal(t, 2, m.Len())
	assert.True(t, m.MatchesPath("#hash"))
	assert.True(t, m.MatchesPath("!bang"))
	assert.False(t, m.MatchesPath("comment"))
}

func TestMatchesPath_NormalizesSeparators(t *testing.T) {
	m := NewMatcher(nil)
	m.CompileIgnoreLines(SourceUser, "src/gen/")

	assert.True(t, m.MatchesPath(filepath.Join("src", "gen", "x.go")))
	assert.True(t, m.MatchesPath("./src/gen/x.go"))
	assert.False(t, m.MatchesPath(""))
	assert.False(t, m.MatchesPath("."))
}

func TestMatchesPath_IsDeterministic(t *testing.T) {
	m := NewMatcher(nil)
	m.CompileIgnoreLines(SourceDefault, DefaultPatterns...)

	for i := 0; i < 3; i++ {
		assert.True(t, m.MatchesPath("node_modules/"))
		assert.True(t, m.MatchesPath("web/node_modules/react/index.js"))
		assert.True(t, m.MatchesPath("package-lock.json"))
		assert.False(t, m.MatchesPath("src/app.js"))
	}
}

func TestBuild_Layers(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ProjectIgnoreFile),
		[]byte("# assets\n*.png\n!keep.png\n\r\nnode_modules/\n!node_modules/\n"), 0644))

	global := filepath.Join(t.TempDir(), "global-ignore")
	require.NoError(t, os.WriteFile(global, []byte("*.bak\n"), 0644))

	m, err := Build(root, []string{"secrets/"}, global, nil)
	require.NoError(t, err)

	assert.True(t, m.MatchesPath(".git/"), "default pattern")
	assert.True(t, m.MatchesPath("notes.bak"), "global pattern")
	assert.True(t, m.MatchesPath("secrets/key.pem"), "user pattern")
	assert.True(t, m.MatchesPath("logo.png"), "project pattern")
	assert.False(t, m.MatchesPath("keep.png"), "project negation")
	assert.False(t, m.MatchesPath("node_modules/"), "project negation of a default")
	assert.False(t, m.MatchesPath("src/app.js"))
}

func TestBuild_MissingFilesAreNotErrors(t *testing.T) {
	root := t.TempDir()

	m, err := Build(root, nil, filepath.Join(root, "does-not-exist"), nil)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultPatterns), m.Len())
}

func TestBuild_UnreadableIgnoreFile(t *testing.T) {
	root := t.TempDir()
	// a directory where the file should be cannot be read as a file
	require.NoError(t, os.Mkdir(filepath.Join(root, ProjectIgnoreFile), 0755))

	_, err := Build(root, nil, "", nil)
	assert.Error(t, err)
}
