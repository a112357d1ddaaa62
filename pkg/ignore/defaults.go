package ignore

// DefaultPatterns are always applied first, before any user or project
// pattern, so a project .gitignore can still re-include them with "!".
var DefaultPatterns = []string{
	// Version control
	".git/",
	".svn/",
	".hg/",

	// Dependencies
	"node_modules/",
	"bower_components/",
	"vendor/",
	".venv/",
	"venv/",
	"__pycache__/",
	"*.pyc",

	// Build output and caches
	"dist/",
	"build/",
	"target/",
	"out/",
	"coverage/",
	".next/",
	".nuxt/",
	".cache/",
	".gradle/",
	"*.class",
	"*.o",

	// Editors and operating systems
	".idea/",
	".vscode/",
	".DS_Store",
	"Thumbs.db",

	// Logs
	"*.log",

	// Lockfiles
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"bun.lockb",
	"go.sum",
	"Cargo.lock",
	"poetry.lock",
	"Pipfile.lock",
	"composer.lock",
	"Gemfile.lock",
}
