package discovery

// Match is a manifest file found during a walk.
type Match struct {
	// Root is the configured root the file was found under.
	Root string

	// Path is the full path to the file.
	Path string

	// RelPath is the path relative to Root.
	RelPath string

	// Filename is the base name of the file.
	Filename string
}

// Options configures a Walker.
type Options struct {
	// Filenames lists the manifest base names to collect.
	Filenames []string

	// Exclude lists glob patterns matched against entry names and paths
	// relative to the root.
	Exclude []string

	// MaxDepth limits how many directory levels below a root are visited.
	// Zero or less selects core.MaxDiscoveryDepth.
	MaxDepth int
}

// skipDirs are dependency and build trees that never hold owned manifests.
var skipDirs = []string{
	"node_modules",
	"bower_components",
	"jspm_packages",
	"vendor",
	"__pycache__",
	"target",
	"dist",
	"build",
}
