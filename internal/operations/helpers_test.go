package operations

import (
	"github.com/indaco/depsync/internal/core"
	"github.com/indaco/depsync/internal/discovery"
	"github.com/indaco/depsync/internal/manifest"
)

var testRoots = []string{"/repo/source", "/repo/tools"}

func newRepo(files map[string]string) (*core.MockFileSystem, *manifest.FSStore) {
	fs := core.NewMockFileSystem()
	for path, content := range files {
		fs.SetFile(path, []byte(content))
	}
	walker := discovery.NewWalker(fs, discovery.Options{Filenames: []string{"package.json"}})
	return fs, manifest.NewFSStore(fs, walker)
}
