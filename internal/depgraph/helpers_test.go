package depgraph

import (
	"context"
	"testing"

	"github.com/indaco/depsync/internal/core"
	"github.com/indaco/depsync/internal/discovery"
	"github.com/indaco/depsync/internal/manifest"
)

// pkg builds a record; deps and devDeps are name/version pairs.
func pkg(name, version string, deps, devDeps []string) *manifest.PackageRecord {
	return &manifest.PackageRecord{
		Name:            name,
		Version:         version,
		Dependencies:    pairs(deps),
		DevDependencies: pairs(devDeps),
		Origin:          manifest.Handle{Path: "/repo/source/" + name + "/package.json", Format: manifest.FormatJSON},
	}
}

func pairs(kv []string) []manifest.Dependency {
	var out []manifest.Dependency
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, manifest.Dependency{Name: kv[i], Version: kv[i+1]})
	}
	return out
}

func mustGraph(t *testing.T, records ...*manifest.PackageRecord) *Graph {
	t.Helper()
	g, err := FromRecords(records)
	if err != nil {
		t.Fatalf("FromRecords() error = %v", err)
	}
	return g
}

// memStore is an in-memory manifest.Store.
type memStore struct {
	handles []manifest.Handle
	records map[string]*manifest.PackageRecord
	loadErr map[string]error
	saveErr map[string]error
	saved   []string
}

func newMemStore(records ...*manifest.PackageRecord) *memStore {
	s := &memStore{
		records: make(map[string]*manifest.PackageRecord),
		loadErr: make(map[string]error),
		saveErr: make(map[string]error),
	}
	for _, rec := range records {
		s.handles = append(s.handles, rec.Origin)
		s.records[rec.Origin.Path] = rec.Clone()
	}
	return s
}

func (s *memStore) Discover(context.Context, []string) ([]manifest.Handle, error) {
	return append([]manifest.Handle(nil), s.handles...), nil
}

func (s *memStore) Load(_ context.Context, h manifest.Handle) (*manifest.PackageRecord, error) {
	if err := s.loadErr[h.Path]; err != nil {
		return nil, err
	}
	return s.records[h.Path].Clone(), nil
}

func (s *memStore) Save(_ context.Context, h manifest.Handle, rec *manifest.PackageRecord) error {
	if err := s.saveErr[h.Path]; err != nil {
		return &manifest.WriteError{Path: h.Path, Err: err}
	}
	s.records[h.Path] = rec.Clone()
	s.saved = append(s.saved, rec.Name)
	return nil
}

// fsRepo is a repository on the mock filesystem, read through FSStore.
type fsRepo struct {
	fs    *core.MockFileSystem
	store *manifest.FSStore
	roots []string
}

func newFSRepo(files map[string]string) *fsRepo {
	fs := core.NewMockFileSystem()
	for path, content := range files {
		fs.SetFile(path, []byte(content))
	}
	walker := discovery.NewWalker(fs, discovery.Options{Filenames: []string{"package.json"}})
	return &fsRepo{
		fs:    fs,
		store: manifest.NewFSStore(fs, walker),
		roots: []string{"/repo/source", "/repo/tools"},
	}
}

func (r *fsRepo) load(t *testing.T) *Graph {
	t.Helper()
	g, err := Load(context.Background(), r.store, r.roots)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return g
}
