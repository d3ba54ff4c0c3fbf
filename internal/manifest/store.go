package manifest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/indaco/depsync/internal/core"
	"github.com/indaco/depsync/internal/discovery"
)

// Store finds, reads and writes manifests.
type Store interface {
	// Discover lists the manifests under roots in a deterministic order.
	Discover(ctx context.Context, roots []string) ([]Handle, error)

	// Load reads and decodes the manifest behind h.
	Load(ctx context.Context, h Handle) (*PackageRecord, error)

	// Save writes the versions held by rec back to the manifest behind h.
	Save(ctx context.Context, h Handle, rec *PackageRecord) error
}

// FSStore is a Store backed by a core.FileSystem.
type FSStore struct {
	fs     core.FileSystem
	walker *discovery.Walker
}

// NewFSStore creates a store that discovers manifests with walker and
// reads and writes them through fs.
func NewFSStore(fs core.FileSystem, walker *discovery.Walker) *FSStore {
	return &FSStore{fs: fs, walker: walker}
}

// Discover walks roots and returns a handle per known manifest found.
// Files whose name is not a known manifest type are ignored.
func (s *FSStore) Discover(ctx context.Context, roots []string) ([]Handle, error) {
	matches, err := s.walker.Walk(ctx, roots)
	if err != nil {
		return nil, err
	}

	handles := make([]Handle, 0, len(matches))
	for _, m := range matches {
		known, ok := LookupKnownManifest(m.Filename)
		if !ok {
			slog.Debug("ignoring unknown manifest type", "path", m.Path)
			continue
		}
		handles = append(handles, Handle{
			Path:     m.Path,
			Root:     m.Root,
			RelPath:  m.RelPath,
			Filename: m.Filename,
			Format:   known.Format,
		})
	}

	return handles, nil
}

// Load reads the manifest behind h. Content that cannot be decoded is
// reported as a *MalformedManifestError.
func (s *FSStore) Load(ctx context.Context, h Handle) (*PackageRecord, error) {
	codec, err := CodecFor(h.Format)
	if err != nil {
		return nil, err
	}

	data, err := s.fs.ReadFile(ctx, h.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", h.Path, err)
	}

	rec, err := codec.Decode(data)
	if err != nil {
		return nil, &MalformedManifestError{Path: h.Path, Err: err}
	}
	rec.Origin = h

	slog.Debug("loaded manifest", "path", h.Path, "name", rec.Name, "version", rec.Version)
	return rec, nil
}

// Save re-reads the manifest behind h, applies the versions held by rec
// and writes the result. Nothing is written when the content is unchanged.
// Every failure is reported as a *WriteError and leaves the file as it was.
func (s *FSStore) Save(ctx context.Context, h Handle, rec *PackageRecord) error {
	codec, err := CodecFor(h.Format)
	if err != nil {
		return &WriteError{Path: h.Path, Err: err}
	}

	original, err := s.fs.ReadFile(ctx, h.Path)
	if err != nil {
		return &WriteError{Path: h.Path, Err: err}
	}

	updated, err := codec.Encode(original, rec)
	if err != nil {
		return &WriteError{Path: h.Path, Err: err}
	}

	if bytes.Equal(original, updated) {
		slog.Debug("manifest unchanged, skipping write", "path", h.Path)
		return nil
	}

	perm := core.PermManifest
	if info, err := s.fs.Stat(ctx, h.Path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := s.fs.WriteFile(ctx, h.Path, updated, perm); err != nil {
		return &WriteError{Path: h.Path, Err: err}
	}

	slog.Debug("saved manifest", "path", h.Path, "name", rec.Name)
	return nil
}

var _ Store = (*FSStore)(nil)
