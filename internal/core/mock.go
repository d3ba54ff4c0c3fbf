package core

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests.
// Directories are implied by the files stored below them.
type MockFileSystem struct {
	mu         sync.Mutex
	files      map[string][]byte
	modes      map[string]os.FileMode
	dirs       map[string]bool
	writeErrs  map[string]error
	readErrs   map[string]error
	writeCount int
}

// NewMockFileSystem creates an empty in-memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:     make(map[string][]byte),
		modes:     make(map[string]os.FileMode),
		dirs:      make(map[string]bool),
		writeErrs: make(map[string]error),
		readErrs:  make(map[string]error),
	}
}

// SetFile stores content at path without counting it as a write.
func (m *MockFileSystem) SetFile(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	m.files[path] = append([]byte(nil), data...)
	m.modes[path] = PermManifest
}

// GetFile returns the content stored at path.
func (m *MockFileSystem) GetFile(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

// SetWriteError makes every WriteFile to path fail with err.
func (m *MockFileSystem) SetWriteError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErrs[filepath.Clean(path)] = err
}

// SetReadError makes every ReadFile of path fail with err.
func (m *MockFileSystem) SetReadError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErrs[filepath.Clean(path)] = err
}

// WriteCount returns how many successful WriteFile calls were made.
func (m *MockFileSystem) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeCount
}

func (m *MockFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if err, ok := m.readErrs[path]; ok {
		return nil, &fs.PathError{Op: "read", Path: path, Err: err}
	}
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *MockFileSystem) WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if err, ok := m.writeErrs[path]; ok {
		return &fs.PathError{Op: "write", Path: path, Err: err}
	}
	m.files[path] = append([]byte(nil), data...)
	m.modes[path] = perm
	m.writeCount++
	return nil
}

func (m *MockFileSystem) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if data, ok := m.files[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), size: int64(len(data)), mode: m.modes[path]}, nil
	}
	if m.isDirLocked(path) {
		return &mockFileInfo{name: filepath.Base(path), mode: fs.ModeDir | 0o755, dir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
}

func (m *MockFileSystem) MkdirAll(ctx context.Context, path string, _ os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[filepath.Clean(path)] = true
	return nil
}

func (m *MockFileSystem) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if _, ok := m.files[path]; ok {
		delete(m.files, path)
		delete(m.modes, path)
		return nil
	}
	if m.dirs[path] {
		delete(m.dirs, path)
		return nil
	}
	return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
}

// ReadDir lists the direct children of path sorted by name, like os.ReadDir.
func (m *MockFileSystem) ReadDir(ctx context.Context, path string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if !m.isDirLocked(path) {
		return nil, &fs.PathError{Op: "readdir", Path: path, Err: fs.ErrNotExist}
	}

	children := make(map[string]*mockFileInfo)
	collect := func(p string, isFile bool) {
		rel, ok := childOf(path, p)
		if !ok {
			return
		}
		name, _, nested := strings.Cut(rel, string(filepath.Separator))
		if nested || !isFile {
			children[name] = &mockFileInfo{name: name, mode: fs.ModeDir | 0o755, dir: true}
			return
		}
		if _, seen := children[name]; !seen {
			children[name] = &mockFileInfo{name: name, size: int64(len(m.files[p])), mode: m.modes[p]}
		}
	}
	for p := range m.files {
		collect(p, true)
	}
	for d := range m.dirs {
		collect(d, false)
	}

	names := make([]string, 0, len(children))
	for name := range children {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]os.DirEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, fs.FileInfoToDirEntry(children[name]))
	}
	return entries, nil
}

func (m *MockFileSystem) isDirLocked(path string) bool {
	if m.dirs[path] {
		return true
	}
	for p := range m.files {
		if _, ok := childOf(path, p); ok {
			return true
		}
	}
	for d := range m.dirs {
		if _, ok := childOf(path, d); ok {
			return true
		}
	}
	return false
}

// childOf reports whether p lies below dir and returns the relative remainder.
func childOf(dir, p string) (string, bool) {
	prefix := dir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(p, prefix) || p == prefix {
		return "", false
	}
	return strings.TrimPrefix(p, prefix), true
}

var _ FileSystem = (*MockFileSystem)(nil)

type mockFileInfo struct {
	name string
	size int64
	mode os.FileMode
	dir  bool
}

func (i *mockFileInfo) Name() string       { return i.name }
func (i *mockFileInfo) Size() int64        { return i.size }
func (i *mockFileInfo) Mode() os.FileMode  { return i.mode }
func (i *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (i *mockFileInfo) IsDir() bool        { return i.dir }
func (i *mockFileInfo) Sys() any           { return nil }
