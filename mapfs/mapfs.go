// Package mapfs provides an in-memory fs.FS backed by a map of file
// contents. It backs include-loader tests and embedded configuration sets.
package mapfs

import (
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"
)

type MapFS map[string]string

var _ fs.FS = (MapFS)(nil)

func (m MapFS) Open(filename string) (fs.File, error) {
	if filename == "." {
		var entries []fs.DirEntry
		for name, contents := range m {
			entries = append(entries, fileDirEntry{name: name, size: int64(len(contents))})
		}
		return &virtualDir{entries: entries}, nil
	}
	contents, ok := m[filename]
	if !ok {
		return nil, fmt.Errorf("%w: %s", fs.ErrNotExist, filename)
	}
	return &memFile{name: filename, Reader: strings.NewReader(contents)}, nil
}

// memFile implements fs.File over the contents string
type memFile struct {
	name string
	*strings.Reader
}

func (f *memFile) Stat() (fs.FileInfo, error) {
	return fileInfo{name: f.name, size: f.Reader.Size()}, nil
}

func (f *memFile) Close() error {
	return nil
}

// virtualDir implements fs.File + ReadDirFile
type virtualDir struct {
	entries []fs.DirEntry
	pos     int
}

func (d *virtualDir) Stat() (fs.FileInfo, error) {
	return fileInfo{name: ".", dir: true}, nil
}

func (d *virtualDir) Read([]byte) (int, error) {
	return 0, fmt.Errorf("is a directory")
}

func (d *virtualDir) Close() error {
	return nil
}

func (d *virtualDir) ReadDir(n int) ([]fs.DirEntry, error) {
	if n <= 0 {
		result := d.entries[d.pos:]
		d.pos = len(d.entries)
		return result, nil
	}
	if d.pos >= len(d.entries) {
		return nil, io.EOF
	}
	end := d.pos + n
	if end > len(d.entries) {
		end = len(d.entries)
	}
	result := d.entries[d.pos:end]
	d.pos = end
	return result, nil
}

type fileDirEntry struct {
	name string
	size int64
}

func (e fileDirEntry) Name() string               { return e.name }
func (e fileDirEntry) IsDir() bool                { return false }
func (e fileDirEntry) Type() fs.FileMode          { return 0 }
func (e fileDirEntry) Info() (fs.FileInfo, error) { return fileInfo{name: e.name, size: e.size}, nil }

type fileInfo struct {
	name string
	size int64
	dir  bool
}

func (i fileInfo) Name() string       { return i.name }
func (i fileInfo) Size() int64        { return i.size }
func (i fileInfo) ModTime() time.Time { return time.Time{} }
func (i fileInfo) IsDir() bool        { return i.dir }
func (i fileInfo) Sys() any           { return nil }

func (i fileInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0555
	}
	return 0444
}
