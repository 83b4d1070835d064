package fhicl

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/art-framework-suite/fhicl-go/fhiclparser"
)

// Loader fetches the contents of an included file. The core never touches
// the filesystem itself; include resolution policy (search paths, embedded
// configuration sets, test fixtures) lives entirely in the injected Loader.
type Loader func(filename string) (string, error)

func ioError(filename string, err error) error {
	return &fhiclparser.Error{
		Kind:    fhiclparser.IoError,
		Message: "cannot read " + filename + ": " + err.Error(),
	}
}

// MapLoader serves files from an in-memory map; this is the loader to use
// in tests.
func MapLoader(files map[string]string) Loader {
	return func(filename string) (string, error) {
		content, ok := files[filename]
		if !ok {
			return "", ioError(filename, fs.ErrNotExist)
		}
		return content, nil
	}
}

// FSLoader serves files from any fs.FS, e.g. an embed.FS holding a
// configuration set, or a mapfs.MapFS.
func FSLoader(fsys fs.FS) Loader {
	return func(filename string) (string, error) {
		f, err := fsys.Open(filename)
		if err != nil {
			return "", ioError(filename, err)
		}
		defer f.Close()
		buf, err := io.ReadAll(f)
		if err != nil {
			return "", ioError(filename, err)
		}
		return string(buf), nil
	}
}

// DirLoader resolves includes against a list of directories, first match
// wins. With no directories it resolves against the working directory.
func DirLoader(dirs ...string) Loader {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	return func(filename string) (string, error) {
		var firstErr error
		for _, dir := range dirs {
			buf, err := os.ReadFile(filepath.Join(dir, filename))
			if err == nil {
				return string(buf), nil
			}
			if firstErr == nil {
				firstErr = err
			}
		}
		return "", ioError(filename, firstErr)
	}
}
