package cmd

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FS is the filesystem documents are read from and written back to.
type FS interface {
	fs.FS
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

// osFS resolves names against the operating system as given, so that
// absolute paths and paths outside the working directory work.
type osFS struct{}

func (osFS) Open(name string) (fs.File, error) {
	return os.Open(filepath.FromSlash(name))
}

func (osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(filepath.FromSlash(name), data, perm)
}

var docExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".rst":      true,
	".txt":      true,
	".tex":      true,
	".py":       true,
}

// collect expands the command line paths into the list of documents to
// process. Directories are walked for known extensions, skipping hidden
// directories; excluded paths are dropped in both cases.
func (opts *options) collect(args []string) ([]string, error) {
	var (
		files []string
		seen  = make(map[string]bool)
	)

	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			files = append(files, name)
		}
	}

	for _, arg := range args {
		root := path.Clean(filepath.ToSlash(arg))

		info, err := fs.Stat(opts.fsys, root)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if !opts.excluded(root) {
				add(root)
			}

			continue
		}

		err = fs.WalkDir(opts.fsys, root, func(name string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if entry.IsDir() {
				if name != root && (strings.HasPrefix(entry.Name(), ".") || opts.excluded(name)) {
					return fs.SkipDir
				}

				return nil
			}

			if docExtensions[strings.ToLower(path.Ext(name))] && !opts.excluded(name) {
				add(name)
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// excluded matches the exclude globs against the whole path and its base
// name.
func (opts *options) excluded(name string) bool {
	base := path.Base(name)

	for _, g := range opts.excludes {
		if g.Match(name) || g.Match(base) {
			return true
		}
	}

	return false
}
