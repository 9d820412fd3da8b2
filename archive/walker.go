// Package archive enumerates outline sources: single files, directory trees
// and zip archives, optionally narrowed to a path inside the archive
// ("pages.zip/site/index.yaml").
package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
)

// Source is a single outline found by Walk.
type Source struct {
	// Name is path relative to the walked directory or archive, or file path
	// as it was given. Archive members always use "/".
	Name string
	// Origin is the directory, archive or file being walked.
	Origin string
	// InArchive is set for zip members.
	InArchive bool

	open func() (io.ReadCloser, error)
}

// Open returns source content. Archive members can only be opened while
// WalkFunc is running.
func (s Source) Open() (io.ReadCloser, error) {
	return s.open()
}

// WalkFunc is called for every source visited by Walk. If an error is
// returned, processing stops.
type WalkFunc func(src Source) error

// Walk visits outline sources under root in natural order of their names.
// Root may be a file, which is always visited regardless of its extension, a
// directory, walked recursively without following symbolic links, or a zip
// archive. When root cannot be accessed, its longest existing prefix is checked
// for being an archive and the rest is treated as path inside it. Only files
// with one of exts are picked from directories and archives. Context is
// checked before every source.
func Walk(ctx context.Context, root string, exts []string, fn WalkFunc) error {
	root = filepath.Clean(root)

	fi, err := os.Stat(root)
	if err != nil {
		// path under a regular file fails with ENOTDIR rather than
		// ErrNotExist, either may be a path inside an archive
		arc, inner, ok := splitArchivePath(root)
		if !ok {
			return fmt.Errorf("input source was not found (%s): %w", root, err)
		}
		return walkArchive(ctx, arc, inner, exts, fn)
	}

	switch {
	case fi.IsDir():
		return walkDir(ctx, root, exts, fn)
	case !fi.Mode().IsRegular():
		return fmt.Errorf("unexpected path mode for (%s)", root)
	}

	arc, err := isArchive(root)
	if err != nil {
		return fmt.Errorf("unable to check archive type: %w", err)
	}
	if arc {
		return walkArchive(ctx, root, "", exts, fn)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(Source{Name: root, Origin: root, open: func() (io.ReadCloser, error) { return os.Open(root) }})
}

func walkDir(ctx context.Context, dir string, exts []string, fn WalkFunc) error {
	var found []Source
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() || !hasExt(p, exts) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		found = append(found, Source{Name: rel, Origin: dir, open: func() (io.ReadCloser, error) { return os.Open(p) }})
		return nil
	})
	if err != nil {
		return fmt.Errorf("unable to walk directory: %w", err)
	}
	return visit(ctx, found, fn)
}

func walkArchive(ctx context.Context, archive, prefix string, exts []string, fn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	var found []Source
	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !under(name, prefix) {
			continue
		}
		// exact member is picked regardless of extension
		if name != prefix && !hasExt(name, exts) {
			continue
		}
		found = append(found, Source{Name: name, Origin: archive, InArchive: true, open: f.Open})
	}
	if len(found) == 0 && len(prefix) > 0 {
		return fmt.Errorf("input source was not found in archive (%s) => (%s)", archive, prefix)
	}
	return visit(ctx, found, fn)
}

func visit(ctx context.Context, found []Source, fn WalkFunc) error {
	slices.SortFunc(found, func(a, b Source) int {
		switch {
		case natural.Less(a.Name, b.Name):
			return -1
		case natural.Less(b.Name, a.Name):
			return 1
		}
		return 0
	})
	for _, src := range found {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(src); err != nil {
			return err
		}
	}
	return nil
}

// splitArchivePath finds the longest existing prefix of p and returns it
// together with the rest of the path in archive notation if the prefix is an
// archive.
func splitArchivePath(p string) (string, string, bool) {
	for head := filepath.Dir(p); ; head = filepath.Dir(head) {
		fi, err := os.Stat(head)
		if err == nil {
			if !fi.Mode().IsRegular() {
				return "", "", false
			}
			if ok, err := isArchive(head); err != nil || !ok {
				return "", "", false
			}
			inner, err := filepath.Rel(head, p)
			if err != nil {
				return "", "", false
			}
			return head, filepath.ToSlash(inner), true
		}
		if next := filepath.Dir(head); next == head {
			return "", "", false
		}
	}
}

func isArchive(p string) (bool, error) {
	f, err := os.Open(p)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// enough for any matcher
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

// under reports whether archive member name is prefix itself or lies in
// directory prefix.
func under(name, prefix string) bool {
	if len(prefix) == 0 || name == prefix {
		return true
	}
	return strings.HasPrefix(name, strings.TrimSuffix(prefix, "/")+"/")
}

func hasExt(name string, exts []string) bool {
	ext := path.Ext(filepath.ToSlash(name))
	return slices.ContainsFunc(exts, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
