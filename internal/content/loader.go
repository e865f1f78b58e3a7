// Package content enumerates and reads the documents under a content root.
package content

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/sitelint/internal/foundation/errors"
)

// DefaultExtensions are the recognized content file extensions.
var DefaultExtensions = []string{".mdx"}

const defaultWorkers = 8

// Options control which files are loaded.
type Options struct {
	Extensions []string
	// Exclude holds doublestar patterns matched against slash-separated
	// paths relative to the content root.
	Exclude []string
	// Workers bounds concurrent file reads.
	Workers int
	// Label prefixes document page identifiers; defaults to the base name of
	// the content root.
	Label string
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions
	}
	return o.Extensions
}

// IsPrivate reports whether a file or directory name marks private or draft
// content.
func IsPrivate(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// IsContentFile reports whether name has a recognized content extension.
func (o Options) IsContentFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return slices.Contains(o.extensions(), ext)
}

// Excluded reports whether the slash-separated relative path matches one of
// the exclude patterns.
func (o Options) Excluded(rel string) bool {
	for _, pattern := range o.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// RootExists reports whether root exists and is a directory.
func RootExists(root string) bool {
	info, err := os.Stat(root)
	return err == nil && info.IsDir()
}

// Walk visits every non-private, non-excluded directory under root in
// lexical order, including root itself. rel is slash separated, "" for root.
func Walk(root string, opts Options, fn func(rel string, entries []fs.DirEntry) error) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			rel = ""
		} else if IsPrivate(d.Name()) || opts.Excluded(rel) {
			return fs.SkipDir
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return err
		}
		return fn(rel, entries)
	})
}

// Files lists the content files under root in directory-traversal order as
// slash-separated paths relative to root.
func Files(root string, opts Options) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if IsPrivate(d.Name()) || opts.Excluded(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() || !opts.IsContentFile(d.Name()) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	return files, err
}

// Load reads every content document under root.
//
// A missing root is not an error: it yields an empty set. Files are read
// concurrently but returned in directory-traversal order.
func Load(ctx context.Context, root string, opts Options) ([]*Document, error) {
	if !RootExists(root) {
		return nil, nil
	}

	files, err := Files(root, opts)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to enumerate content").
			WithPath(root).
			Build()
	}

	label := opts.Label
	if label == "" {
		label = filepath.Base(filepath.Clean(root))
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	docs := make([]*Document, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
			if err != nil {
				return errors.WrapError(err, errors.CategoryFileSystem, "failed to read content file").
					WithPath(rel).
					Build()
			}
			docs[i] = NewDocument(label, rel, string(data))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// RequireRoot returns a fatal filesystem error when root is missing.
func RequireRoot(root string) error {
	if RootExists(root) {
		return nil
	}
	return errors.FileSystemError("content root not found").
		WithPath(root).
		Build()
}
