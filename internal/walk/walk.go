// Package walk provides the directory traversal used by every fb command.
//
// A walk yields one Entry per visited directory: the directory itself plus its
// immediate subdirectories and files, already filtered for hidden and excluded
// names. Walk visits parents before children, WalkBottomUp the reverse.
package walk

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/karrick/godirwalk"
	"go.uber.org/zap"
)

// Entry describes a single visited directory.
type Entry struct {
	Root  string   // Normalized directory path
	Dirs  []string // Names of immediate subdirectories
	Files []string // Names of immediate files
}

// Path returns the normalized path of a child of the entry.
func (e *Entry) Path(name string) string {
	return Join(e.Root, name)
}

// WalkFunc is called once per visited directory. Returning an error aborts the walk.
//
// During a top-down walk the function may rewrite entry.Dirs; the walk descends
// into the names left in the slice, so a handler that renames or removes a
// subdirectory keeps the walk away from paths that no longer exist.
type WalkFunc func(entry *Entry) error

// ErrorFn receives directories that could not be listed.
type ErrorFn func(path string, err error)

// Options configures a walk.
type Options struct {
	Recursive     bool        // Descend into subdirectories
	IncludeHidden bool        // Keep names and paths starting with "."
	Exclude       []glob.Glob // Names matching any glob are dropped
	OnError       ErrorFn     // Called for subdirectories that cannot be listed
	Logger        *zap.Logger
}

// CompileExcludes compiles name globs for Options.Exclude.
func CompileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		if p == "" {
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Walk traverses the tree rooted at root depth-first, calling fn for a
// directory before any of its descendants. When opts.Recursive is false only
// root itself is visited.
func Walk(root string, opts Options, fn WalkFunc) error {
	w := newWalker(root, opts)
	w.logger.Debug("starting walk",
		zap.String("root", w.root),
		zap.Bool("recursive", opts.Recursive),
		zap.Bool("include_hidden", opts.IncludeHidden),
	)
	entry, err := w.read(w.root)
	if err != nil {
		return fmt.Errorf("reading %s: %w", w.root, err)
	}
	return w.topDown(entry, fn)
}

// WalkBottomUp traverses the tree rooted at root, calling fn for every
// directory after all of its descendants have been visited.
func WalkBottomUp(root string, opts Options, fn WalkFunc) error {
	w := newWalker(root, opts)
	w.logger.Debug("starting bottom-up walk",
		zap.String("root", w.root),
		zap.Bool("recursive", opts.Recursive),
	)
	entry, err := w.read(w.root)
	if err != nil {
		return fmt.Errorf("reading %s: %w", w.root, err)
	}
	return w.bottomUp(entry, fn)
}

type walker struct {
	root    string
	opts    Options
	logger  *zap.Logger
	scratch []byte
}

func newWalker(root string, opts Options) *walker {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &walker{
		root:    Normalize(root),
		opts:    opts,
		logger:  logger,
		scratch: make([]byte, godirwalk.MinimumScratchBufferSize),
	}
}

func (w *walker) topDown(entry *Entry, fn WalkFunc) error {
	if !w.opts.IncludeHidden && w.hiddenRoot(entry.Root) {
		return nil
	}
	w.logger.Debug("visiting directory", zap.String("path", entry.Root))
	if err := fn(entry); err != nil {
		return err
	}
	if !w.opts.Recursive {
		return nil
	}
	for _, name := range entry.Dirs {
		child, ok := w.descend(entry.Path(name))
		if !ok {
			continue
		}
		if err := w.topDown(child, fn); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) bottomUp(entry *Entry, fn WalkFunc) error {
	if !w.opts.IncludeHidden && w.hiddenRoot(entry.Root) {
		return nil
	}
	if w.opts.Recursive {
		for _, name := range entry.Dirs {
			child, ok := w.descend(entry.Path(name))
			if !ok {
				continue
			}
			if err := w.bottomUp(child, fn); err != nil {
				return err
			}
		}
	}
	w.logger.Debug("visiting directory", zap.String("path", entry.Root))
	return fn(entry)
}

// descend lists a subdirectory. Symlinks are never followed and vanished
// directories are skipped without reporting.
func (w *walker) descend(path string) (*Entry, bool) {
	info, err := os.Lstat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			w.report(path, err)
		}
		return nil, false
	}
	if !info.IsDir() {
		return nil, false
	}
	entry, err := w.read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			w.report(path, err)
		}
		return nil, false
	}
	return entry, true
}

func (w *walker) read(path string) (*Entry, error) {
	dirents, err := godirwalk.ReadDirents(path, w.scratch)
	if err != nil {
		return nil, err
	}
	sort.Sort(dirents)

	entry := &Entry{Root: path}
	for _, de := range dirents {
		name := de.Name()
		if w.skipName(name) {
			continue
		}
		isDir, err := de.IsDirOrSymlinkToDir()
		if err != nil {
			// Broken symlinks are reported as files.
			isDir = false
		}
		if isDir {
			entry.Dirs = append(entry.Dirs, name)
		} else {
			entry.Files = append(entry.Files, name)
		}
	}
	return entry, nil
}

func (w *walker) skipName(name string) bool {
	if !w.opts.IncludeHidden && IsHidden(name) {
		return true
	}
	for _, g := range w.opts.Exclude {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// hiddenRoot reports whether path lies under a hidden directory of the walk.
// Segments of the walk root itself do not count, so walking inside a hidden
// directory on purpose still works.
func (w *walker) hiddenRoot(path string) bool {
	rel := strings.TrimPrefix(path, w.root)
	return HasHiddenSegment(rel)
}

func (w *walker) report(path string, err error) {
	w.logger.Debug("cannot list directory", zap.String("path", path), zap.Error(err))
	if w.opts.OnError != nil {
		w.opts.OnError(path, err)
	}
}
