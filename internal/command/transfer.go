package command

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/TFMV/filebuddy/internal/output"
	"github.com/TFMV/filebuddy/internal/pattern"
	"github.com/TFMV/filebuddy/internal/walk"
	"go.uber.org/zap"
)

// resolveDestination builds the target path for a matched entry called name.
// A file sent to a destination ending in "/" keeps its name, and so does a
// directory sent to an existing directory. $(n) tokens are then replaced with
// the groups of m.
func resolveDestination(dest, name string, isDir bool, m pattern.Match) string {
	dest = walk.Normalize(dest)
	if isDir {
		if info, err := os.Stat(dest); err == nil && info.IsDir() {
			if !strings.HasSuffix(dest, "/") {
				dest += "/"
			}
			dest += name
		}
	} else if strings.HasSuffix(dest, "/") {
		dest += name
	}
	return m.Substitute(dest)
}

// transferFunc copies or moves src to dst and returns the path written.
type transferFunc func(src, dst string, isDir bool) (string, error)

type transfer struct {
	name   *pattern.Pattern
	dest   string
	verb   string
	action transferFunc
	// prune drops transferred directories from the walk.
	prune bool

	// written holds the absolute paths created during the walk. They are
	// never picked up again as sources.
	written map[string]bool
}

func (t *transfer) run(e *env) (dirs, files int, err error) {
	t.written = make(map[string]bool)
	err = walk.Walk(e.rc.Directory, e.walkOptions(e.rc.Recursive), func(entry *walk.Entry) error {
		kept := make([]string, 0, len(entry.Dirs))
		for _, dir := range entry.Dirs {
			if t.wasWritten(entry.Path(dir)) {
				continue
			}
			if t.apply(e, entry.Root, dir, true) {
				dirs++
				if t.prune {
					continue
				}
			}
			kept = append(kept, dir)
		}
		entry.Dirs = kept

		for _, file := range entry.Files {
			if t.wasWritten(entry.Path(file)) {
				continue
			}
			if t.apply(e, entry.Root, file, false) {
				files++
			}
		}
		return nil
	})
	return dirs, files, err
}

func (t *transfer) wasWritten(path string) bool {
	abs, err := filepath.Abs(path)
	return err == nil && t.written[abs]
}

func (t *transfer) record(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		t.written[abs] = true
	}
}

func (t *transfer) apply(e *env, root, name string, isDir bool) bool {
	m, ok := t.name.Search(name)
	if !ok {
		return false
	}
	src := walk.Join(root, name)
	dst := resolveDestination(t.dest, name, isDir, m)

	written, err := t.action(src, dst, isDir)
	if errors.Is(err, errSamePath) {
		e.log.Debug(t.verb+" skipped, destination is the source", zap.String("path", src))
		return false
	}
	if err != nil {
		e.log.Debug(t.verb+" failed", zap.String("from", src), zap.String("to", dst), zap.Error(err))
		e.out.Error("Could not %s %s to %s: %v", t.verb, src, dst, err)
		return false
	}
	t.record(written)
	e.log.Debug(t.verb, zap.String("from", src), zap.String("to", written))

	suffix := ""
	if isDir {
		suffix = "/"
	}
	e.emitAction(root, m, suffix, walk.Normalize(written))
	return true
}

func (c Copy) run(e *env) ([]*output.Table, error) {
	t := transfer{
		name: c.Name,
		dest: c.Destination,
		verb: "copy",
		action: func(src, dst string, isDir bool) (string, error) {
			if isDir {
				return dst, copyTree(src, dst, e.log)
			}
			return copyFile(src, dst)
		},
	}
	dirs, files, err := t.run(e)
	if err != nil {
		return nil, err
	}
	return []*output.Table{
		output.NewTable("Summary").
			Add("Directories Copied", dirs).
			Add("Files Copied", files),
	}, nil
}

func (c Move) run(e *env) ([]*output.Table, error) {
	t := transfer{
		name:  c.Name,
		dest:  c.Destination,
		verb:  "move",
		prune: true,
		action: func(src, dst string, _ bool) (string, error) {
			return moveEntry(src, dst, e.log)
		},
	}
	dirs, files, err := t.run(e)
	if err != nil {
		return nil, err
	}
	return []*output.Table{
		output.NewTable("Summary").
			Add("Directories Moved", dirs).
			Add("Files Moved", files),
	}, nil
}
