package command

import (
	"os"

	"github.com/TFMV/filebuddy/internal/output"
	"github.com/TFMV/filebuddy/internal/walk"
	"go.uber.org/zap"
)

func (c Size) run(e *env) ([]*output.Table, error) {
	sizes, err := c.measure(e)
	if err != nil {
		return nil, err
	}

	var dirs, files int
	var total int64
	err = walk.Walk(e.rc.Directory, e.walkOptions(e.rc.Recursive), func(entry *walk.Entry) error {
		for _, dir := range entry.Dirs {
			m, ok := match(c.Name, dir)
			if !ok {
				continue
			}
			dirs++
			e.emitMatch(entry.Root, m, "/ => "+output.Bytes(sizes[entry.Path(dir)]))
		}
		for _, file := range entry.Files {
			m, ok := match(c.Name, file)
			if !ok {
				continue
			}
			n := sizes[entry.Path(file)]
			files++
			total += n
			e.emitMatch(entry.Root, m, " => "+output.Bytes(n))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return []*output.Table{
		output.NewTable("Summary").
			Add("Directories", dirs).
			Add("Files", files).
			Add("Total Size", output.Bytes(total)),
	}, nil
}

// measure walks the whole tree bottom-up and records the recursive byte size
// of every directory and file, keyed by joined path. Children are always
// recorded before their parent reads them.
func (c Size) measure(e *env) (map[string]int64, error) {
	sizes := make(map[string]int64)

	err := walk.WalkBottomUp(e.rc.Directory, e.walkOptions(true), func(entry *walk.Entry) error {
		var sum int64
		for _, file := range entry.Files {
			path := entry.Path(file)
			info, err := os.Stat(path)
			if err != nil {
				e.log.Debug("stat failed", zap.String("path", path), zap.Error(err))
				e.out.Error("Could not get size of %s: %v", path, err)
				sizes[path] = 0
				continue
			}
			sizes[path] = info.Size()
			sum += info.Size()
		}
		for _, dir := range entry.Dirs {
			// Symlinked or unreadable directories were never visited and count as 0.
			sum += sizes[entry.Path(dir)]
		}
		sizes[walk.Normalize(entry.Root)] = sum
		return nil
	})
	return sizes, err
}
