package command

import (
	"os"

	"github.com/TFMV/filebuddy/internal/output"
	"github.com/TFMV/filebuddy/internal/walk"
	"go.uber.org/zap"
)

func (c Delete) run(e *env) ([]*output.Table, error) {
	var dirs, files int

	err := walk.Walk(e.rc.Directory, e.walkOptions(e.rc.Recursive), func(entry *walk.Entry) error {
		kept := make([]string, 0, len(entry.Dirs))
		for _, dir := range entry.Dirs {
			m, ok := c.Name.Search(dir)
			if !ok {
				kept = append(kept, dir)
				continue
			}
			path := entry.Path(dir)
			err := removeTree(path, func(p string, isDir bool) {
				if isDir {
					e.out.Info("Deleted directory: %s", p)
				} else {
					e.out.Info("Deleted file: %s", p)
				}
			})
			if err != nil {
				e.log.Debug("delete failed", zap.String("path", path), zap.Error(err))
				e.out.Error("Could not delete directory %s: %v", path, err)
				if _, statErr := os.Lstat(path); statErr == nil {
					kept = append(kept, dir)
				}
				continue
			}
			dirs++
			e.emitMatch(entry.Root, m, "/")
		}
		entry.Dirs = kept

		for _, file := range entry.Files {
			m, ok := c.Name.Search(file)
			if !ok {
				continue
			}
			path := entry.Path(file)
			if err := os.Remove(path); err != nil {
				e.log.Debug("delete failed", zap.String("path", path), zap.Error(err))
				e.out.Error("Could not delete file %s: %v", path, err)
				continue
			}
			files++
			e.emitMatch(entry.Root, m, "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return []*output.Table{
		output.NewTable("Summary").
			Add("Directories Deleted", dirs).
			Add("Files Deleted", files),
	}, nil
}
