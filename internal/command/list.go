package command

import (
	"github.com/TFMV/filebuddy/internal/output"
	"github.com/TFMV/filebuddy/internal/walk"
)

func (c List) run(e *env) ([]*output.Table, error) {
	var dirs, files int

	err := walk.Walk(e.rc.Directory, e.walkOptions(e.rc.Recursive), func(entry *walk.Entry) error {
		for _, dir := range entry.Dirs {
			if m, ok := match(c.Name, dir); ok {
				dirs++
				e.emitMatch(entry.Root, m, "/")
			}
		}
		for _, file := range entry.Files {
			if m, ok := match(c.Name, file); ok {
				files++
				e.emitMatch(entry.Root, m, "")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return []*output.Table{
		output.NewTable("Summary").
			Add("Directory Count", dirs).
			Add("File Count", files),
	}, nil
}
