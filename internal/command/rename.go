package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/TFMV/filebuddy/internal/output"
	"github.com/TFMV/filebuddy/internal/pattern"
	"github.com/TFMV/filebuddy/internal/walk"
	"go.uber.org/zap"
)

// Outcome is the planned result of acting on one matched entry.
type Outcome struct {
	From string // Source path
	To   string // Destination path
	Name string // New base name, for renames
}

// errUnchanged marks a rename whose new name equals the old one.
var errUnchanged = errors.New("name unchanged")

// planRename computes the new path of name inside root. The new name is the
// template with the match groups substituted.
func planRename(root, name string, m pattern.Match, template string) (Outcome, error) {
	newName := m.Substitute(template)
	switch {
	case newName == "":
		return Outcome{}, fmt.Errorf("template %q gives an empty name for %s", template, name)
	case strings.ContainsAny(newName, `/\`):
		return Outcome{}, fmt.Errorf("new name %q for %s contains a path separator", newName, name)
	case newName == name:
		return Outcome{}, errUnchanged
	}
	return Outcome{
		From: walk.Join(root, name),
		To:   walk.Join(root, newName),
		Name: newName,
	}, nil
}

func (c Rename) run(e *env) ([]*output.Table, error) {
	var dirs, files int

	err := walk.Walk(e.rc.Directory, e.walkOptions(e.rc.Recursive), func(entry *walk.Entry) error {
		kept := make([]string, 0, len(entry.Dirs))
		for _, dir := range entry.Dirs {
			newName, ok := c.apply(e, entry.Root, dir, "/")
			if ok {
				dirs++
			}
			kept = append(kept, newName)
		}
		entry.Dirs = kept

		for _, file := range entry.Files {
			if _, ok := c.apply(e, entry.Root, file, ""); ok {
				files++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return []*output.Table{
		output.NewTable("Summary").
			Add("Directories Renamed", dirs).
			Add("Files Renamed", files),
	}, nil
}

// apply renames name if it matches and returns the name the entry has
// afterwards.
func (c Rename) apply(e *env, root, name, suffix string) (string, bool) {
	m, ok := c.Name.Search(name)
	if !ok {
		return name, false
	}
	plan, err := planRename(root, name, m, c.Template)
	if errors.Is(err, errUnchanged) {
		return name, false
	}
	if err != nil {
		e.out.Error("Could not rename %s: %v", walk.Join(root, name), err)
		return name, false
	}

	if err := renameEntry(plan.From, plan.To); err != nil {
		e.log.Debug("rename failed", zap.String("from", plan.From), zap.String("to", plan.To), zap.Error(err))
		e.out.Error("Could not rename %s to %s: %v", plan.From, plan.To, err)
		return name, false
	}
	e.log.Debug("renamed", zap.String("from", plan.From), zap.String("to", plan.To))
	e.emitAction(root, m, suffix, plan.To)
	return plan.Name, true
}
