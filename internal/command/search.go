package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/TFMV/filebuddy/internal/output"
	"github.com/TFMV/filebuddy/internal/pattern"
	"github.com/TFMV/filebuddy/internal/walk"
	"go.uber.org/zap"
)

func (c Search) run(e *env) ([]*output.Table, error) {
	var dirs, names, files, hits int
	perFile := output.NewTable("Hits")

	err := walk.Walk(e.rc.Directory, e.walkOptions(e.rc.Recursive), func(entry *walk.Entry) error {
		dirs++
		e.out.Info("Searching %q", entry.Root)

		if c.Name != nil {
			for _, dir := range entry.Dirs {
				if m, ok := c.Name.Search(dir); ok {
					names++
					e.emitMatch(entry.Root, m, "/")
				}
			}
		}

		for _, name := range entry.Files {
			nameMatched := false
			if c.Name != nil {
				m, ok := c.Name.Search(name)
				if !ok {
					continue
				}
				names++
				e.emitMatch(entry.Root, m, "")
				nameMatched = true
			}

			path := entry.Path(name)
			found, err := c.scan(path)
			if err != nil {
				e.log.Debug("content scan failed", zap.String("path", path), zap.Error(err))
				e.out.Error("Could not read file %s: %v", path, err)
				continue
			}
			if len(found) > 0 {
				if !nameMatched {
					e.out.Emit(path, "", "", output.RolePlain, output.RoleFile)
				}
				for _, h := range found {
					prefix := fmt.Sprintf("    %d: %s", h.line, h.match.Before)
					e.out.Emit(prefix, h.match.Matched, h.match.After, output.RoleMatch, output.RoleContext)
				}
				files++
				hits += len(found)
			}
			// A file whose name matched is listed even without content hits.
			if len(found) > 0 || nameMatched {
				perFile.Add(path, len(found))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary := output.NewTable("Summary").
		Add("Directories Searched", dirs).
		Add("Files Matched", files).
		Add("Names Matched", names).
		Add("Hits Found", hits)
	tables := []*output.Table{summary}
	if len(perFile.Rows) > 0 {
		tables = append(tables, perFile)
	}
	return tables, nil
}

type hit struct {
	line  int
	match pattern.Match
}

// scan returns the lines of path matching the content pattern. Nothing is
// returned for a file that fails to read or is not valid UTF-8 text, so a
// skipped file prints no partial results.
func (c Search) scan(path string) ([]hit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var found []hit
	for lineNo := 1; ; lineNo++ {
		line, readErr := r.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, readErr
		}
		if line == "" && readErr != nil {
			return found, nil
		}

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrNotText)
		}

		if m, ok := c.Content.Search(line); ok {
			found = append(found, hit{line: lineNo, match: m})
		}

		if readErr != nil {
			return found, nil
		}
	}
}
