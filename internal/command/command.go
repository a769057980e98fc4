// Package command implements the fb commands: search, list, size, rename,
// delete, copy and move.
//
// Each command is a descriptor type carrying its own validated arguments.
// Parse builds one from raw CLI input, and a Runner walks the directory tree
// with it, printing result lines and returning the summary tables.
package command

import (
	"errors"
	"fmt"
	"os"

	"github.com/TFMV/filebuddy/internal/output"
	"github.com/TFMV/filebuddy/internal/pattern"
	"github.com/gobwas/glob"
)

// Kind names a command.
type Kind string

const (
	KindSearch Kind = "search"
	KindList   Kind = "list"
	KindSize   Kind = "size"
	KindRename Kind = "rename"
	KindDelete Kind = "delete"
	KindCopy   Kind = "copy"
	KindMove   Kind = "move"
)

// Kinds lists every command in display order.
var Kinds = []Kind{KindSearch, KindList, KindSize, KindRename, KindDelete, KindCopy, KindMove}

var (
	// ErrUsage marks invalid command arguments.
	ErrUsage = errors.New("usage error")
	// ErrNotDirectory is returned when the target directory does not exist.
	ErrNotDirectory = errors.New("not a directory")
	// ErrExists is returned when a rename or copy would overwrite an entry.
	ErrExists = errors.New("destination already exists")
	// ErrIntoSelf is returned when a directory would be copied into itself.
	ErrIntoSelf = errors.New("cannot copy a directory into itself")
	// ErrNotText is returned when searched content is not valid UTF-8 text.
	ErrNotText = errors.New("not a text file")
)

// Diagnostic is a one-line message for the user that still matches its
// sentinel with errors.Is.
type Diagnostic struct {
	Msg string
	Err error
}

func (d *Diagnostic) Error() string { return d.Msg }

func (d *Diagnostic) Unwrap() error { return d.Err }

func usagef(format string, args ...any) error {
	return &Diagnostic{Msg: fmt.Sprintf(format, args...), Err: ErrUsage}
}

// Command is one of Search, List, Size, Rename, Delete, Copy or Move.
type Command interface {
	Kind() Kind
	// Status is the message shown next to the progress spinner.
	Status() string

	run(e *env) ([]*output.Table, error)
}

// Search scans file contents, and optionally names, for matches.
type Search struct {
	Content *pattern.Pattern
	Name    *pattern.Pattern // Optional
}

// List prints directories and files, optionally filtered by name.
type List struct {
	Name *pattern.Pattern // Optional
}

// Size prints recursive sizes of directories and files.
type Size struct {
	Name *pattern.Pattern // Optional
}

// Rename renames matching entries in place using a $(n) template.
type Rename struct {
	Name     *pattern.Pattern
	Template string
}

// Delete removes matching files and directory trees.
type Delete struct {
	Name *pattern.Pattern
}

// Copy copies matching entries to a destination template.
type Copy struct {
	Name        *pattern.Pattern
	Destination string
}

// Move moves matching entries to a destination template.
type Move struct {
	Name        *pattern.Pattern
	Destination string
}

func (Search) Kind() Kind { return KindSearch }
func (List) Kind() Kind   { return KindList }
func (Size) Kind() Kind   { return KindSize }
func (Rename) Kind() Kind { return KindRename }
func (Delete) Kind() Kind { return KindDelete }
func (Copy) Kind() Kind   { return KindCopy }
func (Move) Kind() Kind   { return KindMove }

func (Search) Status() string { return "Searching..." }
func (List) Status() string   { return "Listing..." }
func (Size) Status() string   { return "Sizing..." }
func (Rename) Status() string { return "Renaming..." }
func (Delete) Status() string { return "Deleting..." }
func (Copy) Status() string   { return "Copying..." }
func (Move) Status() string   { return "Moving..." }

// Parse validates raw command input and compiles its patterns. options are
// the positional arguments after the command name; namePattern is the -p
// value, empty when not given.
func Parse(kind Kind, options []string, namePattern string) (Command, error) {
	var name *pattern.Pattern
	if namePattern != "" {
		p, err := pattern.Compile(namePattern)
		if err != nil {
			return nil, err
		}
		name = p
	}

	switch kind {
	case KindSearch:
		if len(options) < 1 {
			return nil, usagef("No search parameters given. Give a regex pattern to search file contents.")
		}
		if len(options) > 1 {
			return nil, usagef("Too many search parameters given. Give a regex pattern to search file contents.")
		}
		content, err := pattern.Compile(options[0])
		if err != nil {
			return nil, err
		}
		return Search{Content: content, Name: name}, nil

	case KindList, KindSize:
		if len(options) > 0 {
			return nil, usagef("Too many options given. Expecting no options.")
		}
		if kind == KindList {
			return List{Name: name}, nil
		}
		return Size{Name: name}, nil

	case KindRename:
		if err := expectOne(options, "<new_name>"); err != nil {
			return nil, err
		}
		if name == nil {
			return nil, noPattern("rename")
		}
		return Rename{Name: name, Template: options[0]}, nil

	case KindDelete:
		if len(options) > 0 {
			return nil, usagef("Too many options given. Expecting no options.")
		}
		if name == nil {
			return nil, noPattern("delete")
		}
		return Delete{Name: name}, nil

	case KindCopy, KindMove:
		if err := expectOne(options, "<output_dir|output_file>"); err != nil {
			return nil, err
		}
		if name == nil {
			return nil, noPattern(string(kind))
		}
		if kind == KindCopy {
			return Copy{Name: name, Destination: options[0]}, nil
		}
		return Move{Name: name, Destination: options[0]}, nil
	}

	return nil, usagef("Unknown command: %s. Use -h for help.", kind)
}

func expectOne(options []string, what string) error {
	if len(options) < 1 {
		return usagef("Not enough options given. Expecting 1 option: %s", what)
	}
	if len(options) > 1 {
		return usagef("Too many options given. Expecting 1 option: %s", what)
	}
	return nil
}

func noPattern(verb string) error {
	return usagef("No pattern specified. Expecting a pattern to %s files.", verb)
}

// RunContext is the validated input of a run. It is not modified once built.
type RunContext struct {
	Command       Command
	Directory     string
	Recursive     bool
	IncludeHidden bool
	Verbose       bool
	Exclude       []glob.Glob
}

// CheckDirectory verifies that dir exists and is a directory.
func CheckDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return &Diagnostic{Msg: fmt.Sprintf("Directory '%s' does not exist.", dir), Err: ErrNotDirectory}
	}
	return nil
}
