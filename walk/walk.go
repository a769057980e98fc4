// Package walk exposes the directory traversal behind fb as a library.
//
// A walk yields one Entry per visited directory with the names of its
// immediate subdirectories and files, sorted and filtered for hidden and
// excluded names:
//
//	err := walk.Walk(".", walk.Options{Recursive: true}, func(e *walk.Entry) error {
//		for _, name := range e.Files {
//			fmt.Println(e.Path(name))
//		}
//		return nil
//	})
//
// During a top-down walk the callback may rewrite e.Dirs to control which
// subdirectories are descended into.
package walk

import (
	internal "github.com/TFMV/filebuddy/internal/walk"
	"github.com/gobwas/glob"
)

// Re-export the types from the internal package
type (
	// Entry describes a single visited directory.
	Entry = internal.Entry

	// Options configures a walk.
	Options = internal.Options

	// WalkFunc is called once per visited directory.
	WalkFunc = internal.WalkFunc

	// ErrorFn receives directories that could not be listed.
	ErrorFn = internal.ErrorFn
)

// Walk traverses root depth-first, visiting each directory before its
// descendants.
func Walk(root string, opts Options, fn WalkFunc) error {
	return internal.Walk(root, opts, fn)
}

// WalkBottomUp traverses root, visiting each directory after its descendants.
func WalkBottomUp(root string, opts Options, fn WalkFunc) error {
	return internal.WalkBottomUp(root, opts, fn)
}

// CompileExcludes compiles name globs for Options.Exclude.
func CompileExcludes(patterns []string) ([]glob.Glob, error) {
	return internal.CompileExcludes(patterns)
}

// Normalize converts backslashes to slashes and collapses repeated slashes.
func Normalize(path string) string {
	return internal.Normalize(path)
}

// Join joins a directory and a name and normalizes the result.
func Join(root, name string) string {
	return internal.Join(root, name)
}

// IsHidden reports whether name starts with a dot.
func IsHidden(name string) bool {
	return internal.IsHidden(name)
}
