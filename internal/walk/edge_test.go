package walk

import (
	"os"
	"path/filepath"
	"testing"
)

// TestEmptyDirectory tests walking an empty directory
func TestEmptyDirectory(t *testing.T) {
	tempDir := t.TempDir()

	var count int
	err := Walk(tempDir, Options{Recursive: true}, func(e *Entry) error {
		count++
		if len(e.Dirs) != 0 || len(e.Files) != 0 {
			t.Errorf("Expected no children, got %v %v", e.Dirs, e.Files)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	// We expect only 1 entry (the directory itself)
	if count != 1 {
		t.Errorf("Expected 1 entry, got %d", count)
	}
}

// TestRootIsFile tests that walking a file fails up front
func TestRootIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	err := Walk(file, Options{}, func(e *Entry) error { return nil })
	if err == nil {
		t.Errorf("Expected error for a file root, got nil")
	}
}

// TestLongPaths tests a deeply nested tree
func TestLongPaths(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping long path test in short mode")
	}

	tempDir := t.TempDir()

	currentDir := tempDir
	for i := 0; i < 15; i++ {
		currentDir = filepath.Join(currentDir, "subdir")
		if err := os.MkdirAll(currentDir, 0755); err != nil {
			t.Fatalf("Failed to create deep directory: %v", err)
		}
	}

	deepFile := filepath.Join(currentDir, "deep_file.txt")
	if err := os.WriteFile(deepFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create deep file: %v", err)
	}

	var deepestPath string
	var depth int
	err := Walk(tempDir, Options{Recursive: true}, func(e *Entry) error {
		depth++
		for _, name := range e.Files {
			deepestPath = e.Path(name)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	if deepestPath != Normalize(deepFile) {
		t.Errorf("Expected to find deepest file at %s, got %s", deepFile, deepestPath)
	}
	if depth != 16 {
		t.Errorf("Expected 16 directories, got %d", depth)
	}
}

// TestConcurrentModification tests removing a directory the walk has listed
// but not yet entered
func TestConcurrentModification(t *testing.T) {
	tempDir := t.TempDir()
	for _, dir := range []string{"a", "b"} {
		if err := os.MkdirAll(filepath.Join(tempDir, dir, "inner"), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
	}

	var errs int
	var visited []string
	opts := Options{
		Recursive: true,
		OnError:   func(string, error) { errs++ },
	}
	err := Walk(tempDir, opts, func(e *Entry) error {
		visited = append(visited, e.Root)
		if e.Root == Join(tempDir, "a") {
			// b was listed by the parent and disappears before it is entered.
			return os.RemoveAll(filepath.Join(tempDir, "b"))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	if errs != 0 {
		t.Errorf("Expected a vanished directory to be skipped silently, got %d errors", errs)
	}
	for _, path := range visited {
		if path == Join(tempDir, "b") {
			t.Errorf("Visited removed directory %s", path)
		}
	}
}
