package command

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/karrick/godirwalk"
	"go.uber.org/zap"
)

// renameEntry renames from to to, refusing to replace an existing entry.
// Renaming onto the same file, e.g. a case-only change, is allowed.
func renameEntry(from, to string) error {
	if target, err := os.Lstat(to); err == nil {
		source, serr := os.Lstat(from)
		if serr != nil {
			return serr
		}
		if !os.SameFile(source, target) {
			return fmt.Errorf("%s: %w", to, ErrExists)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(from, to)
}

// copyFile copies the contents, permission bits and timestamps of src to dst.
// When dst is an existing directory the file is copied into it. It returns
// the path written.
func copyFile(src, dst string) (string, error) {
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}

	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", err
	}
	if target, err := os.Stat(dst); err == nil && os.SameFile(info, target) {
		return "", fmt.Errorf("%s and %s are the same file", src, dst)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", fmt.Errorf("copying %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return "", err
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return "", err
	}
	return dst, nil
}

// copyTree copies the directory src to dst, merging into dst when it already
// exists. Symlinks below src are recreated rather than followed.
func copyTree(src, dst string, logger *zap.Logger) error {
	src, err := filepath.EvalSymlinks(src)
	if err != nil {
		return err
	}
	inside, err := isWithin(dst, src)
	if err != nil {
		return err
	}
	if inside {
		return fmt.Errorf("%s into %s: %w", src, dst, ErrIntoSelf)
	}

	target := func(path string) (string, error) {
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return "", err
		}
		return filepath.Join(dst, rel), nil
	}

	return godirwalk.Walk(src, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			to, err := target(path)
			if err != nil {
				return err
			}
			switch {
			case de.IsDir():
				info, err := os.Stat(path)
				if err != nil {
					return err
				}
				return os.MkdirAll(to, info.Mode().Perm())
			case de.IsSymlink():
				link, err := os.Readlink(path)
				if err != nil {
					return err
				}
				if err := os.Remove(to); err != nil && !errors.Is(err, fs.ErrNotExist) {
					return err
				}
				return os.Symlink(link, to)
			default:
				if _, err := copyFile(path, to); err != nil {
					return err
				}
				logger.Debug("copied file", zap.String("from", path), zap.String("to", to))
				return nil
			}
		},
		PostChildrenCallback: func(path string, _ *godirwalk.Dirent) error {
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			to, err := target(path)
			if err != nil {
				return err
			}
			return os.Chtimes(to, info.ModTime(), info.ModTime())
		},
		ScratchBuffer: make([]byte, godirwalk.MinimumScratchBufferSize),
	})
}

// removeTree deletes the directory root and everything below it, children
// before their parents. Each removal below root is reported to removed. A
// symlink to a directory is removed without touching its target.
func removeTree(root string, removed func(path string, dir bool)) error {
	info, err := os.Lstat(root)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return os.Remove(root)
	}

	root = filepath.Clean(root)
	err = godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}
			if err := os.Remove(path); err != nil {
				return err
			}
			removed(path, false)
			return nil
		},
		PostChildrenCallback: func(path string, _ *godirwalk.Dirent) error {
			if path == root {
				return nil
			}
			if err := os.Remove(path); err != nil {
				return err
			}
			removed(path, true)
			return nil
		},
		ScratchBuffer: make([]byte, godirwalk.MinimumScratchBufferSize),
	})
	if err != nil {
		return err
	}
	return os.Remove(root)
}

// moveEntry moves src to dst, copying across filesystems when a plain rename
// is not possible. When dst is an existing directory src is moved into it.
// It returns the path written.
func moveEntry(src, dst string, logger *zap.Logger) (string, error) {
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}
	same, err := samePath(src, dst)
	if err != nil {
		return "", err
	}
	if same {
		return dst, errSamePath
	}
	if srcInfo.IsDir() {
		inside, err := isWithin(dst, src)
		if err != nil {
			return "", err
		}
		if inside {
			return "", fmt.Errorf("%s into %s: %w", src, dst, ErrIntoSelf)
		}
	}

	err = os.Rename(src, dst)
	if err == nil {
		return dst, nil
	}
	if !isCrossDevice(err) {
		return "", err
	}

	logger.Debug("rename crosses devices, copying", zap.String("from", src), zap.String("to", dst))
	if srcInfo.IsDir() {
		err = copyTree(src, dst, logger)
	} else {
		_, err = copyFile(src, dst)
	}
	if err != nil {
		return "", err
	}
	return dst, os.RemoveAll(src)
}

func isCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}

// errSamePath marks a move whose destination is its source.
var errSamePath = errors.New("source and destination are the same path")

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}

// isWithin reports whether path is dir or lies below it.
func isWithin(path, dir string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}
	if absPath == absDir {
		return true, nil
	}
	return strings.HasPrefix(absPath, absDir+string(filepath.Separator)), nil
}
