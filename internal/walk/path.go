package walk

import "strings"

// Normalize rewrites backslashes as forward slashes and collapses repeated
// slashes so paths display and match the same way on every platform.
func Normalize(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")
	if !strings.Contains(path, "//") {
		return path
	}
	var b strings.Builder
	b.Grow(len(path))
	prev := byte(0)
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == '/' && prev == '/' {
			continue
		}
		b.WriteByte(c)
		prev = c
	}
	return b.String()
}

// Join appends name to root with a single separator.
func Join(root, name string) string {
	return Normalize(root + "/" + name)
}

// IsHidden reports whether a single name is hidden.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// HasHiddenSegment reports whether any segment of path is hidden.
func HasHiddenSegment(path string) bool {
	for _, seg := range strings.Split(Normalize(path), "/") {
		if IsHidden(seg) {
			return true
		}
	}
	return false
}
