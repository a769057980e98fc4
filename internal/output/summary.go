package output

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const fillDots = 3

// Row is a single key/value pair of a summary table.
type Row struct {
	Key   string
	Value string
}

// Table is an ordered key/value report printed after a command completes.
type Table struct {
	Title string
	Rows  []Row
}

// NewTable returns an empty table.
func NewTable(title string) *Table {
	return &Table{Title: title}
}

// Add appends a row, formatting value with fmt.Sprint.
func (t *Table) Add(key string, value any) *Table {
	t.Rows = append(t.Rows, Row{Key: key, Value: fmt.Sprint(value)})
	return t
}

// Get returns the value stored under key.
func (t *Table) Get(key string) (string, bool) {
	for _, r := range t.Rows {
		if r.Key == key {
			return r.Value, true
		}
	}
	return "", false
}

// Summary prints t as a bordered box on the terminal:
//
//	+---------------------+
//	|       Summary       |
//	+---------------------+
//	| File Count.......12 |
//	+---------------------+
//
// Keys are dot-filled to the longest key. The box is as wide as its widest row
// but never wider than the terminal, and never narrower than the title plus 4.
func (f *Formatter) Summary(t *Table) {
	f.writeTerminal(RenderTable(t, f.width()))
}

// RenderTable lays t out for a terminal of the given width.
func RenderTable(t *Table, width int) string {
	maxKey, maxVal := 0, 0
	for _, r := range t.Rows {
		maxKey = max(maxKey, runewidth.StringWidth(r.Key))
		maxVal = max(maxVal, runewidth.StringWidth(r.Value))
	}

	box := maxKey + fillDots + maxVal + 4
	box = max(box, runewidth.StringWidth(t.Title)+4)
	if width > 0 {
		box = min(box, width)
	}
	content := max(box-2, 1)

	rule := "+" + strings.Repeat("-", content) + "+\n"

	var b strings.Builder
	b.WriteString(rule)
	b.WriteString(titleLine(t.Title, content))
	b.WriteString(rule)

	keyWidth := maxKey
	if content-4-keyWidth < 1 {
		keyWidth = max(content-5, 1)
	}
	valWidth := max(content-4-keyWidth, 1)

	for _, r := range t.Rows {
		key := runewidth.Truncate(r.Key, keyWidth, ellipsis)
		key += strings.Repeat(".", keyWidth-runewidth.StringWidth(key))
		val := runewidth.Truncate(r.Value, valWidth, ellipsis)
		pad := max(content-4-keyWidth-runewidth.StringWidth(val), 0)

		b.WriteString("| ")
		b.WriteString(key)
		b.WriteString(strings.Repeat(".", fillDots))
		b.WriteString(val)
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString("|\n")
	}
	b.WriteString(rule)
	return b.String()
}

func titleLine(title string, content int) string {
	if runewidth.StringWidth(title)+2 > content {
		title = runewidth.Truncate(title, max(content-2, 0), ellipsis)
	}
	tw := runewidth.StringWidth(title)
	left := max((content-tw)/2, 0)
	right := max(content-tw-left, 0)
	return "|" + strings.Repeat(" ", left) + title + strings.Repeat(" ", right) + "|\n"
}
