package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedWidth(w int) func() int {
	return func() int { return w }
}

type recordingTerminal struct {
	calls int
}

func (r *recordingTerminal) Suspend(fn func()) {
	r.calls++
	fn()
}

func TestEmitPlainToSink(t *testing.T) {
	var stdout, sink bytes.Buffer
	f := New(Config{Stdout: &stdout, Sink: &sink, Color: true, Width: fixedWidth(10)})

	f.Emit("dir/", "match", "/rest-of-a-long-line", RoleMatch, RolePlain)

	assert.Equal(t, "dir/match/rest-of-a-long-line\n", sink.String())
	assert.Empty(t, stdout.String())
}

func TestEmitColoursSpan(t *testing.T) {
	var stdout bytes.Buffer
	f := New(Config{Stdout: &stdout, Color: true, Width: fixedWidth(80)})

	f.Emit("a/", "b", "c", RoleMatch, RoleContext)

	got := stdout.String()
	assert.Contains(t, got, "\x1b[33mb\x1b[0m")
	assert.Contains(t, got, "\x1b[90ma/\x1b[0m")
	assert.Equal(t, "a/bc\n", ansi.Strip(got))
}

func TestEmitWithoutColour(t *testing.T) {
	var stdout bytes.Buffer
	f := New(Config{Stdout: &stdout, Width: fixedWidth(80)})

	f.Emit("a/", "b", "c", RoleMatch, RoleContext)
	assert.Equal(t, "a/bc\n", stdout.String())
}

func TestEmitTruncatesToVisibleWidth(t *testing.T) {
	long := strings.Repeat("x", 30) + "MATCH" + strings.Repeat("y", 30)

	for _, colored := range []bool{false, true} {
		var stdout bytes.Buffer
		f := New(Config{Stdout: &stdout, Color: colored, Width: fixedWidth(20)})

		f.Emit(long[:30], "MATCH", long[35:], RoleMatch, RolePlain)

		line := strings.TrimSuffix(stdout.String(), "\n")
		visible := ansi.Strip(line)
		assert.Equal(t, strings.Repeat("x", 17)+"...", visible, "colored=%v", colored)
		assert.LessOrEqual(t, ansi.StringWidth(line), 20)
	}

	// Span inside the visible part keeps its colour and is closed before the ellipsis.
	var stdout bytes.Buffer
	f := New(Config{Stdout: &stdout, Color: true, Width: fixedWidth(12)})
	f.Emit("ab", "MATCH", strings.Repeat("z", 20), RoleMatch, RolePlain)
	line := strings.TrimSuffix(stdout.String(), "\n")
	assert.Equal(t, "abMATCHzz...", ansi.Strip(line))
	assert.True(t, strings.HasSuffix(line, "\x1b[0m..."))
}

func TestEmitShortLineUntouched(t *testing.T) {
	var stdout bytes.Buffer
	f := New(Config{Stdout: &stdout, Width: fixedWidth(20)})
	f.Line(strings.Repeat("a", 20))
	assert.Equal(t, strings.Repeat("a", 20)+"\n", stdout.String())
}

func TestVerboseMessages(t *testing.T) {
	var quiet bytes.Buffer
	f := New(Config{Stdout: &quiet, Width: fixedWidth(80)})
	f.Info("hidden %d", 1)
	f.Error("hidden %d", 2)
	assert.Empty(t, quiet.String())

	var loud bytes.Buffer
	f = New(Config{Stdout: &loud, Verbose: true, Width: fixedWidth(80)})
	f.Info("Searching %q", "dir")
	f.Error("Could not read %s", "file")
	assert.Equal(t, "Searching \"dir\"\nERROR: Could not read file\n", loud.String())
	assert.True(t, f.Verbose())

	var sink bytes.Buffer
	f = New(Config{Stdout: &loud, Sink: &sink, Verbose: true, Color: true})
	f.Error("boom")
	assert.Equal(t, "ERROR: boom\n", sink.String())
}

func TestWritesGoThroughTerminal(t *testing.T) {
	var stdout bytes.Buffer
	term := &recordingTerminal{}
	f := New(Config{Stdout: &stdout, Terminal: term, Verbose: true, Width: fixedWidth(80)})

	f.Line("one")
	f.Info("two")
	f.Summary(NewTable("Summary").Add("k", "v"))

	assert.Equal(t, 3, term.calls)
}

func TestRenderTable(t *testing.T) {
	table := NewTable("Summary").
		Add("Directory Count", 3).
		Add("File Count", 10).
		Add("Elapsed Time", "00:00:01.2500")

	got := RenderTable(table, 80)
	want := "" +
		"+---------------------------------+\n" +
		"|             Summary             |\n" +
		"+---------------------------------+\n" +
		"| Directory Count...3             |\n" +
		"| File Count........10            |\n" +
		"| Elapsed Time......00:00:01.2500 |\n" +
		"+---------------------------------+\n"
	assert.Equal(t, want, got)
}

func TestRenderTableWidthBounds(t *testing.T) {
	// Title wider than the rows widens the box.
	got := RenderTable(NewTable("A Rather Long Title").Add("k", "v"), 80)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	for _, l := range lines {
		assert.Len(t, l, len("A Rather Long Title")+4)
	}

	// Narrow terminal truncates values with an ellipsis.
	got = RenderTable(NewTable("T").Add("key", strings.Repeat("v", 50)), 20)
	lines = strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	for _, l := range lines {
		assert.Len(t, l, 20)
	}
	assert.Contains(t, got, "| key...vvvvvvvv...|")

	// Empty tables still render a closed box.
	got = RenderTable(NewTable("Summary"), 80)
	assert.Equal(t, 4, strings.Count(got, "\n"))
}

func TestTableGet(t *testing.T) {
	table := NewTable("x").Add("a", 1)
	v, ok := table.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", v)
	_, ok = table.Get("b")
	assert.False(t, ok)
}

func TestBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0.00 B"},
		{1023, "1023.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 << 30, "3.00 GB"},
		{2 << 50, "2048.00 TB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Bytes(tt.n))
	}
}

func TestElapsed(t *testing.T) {
	assert.Equal(t, "00:00:00.0000", Elapsed(0))
	assert.Equal(t, "00:00:01.2500", Elapsed(1250*time.Millisecond))
	assert.Equal(t, "01:02:03.0001", Elapsed(time.Hour+2*time.Minute+3*time.Second+100*time.Microsecond))
	assert.Equal(t, "00:00:00.0000", Elapsed(-time.Second))
}
