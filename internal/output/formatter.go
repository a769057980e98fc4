// Package output renders result lines and summary tables for fb commands.
//
// Lines go either to an output file, uncoloured, or to the terminal, coloured
// and truncated to the terminal width. Verbose-only info and error lines share
// the same routing. Nothing here is process-wide: colours, verbosity and the
// terminal width are all part of Config.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// DefaultWidth is used when the terminal size cannot be determined.
const DefaultWidth = 80

const (
	ellipsis    = "..."
	errorPrefix = "ERROR: "
	resetSeq    = "\x1b[0m"
)

// Role selects the colour of a piece of output.
type Role int

const (
	RolePlain   Role = iota // Uncoloured text
	RoleMatch               // Matched span of a name or line
	RoleFile                // File header of a content hit
	RoleContext             // Text around a content hit
	RoleError               // Verbose error lines
	RoleInfo                // Verbose info lines
	RoleSuccess             // Completed actions
)

// Palette maps roles to colours. Roles without an entry render uncoloured.
type Palette map[Role]*color.Color

// DefaultPalette returns the standard colour set.
func DefaultPalette() Palette {
	return Palette{
		RoleMatch:   color.New(color.FgYellow),
		RoleFile:    color.New(color.FgCyan),
		RoleContext: color.New(color.FgHiBlack),
		RoleError:   color.New(color.FgRed),
		RoleInfo:    color.New(color.FgHiBlack),
		RoleSuccess: color.New(color.FgGreen),
	}
}

// Terminal serializes writes with anything else drawing on the terminal,
// such as a progress indicator.
type Terminal interface {
	Suspend(fn func())
}

// Config configures a Formatter.
type Config struct {
	Stdout   io.Writer  // Terminal output; defaults to os.Stdout
	Sink     io.Writer  // Optional output file; result lines go here uncoloured
	Verbose  bool       // Print Info and Error lines
	Color    bool       // Colour terminal output
	Width    func() int // Terminal width; defaults to TerminalWidth
	Terminal Terminal   // Optional, wraps every terminal write
	Palette  Palette    // Defaults to DefaultPalette
}

// Formatter writes result, info and error lines.
type Formatter struct {
	stdout   io.Writer
	sink     io.Writer
	verbose  bool
	colored  bool
	width    func() int
	terminal Terminal
	palette  Palette
}

// New builds a Formatter from cfg.
func New(cfg Config) *Formatter {
	f := &Formatter{
		stdout:   cfg.Stdout,
		sink:     cfg.Sink,
		verbose:  cfg.Verbose,
		colored:  cfg.Color,
		width:    cfg.Width,
		terminal: cfg.Terminal,
		palette:  cfg.Palette,
	}
	if f.stdout == nil {
		f.stdout = os.Stdout
	}
	if f.width == nil {
		f.width = TerminalWidth
	}
	if f.palette == nil {
		f.palette = DefaultPalette()
	}
	for _, c := range f.palette {
		if cfg.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return f
}

// Verbose reports whether info and error lines are printed.
func (f *Formatter) Verbose() bool {
	return f.verbose
}

// TerminalWidth returns the column count of stdout, or DefaultWidth.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// Emit writes one result line made of before, span and after. On the terminal
// span is drawn in spanRole and the surrounding text in wrapRole; a line wider
// than the terminal is cut to width-3 visible cells followed by "...". Escape
// sequences never count toward the visible width.
func (f *Formatter) Emit(before, span, after string, spanRole, wrapRole Role) {
	if f.sink != nil {
		fmt.Fprintln(f.sink, before+span+after)
		return
	}

	line := f.paint(before, wrapRole) + f.paint(span, spanRole) + f.paint(after, wrapRole)
	line = f.truncate(line)
	f.writeTerminal(line + "\n")
}

// Line writes text as a single uncoloured result line.
func (f *Formatter) Line(text string) {
	f.Emit(text, "", "", RolePlain, RolePlain)
}

// Info writes a verbose-only informational line.
func (f *Formatter) Info(format string, args ...any) {
	if !f.verbose {
		return
	}
	f.message(fmt.Sprintf(format, args...), RoleInfo)
}

// Error writes a verbose-only error line prefixed with "ERROR: ".
func (f *Formatter) Error(format string, args ...any) {
	if !f.verbose {
		return
	}
	f.message(errorPrefix+fmt.Sprintf(format, args...), RoleError)
}

func (f *Formatter) message(text string, role Role) {
	if f.sink != nil {
		fmt.Fprintln(f.sink, text)
		return
	}
	f.writeTerminal(f.paint(text, role) + "\n")
}

func (f *Formatter) paint(text string, role Role) string {
	if text == "" || !f.colored {
		return text
	}
	c, ok := f.palette[role]
	if !ok || c == nil {
		return text
	}
	return c.Sprint(text)
}

func (f *Formatter) truncate(line string) string {
	width := f.width()
	if width <= 0 || ansi.StringWidth(line) <= width {
		return line
	}
	if width <= len(ellipsis) {
		return ansi.Truncate(line, width, "")
	}
	cut := ansi.Truncate(line, width-len(ellipsis), "")
	if f.colored {
		// The cut may have dropped the closing reset of a coloured span.
		cut += resetSeq
	}
	return cut + ellipsis
}

func (f *Formatter) writeTerminal(text string) {
	if f.terminal == nil {
		io.WriteString(f.stdout, text)
		return
	}
	f.terminal.Suspend(func() {
		io.WriteString(f.stdout, text)
	})
}
