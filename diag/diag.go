// Package diag renders parser.Error diagnostics to a terminal. The layout is
// modeled on original_source/errors.c's print_error: a bold "file:line[:col]:"
// prefix, a red "error:" or purple "warning:" tag, the message text, then —
// when a source line is known — the offending line, followed (when a column
// is also known) by a caret line, tabs preserved so the caret still lines up.
package diag

import (
	"fmt"
	"io"

	"github.com/dotan-asm/mipsasm/parser"
)

const (
	colorReset   = "\033[0m"
	colorWhiteB  = "\033[1;37m"
	colorRedB    = "\033[1;31m"
	colorPurpleB = "\033[1;35m"
	colorPurple  = "\033[0;35m"
)

// Printer renders a sequence of diagnostics to an io.Writer.
type Printer struct {
	Out            io.Writer
	Color          bool
	ShowSourceLine bool
}

// NewPrinter builds a Printer from a config.Config's diagnostics section.
func NewPrinter(out io.Writer, color, showSourceLine bool) *Printer {
	return &Printer{Out: out, Color: color, ShowSourceLine: showSourceLine}
}

// Print renders one diagnostic.
func (p *Printer) Print(e *parser.Error) {
	fmt.Fprint(p.Out, p.wrap(colorWhiteB, e.Pos.String()+":"))
	fmt.Fprint(p.Out, " ")

	if e.IsWarning() {
		fmt.Fprint(p.Out, p.wrap(colorPurpleB, "warning:"))
	} else {
		fmt.Fprint(p.Out, p.wrap(colorRedB, "error:"))
	}
	fmt.Fprintf(p.Out, " %s\n", e.Message)

	if p.ShowSourceLine && e.Line != "" {
		fmt.Fprintf(p.Out, "%4d | \t%s\n", e.Pos.Line, e.Line)
		if e.Pos.Column > 0 {
			fmt.Fprint(p.Out, "     | \t")
			p.writeCaret(e.Line, e.Pos.Column)
			fmt.Fprintln(p.Out)
		}
	}
}

// PrintAll renders every diagnostic in order.
func (p *Printer) PrintAll(errs []*parser.Error) {
	for _, e := range errs {
		p.Print(e)
	}
}

// Summary counts how many diagnostics in errs are hard errors versus
// warnings.
type Summary struct {
	Errors   int
	Warnings int
}

// Summarize tallies a diagnostic list.
func Summarize(errs []*parser.Error) Summary {
	var s Summary
	for _, e := range errs {
		if e.IsWarning() {
			s.Warnings++
		} else {
			s.Errors++
		}
	}
	return s
}

func (p *Printer) writeCaret(line string, col int) {
	for i := 0; i < col-1 && i < len(line); i++ {
		if line[i] == '\t' {
			fmt.Fprint(p.Out, "\t")
		} else {
			fmt.Fprint(p.Out, " ")
		}
	}
	fmt.Fprint(p.Out, p.wrap(colorPurple, "^^^"))
}

func (p *Printer) wrap(color, s string) string {
	if !p.Color {
		return s
	}
	return color + s + colorReset
}
