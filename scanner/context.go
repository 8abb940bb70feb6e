// Package scanner implements the two-pass scan that turns a parsed
// statement sequence into a memory image, an instruction image, and a
// resolved symbol table: pass 1 lays out offsets, pass 2 binds labels and
// encodes instruction words.
package scanner

import (
	"fmt"

	"github.com/dotan-asm/mipsasm/parser"
)

// Context is the explicit, file-scoped state the original module-global
// counters and buffers were packaged into, per the §9 "Global counters"
// design note: IC/DC/ICF/DCF plus the two images and the symbol table,
// passed through the pipeline instead of living as package state.
type Context struct {
	InstImg []byte
	MemImg  []byte

	IC, DC   int
	ICF, DCF int

	Symbols *parser.Table
	Errors  *parser.ErrorList
}

// NewContext returns a zeroed Context sized to the worst case for a source
// file, ready for pass 1.
func NewContext() *Context {
	return &Context{
		InstImg: make([]byte, 0, parser.MaxProgLines*4),
		MemImg:  make([]byte, 0, parser.MaxProgLines*parser.MaxLineLen/2),
		Symbols: parser.NewTable(),
		Errors:  &parser.ErrorList{},
	}
}

func (c *Context) addError(pos parser.Position, code parser.ErrCode, format string, args ...any) {
	c.Errors.AddError(parser.NewError(pos, code, fmt.Sprintf(format, args...)))
}
