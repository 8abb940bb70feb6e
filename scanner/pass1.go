package scanner

import (
	"github.com/dotan-asm/mipsasm/parser"
)

// Pass1 lays out the memory image and the preliminary symbol table, per
// §4.5. Error statements are skipped entirely (the resolved Open Question
// (b): the original's STATEMENT_ERROR fall-through double-counts erroneous
// lines, so Error statements never reach write_memory/write_instruction
// here). Statements are otherwise processed in order; IC/DC both start at
// zero and are snapshotted into ICF/DCF once the pass completes.
func Pass1(filename string, stmts []*parser.Statement, ctx *Context) {
	for _, stmt := range stmts {
		if stmt.Type == parser.StmtError || stmt.Type == parser.StmtIgnore {
			continue
		}
		pos := parser.Position{Filename: filename, Line: stmt.LineIndex}

		switch stmt.Type {
		case parser.StmtOperation:
			if stmt.HasLabel {
				ctx.defineLabel(pos, stmt.Label, parser.Code, ctx.IC, stmt.LineIndex)
			}
			ctx.IC += 4

		case parser.StmtDirective:
			switch stmt.Dir.Id {
			case parser.DirEntry:
				ctx.declareLabel(pos, stmt.Dir.Single, parser.Entry, stmt.LineIndex)
			case parser.DirExtern:
				ctx.declareLabel(pos, stmt.Dir.Single, parser.Extern, stmt.LineIndex)
			default:
				if stmt.HasLabel {
					ctx.defineLabel(pos, stmt.Label, parser.Data, ctx.DC, stmt.LineIndex)
				}
				ctx.appendData(stmt.Dir)
			}
		}
	}
	ctx.ICF, ctx.DCF = ctx.IC, ctx.DC
	ctx.IC, ctx.DC = 0, 0
}

// appendData writes a directive's payload to MemImg and advances DC, per
// the write_memory behavior of §4.5: .asciz appends the string plus a NUL,
// .db/.dh/.dw append each element truncated to its directive width,
// least-significant byte first.
func (c *Context) appendData(dir parser.Directive) {
	switch dir.Id {
	case parser.DirAsciz:
		c.MemImg = append(c.MemImg, dir.Single...)
		c.MemImg = append(c.MemImg, 0)
		c.DC += len(dir.Single) + 1
	case parser.DirDb, parser.DirDh, parser.DirDw:
		width := dir.Id.Size()
		for _, v := range dir.Array {
			for i := 0; i < width; i++ {
				c.MemImg = append(c.MemImg, byte(v>>(8*i)))
			}
		}
		c.DC += width * len(dir.Array)
	}
}

// defineLabel records a CODE or DATA definition at offset, applying the
// §4.5 merge rules.
func (c *Context) defineLabel(pos parser.Position, name string, attr parser.Attr, offset, line int) {
	sym := c.findOrCreate(name)
	if sym.Defined {
		c.addError(pos, parser.LabelDoubleDef, "label %q is already defined", name)
		return
	}
	sym.Attr |= attr
	c.checkScope(pos, name, sym)
	sym.Offset = offset
	sym.Defined = true
}

// declareLabel records an ENTRY or EXTERN declaration. Per §9, the
// undefined-entry sentinel is tracked via DeclLine rather than a
// negative-offset encoding; DeclLine is kept only while the symbol remains
// otherwise undefined, so later diagnostics can still cite the declaration.
func (c *Context) declareLabel(pos parser.Position, name string, attr parser.Attr, line int) {
	sym := c.findOrCreate(name)
	sym.Attr |= attr
	c.checkScope(pos, name, sym)
	if !sym.Defined {
		sym.DeclLine = line
	}
}

func (c *Context) findOrCreate(name string) *parser.Symbol {
	if sym := c.Symbols.Find(name); sym != nil {
		return sym
	}
	sym := &parser.Symbol{Name: name}
	c.Symbols.Insert(sym)
	return sym
}

func (c *Context) checkScope(pos parser.Position, name string, sym *parser.Symbol) {
	if sym.Attr.Has(parser.Extern) && sym.Attr.Any(parser.Entry) {
		c.addError(pos, parser.LabelScopeMismatch, "label %q cannot be both extern and entry", name)
	}
	if sym.Attr.Has(parser.Extern) && sym.Attr.Any(parser.Code|parser.Data) {
		c.addError(pos, parser.LabelExtDef, "label %q is declared extern but also defined locally", name)
	}
}
