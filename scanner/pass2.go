package scanner

import "github.com/dotan-asm/mipsasm/parser"

// Pass2 binds label references and encodes the instruction image, per
// §4.6. Error and Ignore statements are skipped, matching Pass1.
func Pass2(filename string, stmts []*parser.Statement, ctx *Context) {
	for _, stmt := range stmts {
		if stmt.Type != parser.StmtOperation {
			continue
		}
		pos := parser.Position{Filename: filename, Line: stmt.LineIndex}

		switch stmt.Op.Form {
		case parser.FormI:
			if stmt.Op.OpId.IsBranch() {
				ctx.bindBranch(pos, &stmt.Op)
			}
		case parser.FormJ:
			switch stmt.Op.OpId {
			case parser.OpLA:
				ctx.bindLA(pos, &stmt.Op)
			case parser.OpJMP, parser.OpCALL:
				if stmt.Op.J.HasLabel {
					ctx.bindJmp(pos, &stmt.Op)
				}
			}
		}

		ctx.InstImg = appendWord(ctx.InstImg, ctx.encode(stmt.Op))
		ctx.IC += 4
	}

	for _, sym := range ctx.Symbols.Iter() {
		if sym.Attr.Has(parser.Entry) && !sym.Attr.Has(parser.Required) && !sym.Defined {
			ctx.addError(parser.Position{Filename: filename, Line: sym.DeclLine}, parser.LabelEntUndef,
				"entry %q was never defined", sym.Name)
		}
	}
}

func (c *Context) encode(op parser.Operation) uint32 {
	switch op.Form {
	case parser.FormR:
		return encodeR(op.OpId, op.R)
	case parser.FormI:
		return encodeI(op.OpId, op.I)
	default:
		return encodeJ(op.OpId, op.J)
	}
}

func (c *Context) logUseSite(name string, attr parser.Attr) {
	c.Symbols.Insert(&parser.Symbol{Name: name, Offset: c.IC, Attr: attr | parser.Required})
}

// bindBranch resolves a BNE/BEQ/BLT/BGT label reference into a PC-relative
// immediate, per §4.6.
func (c *Context) bindBranch(pos parser.Position, op *parser.Operation) {
	name := op.I.Label
	sym := c.Symbols.Find(name)
	switch {
	case sym == nil:
		c.addError(pos, parser.LabelUndefined, "undefined label %q", name)
	case sym.Attr.Has(parser.Extern):
		c.addError(pos, parser.LabelUnexpExt, "branch target %q is declared extern", name)
	case sym.Attr.Has(parser.Data):
		c.addError(pos, parser.LabelJmp2Data, "branch target %q is a data label", name)
		op.I.Immed = int32(sym.Offset - c.IC)
		c.logUseSite(name, sym.Attr)
	default:
		op.I.Immed = int32(sym.Offset - c.IC)
		c.logUseSite(name, sym.Attr)
	}
}

// bindLA resolves an LA target: the referenced label must be extern or a
// data definition, since LA computes a data-segment load address.
func (c *Context) bindLA(pos parser.Position, op *parser.Operation) {
	if !op.J.HasLabel {
		return
	}
	name := op.J.Label
	sym := c.Symbols.Find(name)
	switch {
	case sym == nil:
		c.addError(pos, parser.LabelUndefined, "undefined label %q", name)
	case !sym.Attr.Has(parser.Extern) && !sym.Attr.Has(parser.Data):
		c.addError(pos, parser.LabelExpData, "la target %q is not a data symbol", name)
	default:
		if sym.Attr.Has(parser.Extern) {
			op.J.Addr = 0
		} else {
			op.J.Addr = int32(sym.Offset + c.ICF + parser.ActiveInitialIC())
		}
		c.logUseSite(name, sym.Attr)
	}
}

// bindJmp resolves a JMP/CALL label operand to a code address, per §4.6.
// A register operand to JMP never reaches here; callers only invoke this
// when a label was parsed.
func (c *Context) bindJmp(pos parser.Position, op *parser.Operation) {
	name := op.J.Label
	sym := c.Symbols.Find(name)
	switch {
	case sym == nil:
		c.addError(pos, parser.LabelUndefined, "undefined label %q", name)
	case sym.Attr.Has(parser.Data):
		c.addError(pos, parser.LabelJmp2Data, "jump target %q is a data label", name)
		c.resolveJmpAddr(op, sym)
		c.logUseSite(name, sym.Attr)
	default:
		c.resolveJmpAddr(op, sym)
		c.logUseSite(name, sym.Attr)
	}
}

func (c *Context) resolveJmpAddr(op *parser.Operation, sym *parser.Symbol) {
	if sym.Attr.Has(parser.Extern) {
		op.J.Addr = 0
	} else {
		op.J.Addr = int32(sym.Offset + parser.ActiveInitialIC())
	}
}
