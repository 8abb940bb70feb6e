package scanner

import "github.com/dotan-asm/mipsasm/parser"

// Assemble runs both scan passes over an already-parsed statement sequence
// and returns the resulting Context. Both passes always run to completion,
// per §7: a hard error anywhere only suppresses artifact output, it never
// aborts scanning early.
func Assemble(filename string, stmts []*parser.Statement) *Context {
	ctx := NewContext()
	for _, stmt := range stmts {
		if stmt.Type == parser.StmtError {
			ctx.Errors.AddError(stmt.Err)
		}
	}
	Pass1(filename, stmts, ctx)
	Pass2(filename, stmts, ctx)
	return ctx
}

// AssembleFile parses and assembles a source file in one call, mirroring
// the teacher's ParseFile-then-process entry-point shape.
func AssembleFile(path string) (*Context, []*parser.Statement, error) {
	stmts, err := parser.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}
	return Assemble(path, stmts), stmts, nil
}
