package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotan-asm/mipsasm/parser"
	"github.com/dotan-asm/mipsasm/scanner"
)

func parseLines(t *testing.T, lines ...string) []*parser.Statement {
	t.Helper()
	p := parser.NewParser(parser.NewTokenizer("test.as"))
	var stmts []*parser.Statement
	for i, line := range lines {
		stmts = append(stmts, p.ParseLine(i+1, line))
	}
	return stmts
}

func requireNoErrors(t *testing.T, stmts []*parser.Statement) {
	t.Helper()
	for _, s := range stmts {
		require.NotEqualf(t, parser.StmtError, s.Type, "unexpected parse error on line %d: %v", s.LineIndex, s.Err)
	}
}

// Scenario 1: MAIN: add $1, $2, $3.
func TestScanner_ScenarioAddEncoding(t *testing.T) {
	stmts := parseLines(t, "MAIN: add $1, $2, $3")
	requireNoErrors(t, stmts)
	ctx := scanner.Assemble("test.as", stmts)
	require.False(t, ctx.Errors.HasErrors(), "unexpected scan errors: %v", ctx.Errors.Errors)
	require.Len(t, ctx.InstImg, 4)

	// (funct<<6)|(rd<<11)|(rt<<16)|(rs<<21)|(opcode<<26) with funct=1,rd=3,
	// rt=2,rs=1,opcode=0 is 0x00221840, little-endian on disk.
	assert.Equal(t, []byte{0x40, 0x18, 0x22, 0x00}, ctx.InstImg)

	sym := ctx.Symbols.Find("MAIN")
	require.NotNil(t, sym)
	assert.Equal(t, 0, sym.Offset)
	assert.True(t, sym.Attr.Has(parser.Code))
}

// Scenario 2: STR: .asciz "hi" / .entry STR / la STR.
func TestScanner_ScenarioLaIntoData(t *testing.T) {
	stmts := parseLines(t,
		"STR: .asciz \"hi\"",
		".entry STR",
		"la STR",
	)
	requireNoErrors(t, stmts)
	ctx := scanner.Assemble("test.as", stmts)
	require.False(t, ctx.Errors.HasErrors(), "unexpected scan errors: %v", ctx.Errors.Errors)

	assert.Equal(t, []byte{'h', 'i', 0x00}, ctx.MemImg)
	assert.Equal(t, 4, ctx.ICF)

	laStmt := stmts[2]
	assert.Equal(t, int32(104), laStmt.Op.J.Addr)

	sym := ctx.Symbols.Find("STR")
	require.NotNil(t, sym)
	assert.True(t, sym.Attr.Has(parser.Entry))
	assert.True(t, sym.Defined)
}

// Scenario 3: .extern EXT / jmp EXT at IC=0.
func TestScanner_ScenarioJmpExtern(t *testing.T) {
	stmts := parseLines(t, ".extern EXT", "jmp EXT")
	requireNoErrors(t, stmts)
	ctx := scanner.Assemble("test.as", stmts)
	require.False(t, ctx.Errors.HasErrors(), "unexpected scan errors: %v", ctx.Errors.Errors)

	jmpStmt := stmts[1]
	assert.Equal(t, int32(0), jmpStmt.Op.J.Addr)

	var foundUseSite bool
	for _, sym := range ctx.Symbols.Iter() {
		if sym.Name == "EXT" && sym.Attr.Has(parser.Required) && sym.Attr.Has(parser.Extern) {
			foundUseSite = true
		}
	}
	assert.True(t, foundUseSite, "expected a REQUIRED|EXTERN use-site record for EXT")
}

// Scenario 4: bne $1, $2, LOOP at IC=12 with LOOP defined at IC=4 -> immediate -8.
func TestScanner_ScenarioBackwardBranch(t *testing.T) {
	// stop at IC=0, LOOP at IC=4, stop at IC=8, bne at IC=12.
	stmts := parseLines(t,
		"stop",
		"LOOP: stop",
		"stop",
		"bne $1, $2, LOOP",
	)
	requireNoErrors(t, stmts)
	ctx := scanner.Assemble("test.as", stmts)
	require.False(t, ctx.Errors.HasErrors(), "unexpected scan errors: %v", ctx.Errors.Errors)

	bneStmt := stmts[3]
	assert.EqualValues(t, -8, bneStmt.Op.I.Immed)
}

func TestScanner_UndefinedLabelIsSemanticError(t *testing.T) {
	stmts := parseLines(t, "bne $1, $2, NOPE")
	requireNoErrors(t, stmts)
	ctx := scanner.Assemble("test.as", stmts)
	if !ctx.Errors.HasErrors() {
		t.Fatalf("expected LABEL_UNDEFINED, got none")
	}
	found := false
	for _, e := range ctx.Errors.Errors {
		if e.Code == parser.LabelUndefined {
			found = true
		}
	}
	if !found {
		t.Fatalf("errors = %v, want LABEL_UNDEFINED among them", ctx.Errors.Errors)
	}
}

func TestScanner_EntryNeverDefinedIsReported(t *testing.T) {
	stmts := parseLines(t, ".entry X")
	requireNoErrors(t, stmts)
	ctx := scanner.Assemble("test.as", stmts)
	found := false
	for _, e := range ctx.Errors.Errors {
		if e.Code == parser.LabelEntUndef {
			found = true
			if e.Pos.Line != 1 {
				t.Errorf("LABEL_ENT_UNDEF line = %d, want 1 (the .entry declaration)", e.Pos.Line)
			}
		}
	}
	if !found {
		t.Fatalf("expected LABEL_ENT_UNDEF, errors = %v", ctx.Errors.Errors)
	}
}

func TestScanner_DoubleDefinitionIsRejected(t *testing.T) {
	stmts := parseLines(t, "A: stop", "A: stop")
	requireNoErrors(t, stmts)
	ctx := scanner.Assemble("test.as", stmts)
	found := false
	for _, e := range ctx.Errors.Errors {
		if e.Code == parser.LabelDoubleDef {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LABEL_DOUBLE_DEF, errors = %v", ctx.Errors.Errors)
	}
}

func TestScanner_SetLimitsOverridesInitialIC(t *testing.T) {
	defer parser.SetLimits(parser.Limits{})

	parser.SetLimits(parser.Limits{InitialIC: 200})

	stmts := parseLines(t, "la STR", "STR: .asciz \"hi\"")
	requireNoErrors(t, stmts)
	ctx := scanner.Assemble("test.as", stmts)
	require.False(t, ctx.Errors.HasErrors(), "unexpected scan errors: %v", ctx.Errors.Errors)

	laStmt := stmts[0]
	assert.EqualValues(t, 200+ctx.ICF, laStmt.Op.J.Addr)
}

func TestScanner_ExternThenLocalDefinitionIsExtDef(t *testing.T) {
	stmts := parseLines(t, ".extern A", "A: stop")
	requireNoErrors(t, stmts)
	ctx := scanner.Assemble("test.as", stmts)
	found := false
	for _, e := range ctx.Errors.Errors {
		if e.Code == parser.LabelExtDef {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LABEL_EXT_DEF, errors = %v", ctx.Errors.Errors)
	}
}
