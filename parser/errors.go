package parser

import "fmt"

// Position locates a diagnostic in a source file. Column is 1-based and
// refers to the token's starting index within the line; it is zero when no
// specific token position applies (e.g. a whole-line error).
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

// ErrorKind classifies a diagnostic per §7: Lexical errors abort the current
// statement only, Semantic errors accumulate across both scan passes, and
// Warnings never set the hard-error flag.
type ErrorKind int

const (
	KindLexical ErrorKind = iota
	KindSemantic
	KindWarning
)

func (k ErrorKind) String() string {
	if k == KindWarning {
		return "warning"
	}
	return "error"
}

// ErrCode enumerates the numeric-identified diagnostics of §7.
type ErrCode int

const (
	_ ErrCode = iota
	// Lexical
	UnknownTok
	UnexpectedTok
	UnexpectedEOL
	InvalDir
	InvalReg
	InvalImmed
	InvalLabel
	LongLabel
	LongLine
	// Semantic
	LabelUndefined
	LabelScopeMismatch
	LabelExtDef
	LabelDoubleDef
	LabelExpData
	LabelExpCode
	LabelEntUndef
	LabelUnexpExt
	// Warnings
	LabelJmp2Data
	RedundantLabelPrefix
)

var codeKind = map[ErrCode]ErrorKind{
	UnknownTok:    KindLexical,
	UnexpectedTok: KindLexical,
	UnexpectedEOL: KindLexical,
	InvalDir:      KindLexical,
	InvalReg:      KindLexical,
	InvalImmed:    KindLexical,
	InvalLabel:    KindLexical,
	LongLabel:     KindLexical,
	LongLine:      KindLexical,

	LabelUndefined:     KindSemantic,
	LabelScopeMismatch: KindSemantic,
	LabelExtDef:        KindSemantic,
	LabelDoubleDef:     KindSemantic,
	LabelExpData:       KindSemantic,
	LabelExpCode:       KindSemantic,
	LabelEntUndef:      KindSemantic,
	LabelUnexpExt:      KindSemantic,

	LabelJmp2Data:        KindWarning,
	RedundantLabelPrefix: KindWarning,
}

var codeNames = map[ErrCode]string{
	UnknownTok:    "UNKNOWN_TOK",
	UnexpectedTok: "UNEXPECTED_TOK",
	UnexpectedEOL: "UNEXPECTED_EOL",
	InvalDir:      "INVAL_DIR",
	InvalReg:      "INVAL_REG",
	InvalImmed:    "INVAL_IMMED",
	InvalLabel:    "INVAL_LABEL",
	LongLabel:     "LONG_LABEL",
	LongLine:      "LONG_LINE",

	LabelUndefined:     "LABEL_UNDEFINED",
	LabelScopeMismatch: "LABEL_SCOPE_MISMATCH",
	LabelExtDef:        "LABEL_EXT_DEF",
	LabelDoubleDef:     "LABEL_DOUBLE_DEF",
	LabelExpData:       "LABEL_EXP_DATA",
	LabelExpCode:       "LABEL_EXP_CODE",
	LabelEntUndef:      "LABEL_ENT_UNDEF",
	LabelUnexpExt:      "LABEL_UNEXP_EXT",

	LabelJmp2Data:        "LABEL_JMP2DATA",
	RedundantLabelPrefix: "REDUNDANT_LABEL_PREFIX",
}

func (c ErrCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Kind reports the error class a code belongs to.
func (c ErrCode) Kind() ErrorKind {
	if k, ok := codeKind[c]; ok {
		return k
	}
	return KindSemantic
}

// Error is a single diagnostic: a code, the position it was raised at, a
// human-readable message, and (when available) the raw source line for the
// diagnostics printer to render with a caret.
type Error struct {
	Pos     Position
	Code    ErrCode
	Message string
	Line    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Code.Kind(), e.Message)
}

// NewError builds a diagnostic for the given code and message.
func NewError(pos Position, code ErrCode, message string) *Error {
	return &Error{Pos: pos, Code: code, Message: message}
}

// NewErrorWithLine is NewError plus the raw source line, for diagnostics
// printers that render a caret under the offending token.
func NewErrorWithLine(pos Position, code ErrCode, message, line string) *Error {
	return &Error{Pos: pos, Code: code, Message: message, Line: line}
}

// IsWarning reports whether this diagnostic belongs to the Warnings class.
func (e *Error) IsWarning() bool { return e.Code.Kind() == KindWarning }

// ErrorList accumulates diagnostics for one source file. Per §7, a hard
// (non-warning) error anywhere in the file suppresses artifact output but
// both scan passes still run to completion.
type ErrorList struct {
	Errors []*Error
}

// AddError appends a diagnostic, warning or otherwise.
func (el *ErrorList) AddError(err *Error) {
	el.Errors = append(el.Errors, err)
}

// HasHardErrors reports whether any accumulated diagnostic is not a warning.
func (el *ErrorList) HasHardErrors() bool {
	for _, e := range el.Errors {
		if !e.IsWarning() {
			return true
		}
	}
	return false
}

// HasErrors is an alias for HasHardErrors, kept for parity with the
// teacher's ErrorList API.
func (el *ErrorList) HasErrors() bool { return el.HasHardErrors() }
