package parser

// Size limits. These are the compiled-in defaults; config.Limits can override
// them per run (see the config package).
const (
	// MaxProgLines bounds the number of source lines a single file may contain.
	MaxProgLines = 2048

	// MaxLabelLen bounds the length of a label name, not counting the colon.
	MaxLabelLen = 32

	// MaxLineLen bounds the length of a source line, not counting the newline.
	MaxLineLen = 80

	// MaxOpnameLen bounds the length of an operation or directive mnemonic.
	MaxOpnameLen = 4

	// InitialIC is the address the first instruction word is placed at.
	// Addresses below this are reserved the way low memory is on the target
	// machine.
	InitialIC = 100
)

// Limits bundles the size limits enforced while parsing and scanning a
// source file. config.Config carries an overridable copy of these; see
// SetLimits.
type Limits struct {
	MaxProgLines int
	MaxLabelLen  int
	MaxLineLen   int
	InitialIC    int
}

var activeLimits = Limits{
	MaxProgLines: MaxProgLines,
	MaxLabelLen:  MaxLabelLen,
	MaxLineLen:   MaxLineLen,
	InitialIC:    InitialIC,
}

// SetLimits overrides the limits ParseFile, ParseLine, and the scanner/writer
// packages enforce, letting a loaded config.Config's [limits] section take
// effect. A zero or negative field falls back to its compiled-in default
// rather than disabling the limit. Not safe to call while a parse is in
// progress.
func SetLimits(l Limits) {
	if l.MaxProgLines <= 0 {
		l.MaxProgLines = MaxProgLines
	}
	if l.MaxLabelLen <= 0 {
		l.MaxLabelLen = MaxLabelLen
	}
	if l.MaxLineLen <= 0 {
		l.MaxLineLen = MaxLineLen
	}
	if l.InitialIC <= 0 {
		l.InitialIC = InitialIC
	}
	activeLimits = l
}

// ActiveInitialIC returns the currently configured initial instruction
// counter address, as set by SetLimits (or InitialIC if never overridden).
func ActiveInitialIC() int { return activeLimits.InitialIC }

// WhitespaceChars lists the characters treated as horizontal whitespace when
// splitting a line into fields.
const WhitespaceChars = " \f\n\r\t\v"

// CommentChar starts a comment that runs to the end of the line. A comment
// character only introduces a comment in the first non-blank column of a
// line; elsewhere it is a lexical error.
const CommentChar = ';'
