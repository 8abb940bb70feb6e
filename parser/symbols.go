package parser

// Attr is the symbol attribute bitset described in §3. A single name may
// collect multiple bits (e.g. CODE|ENTRY).
type Attr int

const (
	// Required marks an entry as a use-site record rather than a
	// definition; Find skips these.
	Required Attr = 1 << iota
	Extern
	Entry
	Code
	Data
)

// Has reports whether all bits in mask are set.
func (a Attr) Has(mask Attr) bool { return a&mask == mask }

// Any reports whether any bit in mask is set.
func (a Attr) Any(mask Attr) bool { return a&mask != 0 }

// Symbol is one entry in the symbol table: either a definition or, when
// Attr has Required set, a use-site record logging where a label was
// referenced (used by the writer to emit the externals file).
//
// Per the §9 design note, an undefined ENTRY is tracked with an explicit
// Defined/DeclLine pair rather than the original's negative-offset sentinel
// trick; DeclLine lets LABEL_ENT_UNDEF cite the .entry declaration line
// after pass 2 without that encoding.
type Symbol struct {
	Name     string
	Offset   int
	Attr     Attr
	Defined  bool
	DeclLine int
}

// Table is the assembler's symbol table. Per §4.2 it is an append-only list,
// not a map: Insert never deduplicates (both definitions and use-site
// records accumulate), and Find does a linear scan skipping Required
// entries so that lookups resolve to definitions.
//
// The table is reinitialized per source file (see NewTable), matching the
// "symbol table is reinitialized per source file" lifecycle in §3.
type Table struct {
	entries []*Symbol
}

// NewTable returns an empty symbol table.
func NewTable() *Table {
	return &Table{entries: make([]*Symbol, 0, 64)}
}

// Insert appends a symbol without deduplication.
func (t *Table) Insert(s *Symbol) {
	t.entries = append(t.entries, s)
}

// Find returns the first entry matching name whose Required bit is not set,
// or nil if no definition exists yet.
func (t *Table) Find(name string) *Symbol {
	for _, s := range t.entries {
		if s.Name == name && !s.Attr.Has(Required) {
			return s
		}
	}
	return nil
}

// Iter returns all entries in stable insertion order, as used by the writer.
func (t *Table) Iter() []*Symbol {
	return t.entries
}
