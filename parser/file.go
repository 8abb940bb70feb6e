package parser

import (
	"bufio"
	"fmt"
	"os"
)

// ParseFile reads an assembly source file and parses it line by line into a
// sequence of Statements, one per physical line (1-based LineIndex). It never
// returns early on a bad line: per §7, lexical errors abort only the current
// statement, so parsing always runs to the end of the file.
//
// The only error ParseFile itself returns is an I/O failure opening or
// reading the file; per-line diagnostics live on the returned Statements'
// Err fields.
func ParseFile(path string) ([]*Statement, error) {
	f, err := os.Open(path) // #nosec G304 -- user-supplied assembly source path
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tz := NewTokenizer(path)
	p := NewParser(tz)

	var stmts []*Statement
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, activeLimits.MaxLineLen+16), activeLimits.MaxLineLen*4)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if lineNo > activeLimits.MaxProgLines {
			stmts = append(stmts, &Statement{
				Type:      StmtError,
				LineIndex: lineNo,
				Err: NewError(Position{Filename: path, Line: lineNo}, LongLine,
					fmt.Sprintf("source exceeds %d lines", activeLimits.MaxProgLines)),
			})
			break
		}
		stmts = append(stmts, p.ParseLine(lineNo, sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return stmts, err
	}
	return stmts, nil
}
