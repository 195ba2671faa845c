package compiler

import (
	"fmt"
	"math"
)

// LiteralKind records which quote delimiter, if any, produced a token.
type LiteralKind int

const (
	LiteralNone     LiteralKind = iota // bare word, number or operator
	LiteralString                      // "..."
	LiteralChar                        // '...'
	LiteralBacktick                    // `...`
)

// literalNames is indexed by LiteralKind.
var literalNames = [...]string{
	LiteralNone:     "none",
	LiteralString:   "string",
	LiteralChar:     "char",
	LiteralBacktick: "backtick",
}

func (k LiteralKind) String() string {
	if k >= 0 && int(k) < len(literalNames) {
		return literalNames[k]
	}
	return fmt.Sprintf("LiteralKind(%d)", int(k))
}

// prefix is the one-letter tag used when printing a token.
func (k LiteralKind) prefix() string {
	switch k {
	case LiteralString:
		return "s"
	case LiteralChar:
		return "c"
	case LiteralBacktick:
		return "b"
	}
	return ""
}

// delimiterKind maps a quote rune to the literal it opens or closes.
func delimiterKind(r rune) LiteralKind {
	switch r {
	case '"':
		return LiteralString
	case '\'':
		return LiteralChar
	case '`':
		return LiteralBacktick
	}
	return LiteralNone
}

// MaxColumn is the largest column a token can report.
const MaxColumn = math.MaxInt32

// Token is a single lexical unit. Quoted tokens carry their content without
// the surrounding delimiters.
type Token struct {
	Content string
	Line    int // 1-based
	Column  int // 0-based, in runes
	Literal LiteralKind
}

func (t Token) String() string {
	return fmt.Sprintf("<Token %s\"%s\" %d:%d>", t.Literal.prefix(), t.Content, t.Line, t.Column)
}

// pos renders the position suffix used in diagnostics.
func (t Token) pos() string {
	return fmt.Sprintf(" (line %d, col %d)", t.Line, t.Column)
}

// clampColumn keeps column arithmetic inside [0, MaxColumn].
func clampColumn(col int64) int {
	switch {
	case col < 0:
		return 0
	case col > MaxColumn:
		return MaxColumn
	}
	return int(col)
}
