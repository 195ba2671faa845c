package compiler

import "strings"

// punctuation runes always end the pending token and are emitted on their own
// (or merged into a multi-character operator).
var punctuation = map[rune]bool{
	';': true, ':': true, '.': true, ',': true,
	'{': true, '}': true, '[': true, ']': true, '(': true, ')': true,
	'!': true, '@': true, '#': true, '$': true, '%': true, '/': true,
	'?': true, '^': true, '&': true, '*': true, '-': true, '+': true,
	'=': true, '|': true, '<': true, '>': true, '~': true,
}

// operators lists every multi-character operator. They are built one rune at
// a time, so every intermediate prefix must itself be reachable.
var operators = []string{
	"==", "--", "++", "===", "||", "&&", "//", ">>", ">>>", "<<",
	">=", "<=", "!=", "!==", "%%",
	"*=", "/=", "//=", "+=", "-=", "^=", "~=",
	"<<=", ">>=", ">>>=", "|=", "&=", "||=", "&&=", "%%=",
	"..",
}

// isWhitespace covers ASCII spacing plus NEL, LRM, RLM, LS and PS.
func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v',
		'\u0085', '\u200e', '\u200f', '\u2028', '\u2029':
		return true
	}
	return false
}

// extendsOperator reports whether s is a prefix of some multi-character operator.
func extendsOperator(s string) bool {
	for _, op := range operators {
		if strings.HasPrefix(op, s) {
			return true
		}
	}
	return false
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src    []rune
	tokens []Token

	line int
	col  int64

	start    int // index of the first rune of the pending token
	pendLine int
	pendCol  int
	lastEnd  int // index just past the most recently emitted token

	literal  LiteralKind // kind of the open literal, LiteralNone outside one
	litLine  int
	litCol   int
	escaped  bool // next rune inside a literal is taken as-is
	verbatim bool // between two bare backslashes
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, lastEnd: -1}
}

// emit appends a token ending just before index end.
func (l *Lexer) emit(tok Token, end int) {
	l.tokens = append(l.tokens, tok)
	l.lastEnd = end
}

// flush emits the pending token, if any, and restarts it after index i.
func (l *Lexer) flush(i int) {
	if l.start < i {
		l.emit(Token{
			Content: string(l.src[l.start:i]),
			Line:    l.pendLine,
			Column:  l.pendCol,
		}, i)
	}
	l.start = i + 1
}

// accumulate adds the rune at index i to the pending token.
func (l *Lexer) accumulate(i int) {
	if i == l.start {
		l.pendLine = l.line
		l.pendCol = clampColumn(l.col)
	}
}

// scanLiteral handles a rune while a quoted literal is open.
func (l *Lexer) scanLiteral(i int, r rune) {
	switch {
	case l.escaped:
		l.escaped = false
	case delimiterKind(r) == l.literal:
		if l.start < i {
			l.emit(Token{
				Content: string(l.src[l.start:i]),
				Line:    l.litLine,
				Column:  l.litCol,
				Literal: l.literal,
			}, i+1)
		}
		l.start = i + 1
		l.literal = LiteralNone
	case r == '\\':
		l.escaped = true
	}
}

// scanPunctuation either grows the previous operator token or emits r alone.
func (l *Lexer) scanPunctuation(i int, r rune) {
	if n := len(l.tokens); n > 0 && l.start == i && l.lastEnd == i {
		last := &l.tokens[n-1]
		if last.Literal == LiteralNone && extendsOperator(last.Content+string(r)) {
			last.Content += string(r)
			l.lastEnd = i + 1
			l.start = i + 1
			return
		}
	}
	l.flush(i)
	l.emit(Token{Content: string(r), Line: l.line, Column: clampColumn(l.col)}, i+1)
}

// step classifies a single rune. Rules are checked in priority order.
func (l *Lexer) step(i int, r rune) {
	if l.literal != LiteralNone {
		l.scanLiteral(i, r)
		return
	}

	if kind := delimiterKind(r); kind != LiteralNone {
		l.flush(i)
		l.literal = kind
		l.litLine = l.line
		l.litCol = clampColumn(l.col)
		return
	}

	if r == '\\' {
		l.flush(i)
		l.verbatim = !l.verbatim
		return
	}

	switch {
	case l.verbatim:
		l.accumulate(i)
	case isWhitespace(r):
		l.flush(i)
	case punctuation[r]:
		l.scanPunctuation(i, r)
	default:
		l.accumulate(i)
	}
}

// finish flushes whatever is pending at end of input. An unterminated literal
// is kept as a literal token so the parser can still report on it.
func (l *Lexer) finish() {
	end := len(l.src)
	if l.literal != LiteralNone {
		if l.start < end {
			l.emit(Token{
				Content: string(l.src[l.start:end]),
				Line:    l.litLine,
				Column:  l.litCol,
				Literal: l.literal,
			}, end)
		}
		l.start = end
		return
	}
	l.flush(end)
}

func (l *Lexer) run() []Token {
	for i, r := range l.src {
		l.step(i, r)
		if r == '\n' {
			l.line++
			l.col = 0
		} else {
			l.col++
		}
	}
	l.finish()
	return l.tokens
}

// Tokenize splits src into positioned tokens. It never fails: malformed input
// yields a best-effort stream and validation is left to the parser.
func Tokenize(src string) []Token {
	return newLexer(src).run()
}
