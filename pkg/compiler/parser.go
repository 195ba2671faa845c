package compiler

import (
	"strings"
	"unicode/utf8"

	"mlogc/pkg/exitcode"
	"mlogc/pkg/logging"
)

// DefaultMaxDepth bounds how deeply call arguments may nest before Parse
// gives up with exitcode.CompileNestingTooDeep.
const DefaultMaxDepth = 256

// Parser turns a token slice into a Value tree in a single pass.
//
// Grammar (current snapshot):
//
//	block     = (statement (";" statement)*)? ";"?
//	statement = value
//	value     = constant | identifier | call
//	call      = identifier "(" (argument ("," argument)*)? ")"
//	argument  = value                      (parsed recursively at depth+1)
//	constant  = STRING | CHAR | BACKTICK | numeral ("." numeral)?
//
// A block without any ";" that holds exactly one statement collapses to
// that statement.
type Parser struct {
	maxDepth int
	log      *logging.Logger
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithMaxDepth sets the nesting limit. n <= 0 disables the limit.
func WithMaxDepth(n int) ParserOption {
	return func(p *Parser) { p.maxDepth = n }
}

// WithLogger routes the parser's debug trace to l.
func WithLogger(l *logging.Logger) ParserOption {
	return func(p *Parser) { p.log = l }
}

func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses tokens with a default Parser. Callers start at depth 0.
func Parse(tokens []Token, depth int) (Value, error) {
	return NewParser().Parse(tokens, depth)
}

// Parse parses tokens as a block at the given nesting depth. On error no
// tree is returned and the error is always a *ParseError.
func (p *Parser) Parse(tokens []Token, depth int) (Value, error) {
	return p.parse(tokens, depth, Token{})
}

// parse is Parse with the token that opened the enclosing argument list,
// used to place a nesting error when tokens is empty.
func (p *Parser) parse(tokens []Token, depth int, open Token) (Value, error) {
	if p.maxDepth > 0 && depth > p.maxDepth {
		at := open
		if len(tokens) > 0 {
			at = tokens[0]
		}
		return nil, errorAt(exitcode.CompileNestingTooDeep, at,
			"Function arguments nest %d levels deep, the limit is %d.", depth, p.maxDepth)
	}

	p.log.Debugf("Begin depth %d", depth)
	r := &run{p: p, tokens: tokens, depth: depth}
	v, err := r.parse()
	if err != nil {
		return nil, err
	}
	p.log.Debugf("End depth %d", depth)
	return v, nil
}

// parseState is the automaton state between two tokens.
type parseState int

const (
	stateNone             parseState = iota // expecting a new statement
	statePrevIsIdentifier                   // an identifier is pending
	statePrevIsConst                        // a constant is pending
	stateParseArgs                          // inside a call's parentheses
)

var stateNames = [...]string{
	stateNone:             "None",
	statePrevIsIdentifier: "PrevIsIdentifier",
	statePrevIsConst:      "PrevIsConst",
	stateParseArgs:        "ParseArgs",
}

func (s parseState) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// run is the private state of one Parse call. Nested arguments get their
// own run, so nothing here is shared between depths.
type run struct {
	p      *Parser
	tokens []Token
	depth  int
	pos    int

	statements []Value
	wip        Value // value under construction, nil when none
	terminated bool  // a ";" was seen, so the block never collapses

	parens int     // parenthesis depth inside the current call
	open   Token   // the "(" that opened the current call
	buffer []Token // tokens of the argument being collected
}

func (r *run) parse() (Value, error) {
	st := stateNone
	for r.pos = 0; r.pos < len(r.tokens); r.pos++ {
		tok := r.tokens[r.pos]
		r.p.log.Debugf("[Depth %d] Processing %s.", r.depth, tok)

		next, err := r.handle(st, tok)
		if err != nil {
			return nil, err
		}
		if err := checkCharLiteral(tok); err != nil {
			return nil, err
		}
		st = next
	}
	return r.finish(st)
}

// handle dispatches tok to the handler of state st.
func (r *run) handle(st parseState, tok Token) (parseState, error) {
	switch st {
	case stateNone:
		return r.onNone(tok)
	case statePrevIsIdentifier:
		return r.onPrevIsIdentifier(tok)
	case statePrevIsConst:
		return r.onPrevIsConst(tok)
	case stateParseArgs:
		return r.onParseArgs(tok)
	}
	return st, internalError(exitcode.Internal, "Parser reached unknown state %s.", st)
}

func isTerminator(tok Token) bool {
	return tok.Literal == LiteralNone && tok.Content == ";"
}

// endStatement moves the pending value into the block.
func (r *run) endStatement() {
	if r.wip != nil {
		r.statements = append(r.statements, r.wip)
		r.wip = nil
	}
	r.terminated = true
}

func (r *run) onNone(tok Token) (parseState, error) {
	if isTerminator(tok) {
		r.endStatement()
		return stateNone, nil
	}
	if r.wip != nil {
		return stateNone, errorAt(exitcode.CompileMissingTerminator, tok,
			"Expected ';' between %s and '%s'.", r.wip, tok.Content)
	}

	switch {
	case tok.Literal != LiteralNone:
		r.wip = &Constant{Text: tok.Content, Kind: constKindOf(tok.Literal)}
		return statePrevIsConst, nil
	case isNumeral(tok.Content):
		r.wip = r.number(tok)
		return statePrevIsConst, nil
	}
	r.wip = &Identifier{Name: tok.Content}
	return statePrevIsIdentifier, nil
}

// number builds a Number constant from tok, absorbing a following "." and
// numeral as the fractional part. Lookahead tokens that do not complete a
// fraction stay in place for the next step.
func (r *run) number(tok Token) *Constant {
	c := &Constant{Text: tok.Content, Kind: ConstNumber}
	if r.pos+1 >= len(r.tokens) {
		return c
	}
	dot := r.tokens[r.pos+1]
	if dot.Literal != LiteralNone || dot.Content != "." {
		return c
	}
	if strings.Contains(tok.Content, "e") {
		r.p.log.Debugf("[Depth %d] Skipped %s as decimal point.", r.depth, dot)
		return c
	}
	r.p.log.Debugf("[Depth %d] Processing %s as decimal point.", r.depth, dot)

	if r.pos+2 >= len(r.tokens) {
		return c
	}
	rest := r.tokens[r.pos+2]
	if rest.Literal != LiteralNone || !isNumeral(rest.Content) {
		r.p.log.Debugf("[Depth %d] Skipped %s as number remainder.", r.depth, rest)
		return c
	}
	r.p.log.Debugf("[Depth %d] Processing %s as number remainder.", r.depth, rest)
	c.Text += "." + rest.Content
	r.pos += 2
	return c
}

// Statement operators that will follow an identifier once the grammar grows.
const expectedAfterIdentifier = "['(', ';', '!', '::', '=', '--', '++', '+=', '-=', '*=', '/=', '//=', '^=', '%=', '%%=', '<<=', '>>=', '>>>=', '&=', '|=', '&&=', '||=']"

func (r *run) onPrevIsIdentifier(tok Token) (parseState, error) {
	if tok.Literal == LiteralNone {
		switch tok.Content {
		case "(":
			ident, ok := r.wip.(*Identifier)
			if !ok {
				return stateNone, internalError(exitcode.Internal,
					"Expected an identifier before '(', found %v.", r.wip)
			}
			r.wip = &FunctionCall{Name: ident.Name, Args: []Value{}}
			r.parens = 1
			r.open = tok
			r.buffer = nil
			return stateParseArgs, nil
		case ";":
			r.endStatement()
			return stateNone, nil
		}
	}

	prev := "None"
	if ident, ok := r.wip.(*Identifier); ok {
		prev = ident.Name
	}
	quoted := ""
	if tok.Literal != LiteralNone {
		quoted = tok.Literal.String() + " "
	}
	return stateNone, errorAt(exitcode.CompileBadTokenAfterIdentifier, tok,
		"Unexpected token %s'%s' after '%s', expected one of %s.",
		quoted, tok.Content, prev, expectedAfterIdentifier)
}

// onPrevIsConst only accepts a terminator: operators on constants are not
// part of the grammar yet.
func (r *run) onPrevIsConst(tok Token) (parseState, error) {
	if isTerminator(tok) {
		r.endStatement()
		return stateNone, nil
	}
	return stateNone, errorAt(exitcode.CompileConstOperatorUnimplemented, tok,
		"Operators after constants are not implemented: unexpected '%s' after %s.", tok.Content, r.wip)
}

func (r *run) onParseArgs(tok Token) (parseState, error) {
	if tok.Literal == LiteralNone {
		switch tok.Content {
		case "(":
			r.parens++
		case ")":
			r.parens--
			if r.parens == 0 {
				if len(r.buffer) > 0 {
					if err := r.flushArg(tok); err != nil {
						return stateNone, err
					}
				}
				r.buffer = nil
				return stateNone, nil
			}
		case ",":
			if r.parens == 1 {
				if err := r.flushArg(tok); err != nil {
					return stateNone, err
				}
				return stateParseArgs, nil
			}
		}
	}
	r.buffer = append(r.buffer, tok)
	return stateParseArgs, nil
}

// flushArg parses the buffered tokens as one argument of the pending call.
// at is the "," or ")" that ended the argument.
func (r *run) flushArg(at Token) error {
	call, ok := r.wip.(*FunctionCall)
	if !ok || call.Args == nil {
		return internalError(exitcode.CompileWipArgsMissing,
			"Argument list of the call under construction is missing.")
	}

	arg, err := r.p.parse(r.buffer, r.depth+1, r.open)
	if err != nil {
		return err
	}
	if _, ok := arg.(*CodeBlock); ok {
		return errorAt(exitcode.CompileFuncArgNotValue, at,
			"Function argument should be a value, not executable code.")
	}
	call.Args = append(call.Args, arg)
	r.buffer = r.buffer[:0]
	return nil
}

func (r *run) finish(st parseState) (Value, error) {
	if st == stateParseArgs {
		name := "<unknown>"
		if call, ok := r.wip.(*FunctionCall); ok {
			name = call.Name
		}
		return nil, errorAt(exitcode.CompileUnclosedCall, r.open,
			"Argument list of '%s' is never closed, expected ')'.", name)
	}

	if r.wip != nil {
		r.statements = append(r.statements, r.wip)
		r.wip = nil
	}
	if !r.terminated && len(r.statements) == 1 {
		v := r.statements[0]
		r.p.log.Debugf("[Depth %d] Returning %T instead of CodeBlock.", r.depth, v)
		return v, nil
	}
	return &CodeBlock{Statements: r.statements}, nil
}

// isNumeral reports whether s is made of ASCII digits and at most one 'e'.
func isNumeral(s string) bool {
	if s == "" {
		return false
	}
	seenE := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
		case c == 'e' && !seenE:
			seenE = true
		default:
			return false
		}
	}
	return true
}

// checkCharLiteral enforces that a char literal holds one character, or
// starts with the \u escape.
func checkCharLiteral(tok Token) error {
	if tok.Literal != LiteralChar {
		return nil
	}
	n := utf8.RuneCountInString(tok.Content)
	if n == 1 || strings.HasPrefix(tok.Content, `\u`) {
		return nil
	}
	return errorAt(exitcode.CompileCharTooLong, tok,
		"Char '%s' should be 1 character long, but is %d.", tok.Content, n)
}
