package compiler

import (
	"fmt"
	"strings"
)

// Value is implemented by every node of the syntax tree. The set of
// implementations is closed: Nop, Identifier, Constant, FunctionCall,
// MacroCall and CodeBlock.
type Value interface {
	valueNode()
	String() string
}

// ConstKind is the type of a Constant.
type ConstKind int

const (
	ConstString ConstKind = iota
	ConstChar
	ConstNumber
)

var constKindNames = [...]string{
	ConstString: "Str",
	ConstChar:   "Char",
	ConstNumber: "Num",
}

func (k ConstKind) String() string {
	if k >= 0 && int(k) < len(constKindNames) {
		return constKindNames[k]
	}
	return fmt.Sprintf("ConstKind(%d)", int(k))
}

// constKindOf maps a quoted token to the constant it denotes. Backtick
// literals have no meaning of their own yet and are read as strings.
func constKindOf(k LiteralKind) ConstKind {
	if k == LiteralChar {
		return ConstChar
	}
	return ConstString
}

// Nop is an empty placeholder. It never appears in a tree returned by Parse.
type Nop struct{}

func (Nop) valueNode()     {}
func (Nop) String() string { return "<Nop>" }

// Identifier is a bare name.
//
//	foo;
//	^^^  Identifier{Name: "foo"}
type Identifier struct {
	Name string
}

func (*Identifier) valueNode()       {}
func (i *Identifier) String() string { return fmt.Sprintf("<Ident %q>", i.Name) }

// Constant is a literal value. Text is the source text with quote
// delimiters removed; escape sequences are left untouched.
//
//	f(1.5, 'c')
//	  ^^^  Constant{Text: "1.5", Kind: ConstNumber}
type Constant struct {
	Text string
	Kind ConstKind
}

func (*Constant) valueNode() {}
func (c *Constant) String() string {
	return fmt.Sprintf("<Const %q (%s)>", c.Text, c.Kind)
}

// FunctionCall represents name(args). Args is never nil once parsed.
type FunctionCall struct {
	Name string
	Args []Value
}

func (*FunctionCall) valueNode() {}
func (c *FunctionCall) String() string {
	return fmt.Sprintf("<FuncCall %s([%s])>", c.Name, joinValues(c.Args))
}

// MacroCall has the shape of a FunctionCall. No syntax produces it yet.
type MacroCall struct {
	Name string
	Args []Value
}

func (*MacroCall) valueNode() {}
func (c *MacroCall) String() string {
	return fmt.Sprintf("<MacroCall %s([%s])>", c.Name, joinValues(c.Args))
}

// CodeBlock is an ordered list of statements.
type CodeBlock struct {
	Statements []Value
}

func (*CodeBlock) valueNode() {}
func (b *CodeBlock) String() string {
	return fmt.Sprintf("<CodeBlock [%s]>", joinValues(b.Statements))
}

func joinValues(vals []Value) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
