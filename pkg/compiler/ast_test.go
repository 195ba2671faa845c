package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_String(t *testing.T) {
	tests := []struct {
		val  Value
		want string
	}{
		{Nop{}, "<Nop>"},
		{ident("foo"), `<Ident "foo">`},
		{num("1.5"), `<Const "1.5" (Num)>`},
		{str(`a\"b`), `<Const "a\\\"b" (Str)>`},
		{char("c"), `<Const "c" (Char)>`},
		{call("f"), "<FuncCall f([])>"},
		{call("f", ident("a"), str("x")), `<FuncCall f([<Ident "a">, <Const "x" (Str)>])>`},
		{&MacroCall{Name: "m", Args: []Value{num("2")}}, `<MacroCall m([<Const "2" (Num)>])>`},
		{&CodeBlock{}, "<CodeBlock []>"},
		{&CodeBlock{Statements: []Value{ident("a"), ident("b")}}, `<CodeBlock [<Ident "a">, <Ident "b">]>`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.val.String())
	}
}

func TestConstKind(t *testing.T) {
	assert.Equal(t, ConstString, constKindOf(LiteralString))
	assert.Equal(t, ConstChar, constKindOf(LiteralChar))
	assert.Equal(t, ConstString, constKindOf(LiteralBacktick))
	assert.Equal(t, "ConstKind(7)", ConstKind(7).String())
}
