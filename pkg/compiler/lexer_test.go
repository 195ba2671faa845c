package compiler

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:     "Empty",
			input:    "",
			expected: nil,
		},
		{
			name:     "Only Whitespace",
			input:    " \t\r\n\f\v",
			expected: nil,
		},
		{
			name:  "Call Statement",
			input: "foo(1, 2);",
			expected: []Token{
				{Content: "foo", Line: 1, Column: 0},
				{Content: "(", Line: 1, Column: 3},
				{Content: "1", Line: 1, Column: 4},
				{Content: ",", Line: 1, Column: 5},
				{Content: "2", Line: 1, Column: 7},
				{Content: ")", Line: 1, Column: 8},
				{Content: ";", Line: 1, Column: 9},
			},
		},
		{
			name:  "Adjacent Minus Merges",
			input: "a--b",
			expected: []Token{
				{Content: "a", Line: 1, Column: 0},
				{Content: "--", Line: 1, Column: 1},
				{Content: "b", Line: 1, Column: 3},
			},
		},
		{
			name:  "Separated Minus Does Not Merge",
			input: "a- -b",
			expected: []Token{
				{Content: "a", Line: 1, Column: 0},
				{Content: "-", Line: 1, Column: 1},
				{Content: "-", Line: 1, Column: 3},
				{Content: "b", Line: 1, Column: 4},
			},
		},
		{
			name:  "Longest Operator",
			input: "x>>>=y",
			expected: []Token{
				{Content: "x", Line: 1, Column: 0},
				{Content: ">>>=", Line: 1, Column: 1},
				{Content: "y", Line: 1, Column: 5},
			},
		},
		{
			name:  "Strict Equality Operators",
			input: "a===b!==c",
			expected: []Token{
				{Content: "a", Line: 1, Column: 0},
				{Content: "===", Line: 1, Column: 1},
				{Content: "b", Line: 1, Column: 4},
				{Content: "!==", Line: 1, Column: 5},
				{Content: "c", Line: 1, Column: 8},
			},
		},
		{
			name:  "Non Operator Pair Splits",
			input: "a=-b",
			expected: []Token{
				{Content: "a", Line: 1, Column: 0},
				{Content: "=", Line: 1, Column: 1},
				{Content: "-", Line: 1, Column: 2},
				{Content: "b", Line: 1, Column: 3},
			},
		},
		{
			name:  "Range And Decimal",
			input: "1..2 3.5",
			expected: []Token{
				{Content: "1", Line: 1, Column: 0},
				{Content: "..", Line: 1, Column: 1},
				{Content: "2", Line: 1, Column: 3},
				{Content: "3", Line: 1, Column: 5},
				{Content: ".", Line: 1, Column: 6},
				{Content: "5", Line: 1, Column: 7},
			},
		},
		{
			name:  "Literal Kinds",
			input: "\"s\" 'c' `b`",
			expected: []Token{
				{Content: "s", Line: 1, Column: 0, Literal: LiteralString},
				{Content: "c", Line: 1, Column: 4, Literal: LiteralChar},
				{Content: "b", Line: 1, Column: 8, Literal: LiteralBacktick},
			},
		},
		{
			name:  "Escaped Quote Stays In String",
			input: `"a\"b"`,
			expected: []Token{
				{Content: `a\"b`, Line: 1, Column: 0, Literal: LiteralString},
			},
		},
		{
			name:  "Other Quote Is Content",
			input: `"it's"`,
			expected: []Token{
				{Content: "it's", Line: 1, Column: 0, Literal: LiteralString},
			},
		},
		{
			name:  "Empty Literal Emits Nothing",
			input: `x "" y`,
			expected: []Token{
				{Content: "x", Line: 1, Column: 0},
				{Content: "y", Line: 1, Column: 5},
			},
		},
		{
			name:  "Literal Glued To Words",
			input: `ab"cd"ef`,
			expected: []Token{
				{Content: "ab", Line: 1, Column: 0},
				{Content: "cd", Line: 1, Column: 2, Literal: LiteralString},
				{Content: "ef", Line: 1, Column: 6},
			},
		},
		{
			name:  "Operator After Literal Does Not Merge Into It",
			input: `"a"=="b"`,
			expected: []Token{
				{Content: "a", Line: 1, Column: 0, Literal: LiteralString},
				{Content: "==", Line: 1, Column: 3},
				{Content: "b", Line: 1, Column: 5, Literal: LiteralString},
			},
		},
		{
			name:  "Unterminated Literal",
			input: `say "abc`,
			expected: []Token{
				{Content: "say", Line: 1, Column: 0},
				{Content: "abc", Line: 1, Column: 4, Literal: LiteralString},
			},
		},
		{
			name:  "Verbatim Mode",
			input: `\a b;c\ d`,
			expected: []Token{
				{Content: "a b;c", Line: 1, Column: 1},
				{Content: "d", Line: 1, Column: 8},
			},
		},
		{
			name:  "Lines And Columns",
			input: "a\n  b\n\nc",
			expected: []Token{
				{Content: "a", Line: 1, Column: 0},
				{Content: "b", Line: 2, Column: 2},
				{Content: "c", Line: 4, Column: 0},
			},
		},
		{
			name:  "Unicode Separators",
			input: "a b\u0085c\u200ed",
			expected: []Token{
				{Content: "a", Line: 1, Column: 0},
				{Content: "b", Line: 1, Column: 2},
				{Content: "c", Line: 1, Column: 4},
				{Content: "d", Line: 1, Column: 6},
			},
		},
		{
			name:  "No Break Space Is Not Whitespace",
			input: "a\u00a0b",
			expected: []Token{
				{Content: "a\u00a0b", Line: 1, Column: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q)\n got: %v\nwant: %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTokenize_NoEmptyTokens(t *testing.T) {
	inputs := []string{
		`""''` + "``",
		`\\`,
		"  ;;  ,, ",
		`f("", '', x)`,
		`"unterminated`,
	}
	for _, in := range inputs {
		for _, tok := range Tokenize(in) {
			assert.NotEmpty(t, tok.Content, "input %q produced %v", in, tok)
		}
	}
}

func TestTokenize_ContentCoversSource(t *testing.T) {
	src := "foo(bar, 1.5) >>= baz;\n  qux--;"
	var b strings.Builder
	for _, tok := range Tokenize(src) {
		b.WriteString(tok.Content)
	}
	want := strings.Join(strings.Fields(src), "")
	assert.Equal(t, want, b.String())
}

func TestTokenize_OperatorsAreSingleTokens(t *testing.T) {
	for _, op := range operators {
		t.Run(op, func(t *testing.T) {
			got := Tokenize("a" + op + "b")
			if assert.Len(t, got, 3) {
				assert.Equal(t, op, got[1].Content)
				assert.Equal(t, 1, got[1].Column)
			}
		})
	}
}

func TestToken_String(t *testing.T) {
	assert.Equal(t, `<Token s"abc" 1:4>`, Token{Content: "abc", Line: 1, Column: 4, Literal: LiteralString}.String())
	assert.Equal(t, `<Token c"x" 2:0>`, Token{Content: "x", Line: 2, Literal: LiteralChar}.String())
	assert.Equal(t, `<Token b"y" 1:0>`, Token{Content: "y", Line: 1, Literal: LiteralBacktick}.String())
	assert.Equal(t, `<Token ";" 3:7>`, Token{Content: ";", Line: 3, Column: 7}.String())
}

func TestClampColumn(t *testing.T) {
	assert.Equal(t, 0, clampColumn(-5))
	assert.Equal(t, 12, clampColumn(12))
	assert.Equal(t, MaxColumn, clampColumn(int64(MaxColumn)+1))
}

func TestLiteralKind_String(t *testing.T) {
	assert.Equal(t, "none", LiteralNone.String())
	assert.Equal(t, "char", LiteralChar.String())
	assert.Equal(t, "LiteralKind(9)", LiteralKind(9).String())
}
