package exitcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReasonNamesCoverEveryReason(t *testing.T) {
	seen := map[string]bool{}
	for r := OK; r <= Internal; r++ {
		name := r.String()
		assert.NotEmpty(t, name, "reason %d has no name", int(r))
		assert.False(t, seen[name], "duplicate name %q", name)
		seen[name] = true
	}
	assert.Len(t, reasonNames, int(Internal)+1)
}

func TestReasonCodesAreDistinct(t *testing.T) {
	codes := map[int]Reason{}
	for r := OK; r <= Internal; r++ {
		if prev, ok := codes[r.Code()]; ok {
			t.Fatalf("%s and %s share exit code %d", prev, r, r.Code())
		}
		codes[r.Code()] = r
	}
	assert.Equal(t, 0, OK.Code())
}

func TestReasonString_OutOfRange(t *testing.T) {
	assert.Equal(t, "Reason(99)", Reason(99).String())
	assert.Equal(t, "Reason(-1)", Reason(-1).String())
}

func TestIsInternal(t *testing.T) {
	assert.True(t, CompileWipArgsMissing.IsInternal())
	assert.True(t, CompileConstOperatorUnimplemented.IsInternal())
	assert.True(t, Internal.IsInternal())
	assert.False(t, CompileCharTooLong.IsInternal())
	assert.False(t, OK.IsInternal())
}
