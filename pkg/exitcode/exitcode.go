// Package exitcode enumerates every reason the compiler can stop, each mapped
// to a distinct process exit code.
package exitcode

import "fmt"

// Reason identifies why a run ended. The integer value is the exit code.
type Reason int

const (
	OK Reason = iota

	// Command line
	UnknownOption
	OptionExpectedInputArgument
	UnknownCommand
	CommandExpectedInputArgument

	// Source loading
	CompileFileNotFound
	CompileFileUnreadable

	// Syntax errors
	CompileBadTokenAfterIdentifier
	CompileCharTooLong
	CompileFuncArgNotValue
	CompileMissingTerminator
	CompileUnclosedCall
	CompileNestingTooDeep

	// Internal invariant violations
	CompileWipArgsMissing
	CompileConstOperatorUnimplemented
	Internal
)

// reasonNames is indexed by Reason.
var reasonNames = [...]string{
	OK:                                "OK",
	UnknownOption:                     "UnknownOption",
	OptionExpectedInputArgument:       "OptionExpectedInputArgument",
	UnknownCommand:                    "UnknownCommand",
	CommandExpectedInputArgument:      "CommandExpectedInputArgument",
	CompileFileNotFound:               "CompileFileNotFound",
	CompileFileUnreadable:             "CompileFileUnreadable",
	CompileBadTokenAfterIdentifier:    "CompileBadTokenAfterIdentifier",
	CompileCharTooLong:                "CompileCharTooLong",
	CompileFuncArgNotValue:            "CompileFuncArgNotValue",
	CompileMissingTerminator:          "CompileMissingTerminator",
	CompileUnclosedCall:               "CompileUnclosedCall",
	CompileNestingTooDeep:             "CompileNestingTooDeep",
	CompileWipArgsMissing:             "CompileWipArgsMissing",
	CompileConstOperatorUnimplemented: "CompileConstOperatorUnimplemented",
	Internal:                          "Internal",
}

func (r Reason) String() string {
	if r >= 0 && int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Code returns the process exit code for r.
func (r Reason) Code() int { return int(r) }

// IsInternal reports whether r signals a broken invariant rather than bad input.
func (r Reason) IsInternal() bool {
	switch r {
	case CompileWipArgsMissing, CompileConstOperatorUnimplemented, Internal:
		return true
	}
	return false
}
