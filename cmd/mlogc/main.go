// mlogc is the command line front end of the compiler: it reads source
// files, runs the scanner and parser over them and reports diagnostics.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"mlogc/pkg/compiler"
	"mlogc/pkg/exitcode"
	"mlogc/pkg/utils"
)

const appVersion = "0.0.1"

func init() {
	// -v is taken by --verbose.
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version of the program and quit",
	}
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintln(c.App.Writer, c.App.Version)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:                   "mlogc",
		Usage:                  "compile source files to mlog",
		Version:                appVersion,
		Writer:                 stdout,
		ErrWriter:              stderr,
		Flags:                  optionFlags(),
		UseShortOptionHandling: true,
		Commands: []*cli.Command{
			compileCommand(),
			versionCommand(),
		},
		Action:       rootAction,
		OnUsageError: onUsageError,
		// Errors are reported by run so the exit code can be mapped.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// rootAction runs when no known command was given.
func rootAction(c *cli.Context) error {
	if !c.Args().Present() {
		return cli.ShowAppHelp(c)
	}
	name := c.Args().First()
	if utils.Exists(name) {
		return compiler.WithReason(exitcode.UnknownCommand, fmt.Errorf(
			"Unknown command \"%s\". Did you mean \"%s compile %s\"?", name, c.App.Name, name))
	}
	return compiler.WithReason(exitcode.UnknownCommand, fmt.Errorf("Unknown command \"%s\".", name))
}

// onUsageError reports flag parsing failures. Options missing their value
// never get here, reorderArgs rejects them first.
func onUsageError(_ *cli.Context, err error, _ bool) error {
	return compiler.WithReason(exitcode.UnknownOption,
		fmt.Errorf("%s\nRun without arguments for the help page.", err))
}

// valueFlags returns every name and alias of the options that take a value.
func valueFlags() map[string]bool {
	names := map[string]bool{}
	for _, f := range optionFlags() {
		if _, ok := f.(*cli.BoolFlag); ok {
			continue
		}
		for _, name := range f.Names() {
			names[name] = true
		}
	}
	return names
}

func isOption(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}

// reorderArgs moves the options given after the command in front of its
// operands, so "compile a.src -v" reads as "compile -v a.src". Operands
// escaped with a leading '\' stay operands and everything after "--" is
// taken literally.
func reorderArgs(args []string) ([]string, error) {
	if len(args) < 2 {
		return args, nil
	}
	takesValue := valueFlags()

	// take appends the option at args[i], and its value when it needs one,
	// returning the index of the last argument consumed.
	take := func(dst *[]string, i int) (int, error) {
		arg := args[i]
		*dst = append(*dst, arg)
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") || !takesValue[name] {
			return i, nil
		}
		if i+1 >= len(args) {
			return i, compiler.WithReason(exitcode.OptionExpectedInputArgument, fmt.Errorf(
				"Option \"%s\" expected a value.\nRun without arguments for the help page.", arg))
		}
		*dst = append(*dst, args[i+1])
		return i + 1, nil
	}

	out := []string{args[0]}
	i := 1
	for ; i < len(args) && isOption(args[i]); i++ {
		var err error
		if i, err = take(&out, i); err != nil {
			return nil, err
		}
	}
	if i >= len(args) {
		return out, nil
	}
	out = append(out, args[i])

	var options, operands, rest []string
	for i++; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			rest = args[i:]
			i = len(args)
		case isOption(arg):
			var err error
			if i, err = take(&options, i); err != nil {
				return nil, err
			}
		default:
			operands = append(operands, arg)
		}
	}
	out = append(out, options...)
	if rest != nil {
		// "--" must precede every operand to end option parsing.
		out = append(out, "--")
		rest = rest[1:]
	}
	out = append(out, operands...)
	return append(out, rest...), nil
}

// run executes the application and returns the process exit code. Failures
// are printed as the message followed by "Exit code: N".
func run(args []string, stdout, stderr io.Writer) int {
	args, err := reorderArgs(args)
	if err == nil {
		err = newApp(stdout, stderr).Run(args)
	}
	if err == nil {
		return exitcode.OK.Code()
	}
	reason := compiler.ReasonOf(err)
	fmt.Fprintf(stdout, "%s\nExit code: %d\n", err, reason.Code())
	return reason.Code()
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}
