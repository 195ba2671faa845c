package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"mlogc/pkg/compiler"
	"mlogc/pkg/exitcode"
	"mlogc/pkg/logging"
	"mlogc/pkg/utils"
)

const (
	outFileFlag    = "out-file"
	noWarnFlag     = "no-warn"
	silentFlag     = "silent"
	softSilentFlag = "soft-silent"
	verboseFlag    = "verbose"
	debugFlag      = "debug"
	maxDepthFlag   = "max-depth"
	jobsFlag       = "jobs"
)

// optionFlags returns the options understood both before and after the
// command name.
func optionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    outFileFlag,
			Aliases: []string{"O"},
			Usage:   "write output to `FILE` instead of <file>" + utils.OutputExt,
		},
		&cli.BoolFlag{
			Name:    noWarnFlag,
			Aliases: []string{"W"},
			Usage:   "suppress warnings",
		},
		&cli.BoolFlag{
			Name:    silentFlag,
			Aliases: []string{"s"},
			Usage:   "print nothing but the exit message",
		},
		&cli.BoolFlag{
			Name:    softSilentFlag,
			Aliases: []string{"S"},
			Usage:   "print errors only",
		},
		&cli.BoolFlag{
			Name:    verboseFlag,
			Aliases: []string{"v"},
			Usage:   "report each compilation step",
		},
		&cli.BoolFlag{
			Name:    debugFlag,
			Aliases: []string{"d"},
			Usage:   "trace the scanner and parser",
		},
		&cli.IntFlag{
			Name:  maxDepthFlag,
			Value: compiler.DefaultMaxDepth,
			Usage: "maximum nesting of function arguments, 0 or less disables the limit",
		},
		&cli.IntFlag{
			Name:    jobsFlag,
			Aliases: []string{"j"},
			Usage:   "compile up to `N` files at once (default: number of CPUs)",
		},
	}
}

// Options may be given at the root and on the command. The innermost
// context that set a flag wins.
func boolOption(c *cli.Context, name string) bool {
	for _, ctx := range c.Lineage() {
		if ctx.Bool(name) {
			return true
		}
	}
	return false
}

func stringOption(c *cli.Context, name string) string {
	for _, ctx := range c.Lineage() {
		if ctx.IsSet(name) {
			return ctx.String(name)
		}
	}
	return c.String(name)
}

func intOption(c *cli.Context, name string) int {
	for _, ctx := range c.Lineage() {
		if ctx.IsSet(name) {
			return ctx.Int(name)
		}
	}
	return c.Int(name)
}

func newLogger(c *cli.Context) *logging.Logger {
	return logging.New(c.App.Writer, logging.Options{
		Silent:     boolOption(c, silentFlag),
		SoftSilent: boolOption(c, softSilentFlag),
		NoWarn:     boolOption(c, noWarnFlag),
		Verbose:    boolOption(c, verboseFlag),
		Debug:      boolOption(c, debugFlag),
	})
}

func compileCommand() *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Usage:     "compile the given source files",
		ArgsUsage: "<file>...",
		Description: "Compiles each <file> to <file>" + utils.OutputExt + ". A file name starting with '-'\n" +
			"can be escaped with a leading '\\'.",
		Flags:                  optionFlags(),
		UseShortOptionHandling: true,
		OnUsageError:           onUsageError,
		Action:                 runCompile,
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print the version of the program",
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, c.App.Version)
			return nil
		},
	}
}

func runCompile(c *cli.Context) error {
	if !c.Args().Present() {
		return compiler.WithReason(exitcode.CommandExpectedInputArgument,
			fmt.Errorf("Command \"%s\" expected 1 argument. 0 were provided.", c.Command.Name))
	}

	paths := make([]string, c.Args().Len())
	for i, arg := range c.Args().Slice() {
		paths[i] = strings.TrimPrefix(arg, `\`)
	}

	log := newLogger(c)
	outFile := stringOption(c, outFileFlag)
	if outFile != "" && len(paths) > 1 {
		log.Warnf("--%s is ignored when compiling more than one file.", outFileFlag)
		outFile = ""
	}
	for _, path := range paths {
		full, _, err := utils.GetPathInfo(path)
		if err != nil {
			return compiler.WithReason(exitcode.CompileFileUnreadable, err)
		}
		log.Infof("Compiling %s to %s", full, utils.OutputPath(full, outFile))
	}

	opts := compiler.Options{
		Logger:   log,
		MaxDepth: intOption(c, maxDepthFlag),
		Jobs:     intOption(c, jobsFlag),
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = -1
	}

	results, err := compiler.CompileFiles(c.Context, paths, opts)
	if err != nil {
		first := compiler.FirstFailure(results)
		if len(paths) == 1 {
			return first.Err
		}
		return compiler.WithReason(compiler.ReasonOf(first.Err), err)
	}

	for _, res := range results {
		log.Okf("Compiled %s (%d tokens)", res.Path, len(res.Tokens))
	}
	if outFile != "" {
		log.Warnf("Code generation is not available yet, %s was not written.", outFile)
	}
	return nil
}
