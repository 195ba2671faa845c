package compiler

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"runtime"

	"github.com/hashicorp/go-multierror"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"mlogc/pkg/exitcode"
	"mlogc/pkg/logging"
	"mlogc/pkg/utils"
)

// Options configures a compilation.
type Options struct {
	// Logger receives progress and debug output. May be nil.
	Logger *logging.Logger
	// MaxDepth limits argument nesting. Zero means DefaultMaxDepth and a
	// negative value disables the limit.
	MaxDepth int
	// Jobs bounds how many files CompileFiles handles at once. Zero means
	// GOMAXPROCS.
	Jobs int
}

func (o Options) parser() *Parser {
	opts := []ParserOption{WithLogger(o.Logger)}
	if o.MaxDepth != 0 {
		opts = append(opts, WithMaxDepth(o.MaxDepth))
	}
	return NewParser(opts...)
}

// Result is the outcome of compiling one source.
type Result struct {
	Path   string
	Tokens []Token
	Root   Value
	// Err is set by CompileFiles when this file failed.
	Err error
}

// Compile tokenizes and parses src.
func Compile(src string, opts Options) (*Result, error) {
	log := opts.Logger

	log.Infof("Begin tokenize")
	tokens := Tokenize(src)
	log.Infof("Tokenize success")
	if log.Enabled(logging.Debug) {
		log.Debugf("------ All tokens:")
		for _, tok := range tokens {
			log.Debugf("%s", tok)
		}
		log.Debugf("------")
	}

	log.Infof("Parse tokens (first pass)")
	root, err := opts.parser().Parse(tokens, 0)
	if err != nil {
		return nil, err
	}
	log.Debugf("%s", root)
	log.Okf("Parse success")

	return &Result{Tokens: tokens, Root: root}, nil
}

// CompileFile reads and compiles the file at path.
func CompileFile(path string, opts Options) (*Result, error) {
	log := opts.Logger

	log.Infof("Reading file %s", path)
	src, err := utils.ReadSource(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, WithReason(exitcode.CompileFileNotFound,
				fmt.Errorf("File \"%s\" not found.", path))
		}
		return nil, WithReason(exitcode.CompileFileUnreadable,
			fmt.Errorf("Reading file \"%s\" failed. Error: %w", path, pkgerrors.Cause(err)))
	}
	log.Infof("File read success")

	res, err := Compile(src, opts)
	if err != nil {
		return nil, err
	}
	res.Path = path
	return res, nil
}

// CompileFiles compiles every path concurrently, at most opts.Jobs at a
// time. Results come back in the order of paths, each with its own Err. The
// returned error aggregates every failure, each prefixed with its path.
// Files not yet started when ctx is done fail with ctx.Err().
func CompileFiles(ctx context.Context, paths []string, opts Options) ([]*Result, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(paths))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			results[i] = &Result{Path: path, Err: err}
			continue
		}
		i, path := i, path
		g.Go(func() error {
			res, err := CompileFile(path, opts)
			if err != nil {
				res = &Result{Path: path, Err: err}
			}
			results[i] = res
			return nil
		})
	}
	// Failures are kept per file in results; no goroutine returns an error.
	_ = g.Wait()

	var merr *multierror.Error
	for _, res := range results {
		if res.Err != nil {
			merr = multierror.Append(merr, pkgerrors.Wrap(res.Err, res.Path))
		}
	}
	return results, merr.ErrorOrNil()
}

// FirstFailure returns the first result in results that carries an error.
func FirstFailure(results []*Result) *Result {
	for _, res := range results {
		if res != nil && res.Err != nil {
			return res
		}
	}
	return nil
}
