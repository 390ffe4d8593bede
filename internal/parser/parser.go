package parser

import (
	"context"
	"errors"
	"fmt"

	"fortio.org/safecast"
	gojaparser "github.com/dop251/goja/parser"

	"fwlint/internal/ast"
	"fwlint/internal/diag"
	"fwlint/internal/source"
	"fwlint/internal/trace"
)

type Options struct {
	MaxErrors uint // 0 - без ограничения
	Reporter  diag.Reporter
}

type Result struct {
	Tree  *ast.Tree
	Bag   *diag.Bag
	Nodes int
	// Partial is set when the parser reported errors; Tree then holds
	// whatever could be recovered.
	Partial bool
}

// ParseFile parses one JavaScript file from fs and converts it into an
// ast.Tree. Syntax errors are reported as SYN2001 diagnostics; the tree is
// never nil, an unparsable file yields an empty Program.
func ParseFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) Result {
	file := fs.Get(id)

	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", trace.CurrentSpan(ctx).SpanID)
	span.WithExtra("file", file.Path)

	bag := diag.NewBag(int(opts.MaxErrors))
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	}

	b := ast.NewBuilder(file)
	c := &converter{b: b, file: file, size: contentSize(file)}

	root, parseErr := parseSafely(file)
	partial := false
	if parseErr != nil {
		partial = true
		reportParseError(reporter, file, parseErr)
	}

	program := c.program(root)
	span.End(fmt.Sprintf("%d nodes", b.Count()))
	return Result{
		Tree:    b.Finish(program),
		Bag:     bag,
		Nodes:   b.Count(),
		Partial: partial,
	}
}

func contentSize(file *source.File) uint32 {
	n, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		panic(fmt.Errorf("file %s is too large: %w", file.Path, err))
	}
	return n
}

// errParserPanic marks a failure inside the third-party parser itself.
var errParserPanic = errors.New("parser panicked")

func parseSafely(file *source.File) (program *gojaProgram, err error) {
	defer func() {
		if r := recover(); r != nil {
			program = nil
			err = fmt.Errorf("%w: %v", errParserPanic, r)
		}
	}()
	return gojaparser.ParseFile(nil, file.Path, string(file.Content), 0, gojaparser.WithDisableSourceMaps)
}
