package rules

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"fwlint/internal/ast"
	"fwlint/internal/diag"
	"fwlint/internal/trace"
)

// Run evaluates every rule against the same source and tree and concatenates
// the results in catalogue order. A rule that panics contributes nothing.
func Run(rules []Rule, src string, root *ast.Program) []diag.Diagnostic {
	return RunContext(context.Background(), rules, src, root)
}

// RunContext is Run with tracing taken from ctx.
func RunContext(ctx context.Context, rules []Rule, src string, root *ast.Program) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, r := range rules {
		out = append(out, runOne(ctx, r, src, root)...)
	}
	return out
}

// RunParallel evaluates rules concurrently, at most limit at a time (limit <= 0
// means one goroutine per rule). Output order is the same as Run.
func RunParallel(ctx context.Context, rules []Rule, src string, root *ast.Program, limit int) []diag.Diagnostic {
	slots := make([][]diag.Diagnostic, len(rules))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, r := range rules {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = runOne(gctx, r, src, root)
			return nil
		})
	}
	// ошибка возможна только при отмене контекста: возвращаем то, что успели
	_ = g.Wait() //nolint:errcheck

	var out []diag.Diagnostic
	for _, s := range slots {
		out = append(out, s...)
	}
	return out
}

func runOne(ctx context.Context, r Rule, src string, root *ast.Program) (out []diag.Diagnostic) {
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID
	span := trace.Begin(tracer, trace.ScopeRule, "rule:"+r.Name, parent)

	defer func() {
		if rec := recover(); rec != nil {
			trace.Point(tracer, trace.ScopePass, "rule.panic", fmt.Sprintf("%s: %v", r.Name, rec), parent)
			out = nil
		}
		span.End(fmt.Sprintf("%d diagnostics", len(out)))
	}()

	if r.Check == nil || root == nil {
		return nil
	}
	return r.Check(src, root)
}
