package fuzztests

import (
	"context"
	"testing"
	"time"

	"fwlint/internal/parser"
	"fwlint/internal/rules"
	"fwlint/internal/source"
	"fwlint/internal/testkit"
)

// parseTimeout is the maximum time allowed for checking a single input.
// If it takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsTree(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		id := fs.AddVirtual("fuzz.js", input)
		res := parser.ParseFile(context.Background(), fs, id, parser.Options{MaxErrors: 128})
		if err := testkit.CheckTreeInvariants(res.Tree); err != nil {
			t.Fatalf("invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
		if !res.Partial {
			if err := testkit.CheckDocumentOrder(res.Tree); err != nil {
				t.Fatalf("document order: %v\ninput: %q", err, truncateForLog(input, 200))
			}
		}
	})
}

// FuzzRulesNeverPanic calls the rule functions directly, without the
// recovering runner, so a panic fails the fuzz run.
func FuzzRulesNeverPanic(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		id := fs.AddVirtual("fuzz.js", input)
		res := parser.ParseFile(context.Background(), fs, id, parser.Options{MaxErrors: 128})
		src := res.Tree.Source()
		for _, r := range rules.Catalogue() {
			for _, d := range r.Check(src, res.Tree.Root) {
				if d.Line < 1 {
					t.Fatalf("%s reported line %d for %q", r.Name, d.Line, truncateForLog(input, 200))
				}
				if d.Rule != r.Name {
					t.Fatalf("%s reported a diagnostic attributed to %q", r.Name, d.Rule)
				}
			}
		}
	})
}

// FuzzNormalizeKeyIdempotent checks NormalizeKey(NormalizeKey(s)) == NormalizeKey(s).
func FuzzNormalizeKeyIdempotent(f *testing.F) {
	for _, s := range []string{"name", `"name"`, `'clientIds'`, "\"é\"", `"'x'"`, `"`, ""} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		once := rules.NormalizeKey(s)
		if twice := rules.NormalizeKey(once); twice != once {
			t.Fatalf("NormalizeKey not idempotent: %q -> %q -> %q", s, once, twice)
		}
	})
}

// FuzzParserNoHang tests that parsing and checking finish on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// глубокая вложенность и незакрытые конструкции
	f.Add([]byte("((((((((((((((((((((((((((((((((a))))))))))))))))))))))))))))))))"))
	f.Add([]byte("window.Framework = {{{{{{{{{{{{{{{{{{{{{{"))
	f.Add([]byte("/*"))
	f.Add([]byte("`${`${`${"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			id := fs.AddVirtual("fuzz.js", input)
			res := parser.ParseFile(ctx, fs, id, parser.Options{MaxErrors: 128})
			_ = rules.RunContext(ctx, rules.Catalogue(), res.Tree.Source(), res.Tree.Root)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("hang detected: checking took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(append([]byte(nil), input[:maxLen]...), "..."...)
}
