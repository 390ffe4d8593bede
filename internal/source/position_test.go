package source

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestLineOf(t *testing.T) {
	src := "window.Framework = {\n  config: {}\n};\n"
	tests := []struct {
		name   string
		offset int
		want   int
	}{
		{"start of file", 0, 1},
		{"before first newline", 20, 1},
		{"after first newline", 21, 2},
		{"last line", len(src), 4},
		{"past end saturates", len(src) + 100, 4},
		{"negative clamps", -5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineOf(src, tt.offset); got != tt.want {
				t.Errorf("LineOf(%d) = %d, want %d", tt.offset, got, tt.want)
			}
		})
	}
}

func TestLineOfAgreesWithResolve(t *testing.T) {
	src := "a\n\nbb\nccc\n"
	fs := NewFileSet()
	id := fs.AddVirtual("x.js", []byte(src))
	for off := 0; off <= len(src); off++ {
		start, _ := fs.Resolve(Span{File: id, Start: uint32(off), End: uint32(off)})
		if int(start.Line) != LineOf(src, off) {
			t.Errorf("offset %d: Resolve line %d, LineOf %d", off, start.Line, LineOf(src, off))
		}
	}
}

func TestLineOf_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("offsets past the end count every newline", prop.ForAll(
		func(s string, extra int) bool {
			return LineOf(s, len(s)+extra) == 1+strings.Count(s, "\n")
		},
		gen.AnyString(),
		gen.IntRange(0, 1000),
	))

	properties.Property("line number never decreases with offset", prop.ForAll(
		func(s string) bool {
			prev := 1
			for off := 0; off <= len(s); off++ {
				cur := LineOf(s, off)
				if cur < prev {
					return false
				}
				prev = cur
			}
			return true
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
