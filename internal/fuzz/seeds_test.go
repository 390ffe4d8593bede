package fuzztests

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fwlint/internal/parser"
	"fwlint/internal/source"
	"fwlint/internal/testkit"
)

func TestSnippetsHoldTreeInvariants(t *testing.T) {
	bom := false
	for _, s := range snippets {
		bom = bom || strings.HasPrefix(s, "\ufeff")

		fset := source.NewFileSet()
		id := fset.AddVirtual("seed.js", []byte(s))
		res := parser.ParseFile(context.Background(), fset, id, parser.Options{})
		if err := testkit.CheckTreeInvariants(res.Tree); err != nil {
			t.Errorf("%q: %v", s, err)
		}
		if !res.Partial {
			if err := testkit.CheckDocumentOrder(res.Tree); err != nil {
				t.Errorf("%q: %v", s, err)
			}
		}
	}
	if !bom {
		t.Errorf("corpus lost its byte order mark seed")
	}
}

// компилятор отвергает BOM внутри файла, поэтому только escape
func TestSourcesHaveNoRawBOM(t *testing.T) {
	bom := []byte{0xEF, 0xBB, 0xBF}
	err := filepath.WalkDir("..", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".go" {
			return walkErr
		}
		// #nosec G304 -- path comes from repository walk
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if bytes.Contains(src, bom) {
			t.Errorf("%s contains a raw U+FEFF, write it as \\ufeff", path)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
