package rules_test

import (
	"context"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"fwlint/internal/ast"
	"fwlint/internal/diag"
	"fwlint/internal/rules"
)

const messyConfig = `window.parent.postMessage(m, "*");
window.Framework = {
  config: {
    name: "Acme",
    clientIds: { "mypurecloud.com": "x" },
    settings: { enableCallLogs: true, searchTargets: ["frameworkContacts"] },
    customInteractionAttributes: []
  },
  processCallLog: function () {},
  loader: "vendor/app.js"
};
`

func TestCatalogueOrderAndNames(t *testing.T) {
	want := []string{
		"no-wildcard-origin",
		"framework-config",
		"config-properties",
		"interaction-attributes",
		"client-ids",
		"contact-search",
		"call-log",
		"external-script",
	}
	if got := rules.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("names = %v", got)
	}
	for _, r := range rules.Catalogue() {
		if r.Check == nil || len(r.Codes) == 0 || r.Title == "" {
			t.Errorf("rule %s is incomplete", r.Name)
		}
		for _, c := range r.Codes {
			if owner, ok := rules.ByCode(c); !ok || owner.Name != r.Name {
				t.Errorf("code %s does not map back to %s", c.ID(), r.Name)
			}
		}
	}
	if rules.Fingerprint() != rules.Fingerprint() {
		t.Errorf("fingerprint must be stable")
	}
}

func TestRunKeepsCatalogueOrder(t *testing.T) {
	root := parse(t, messyConfig)
	got := rules.Run(rules.Catalogue(), messyConfig, root)

	var order []string
	for _, d := range got {
		if len(order) == 0 || order[len(order)-1] != d.Rule {
			order = append(order, d.Rule)
		}
	}
	want := []string{"no-wildcard-origin", "interaction-attributes", "client-ids", "contact-search", "call-log", "external-script"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("rule order = %v", order)
	}
	for _, d := range got {
		if d.Line < 1 {
			t.Errorf("%s: line %d", d.Message, d.Line)
		}
	}
}

func TestRunSurvivesPanickingRule(t *testing.T) {
	root := parse(t, messyConfig)
	boom := rules.Rule{
		Name: "boom",
		Check: func(string, *ast.Program) []diag.Diagnostic {
			panic("rule bug")
		},
	}
	cat := rules.Catalogue()
	withBoom := append([]rules.Rule{boom}, cat...)

	want := rules.Run(cat, messyConfig, root)
	got := rules.Run(withBoom, messyConfig, root)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("a panicking rule changed the output")
	}
	par := rules.RunParallel(context.Background(), withBoom, messyConfig, root, 2)
	if !reflect.DeepEqual(par, want) {
		t.Errorf("parallel run with a panicking rule differs")
	}
}

func TestRunParallelMatchesRun(t *testing.T) {
	root := parse(t, messyConfig)
	want := rules.Run(rules.Catalogue(), messyConfig, root)
	for _, limit := range []int{0, 1, 3, 16} {
		got := rules.RunParallel(context.Background(), rules.Catalogue(), messyConfig, root, limit)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("limit %d: parallel output differs", limit)
		}
	}
}

func TestRunParallelCancelled(t *testing.T) {
	root := parse(t, messyConfig)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// отменённый контекст: результат может быть неполным, но без паники
	_ = rules.RunParallel(ctx, rules.Catalogue(), messyConfig, root, 1)
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{`"clientIds"`, "clientIds"},
		{`'mypurecloud.com'`, "mypurecloud.com"},
		{`a"b'c`, "abc"},
		{"plain", "plain"},
		// разложенная форма приводится к NFC
		{"cafe\u0301", "caf\u00e9"},
		{"\"e\u0301\"", "\u00e9"},
	}
	for _, tt := range tests {
		if got := rules.NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

var fragments = []string{
	`name: "x"`,
	`settings: { enableCallLogs: true }`,
	`settings: { searchTargets: ["frameworkContacts"] }`,
	`clientIds: { "mypurecloud.com": "a", "mypurecloud.de": "b" }`,
	`customInteractionAttributes: []`,
	`customInteractionAttributes: ["a"]`,
	`script: "https://cdn.example.com/x.js"`,
	`processCallLog: function (a, b, c, onSuccess) { save(a); onSuccess(); }`,
	`contactSearch: function () {}`,
}

func configFrom(parts []int) string {
	var props []string
	for _, p := range parts {
		props = append(props, fragments[p%len(fragments)])
	}
	return "window.parent.postMessage(m, '*');\nwindow.Framework = {\n  config: {\n    " +
		strings.Join(props, ",\n    ") + "\n  }\n};\n"
}

func groupByRule(ds []diag.Diagnostic) map[string][]diag.Diagnostic {
	out := make(map[string][]diag.Diagnostic)
	for _, d := range ds {
		out[d.Rule] = append(out[d.Rule], d)
	}
	return out
}

func TestRun_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60

	properties := gopter.NewProperties(parameters)

	properties.Property("NormalizeKey is idempotent and removes quotes", prop.ForAll(
		func(s string) bool {
			once := rules.NormalizeKey(s)
			return rules.NormalizeKey(once) == once && !strings.ContainsAny(once, `"'`)
		},
		gen.AnyString(),
	))

	properties.Property("running twice gives the same diagnostics", prop.ForAll(
		func(parts []int) bool {
			src := configFrom(parts)
			root := parse(t, src)
			return reflect.DeepEqual(rules.Run(rules.Catalogue(), src, root), rules.Run(rules.Catalogue(), src, root))
		},
		gen.SliceOfN(5, gen.IntRange(0, len(fragments)-1)),
	))

	properties.Property("rule order does not change any rule's output", prop.ForAll(
		func(parts []int, keys []int) bool {
			src := configFrom(parts)
			root := parse(t, src)

			cat := rules.Catalogue()
			perm := make([]int, len(cat))
			for i := range perm {
				perm[i] = i
			}
			slices.SortStableFunc(perm, func(a, b int) int { return keys[a] - keys[b] })
			shuffled := make([]rules.Rule, len(cat))
			for i, p := range perm {
				shuffled[i] = cat[p]
			}

			want := groupByRule(rules.Run(cat, src, root))
			got := groupByRule(rules.Run(shuffled, src, root))
			return reflect.DeepEqual(got, want)
		},
		gen.SliceOfN(4, gen.IntRange(0, len(fragments)-1)),
		gen.SliceOfN(len(rules.Catalogue()), gen.IntRange(0, 100)),
	))

	properties.TestingRun(t)
}
