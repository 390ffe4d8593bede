package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 16 << 10
)

// snippets cover the shapes the rules look at, plus some broken ones.
var snippets = []string{
	"",
	"window.Framework = {};",
	"window.Framework = { config: {} };",
	`window.Framework = { config: { name: "a", settings: { searchTargets: ["frameworkContacts"] }, clientIds: {}, customInteractionAttributes: [] }, contactSearch(v, onSuccess) {} };`,
	`window.Framework = { config: { settings: { enableCallLogs: true } }, processCallLog: function (a, b, c, onSuccess, onFailure) { onSuccess({}); } };`,
	`window.parent.postMessage(JSON.stringify(msg), "*");`,
	`load("https://cdn.example.com/x.js");`,
	`window.Framework = { config: { ...base, "clientIds": { ["mypurecloud.com"]: id } } };`,
	"window.Framework = {",
	"window.Framework = { config: { name: } };",
	"`${a}.js`",
	"var = ;",
	"\ufeffvar x = 1;\r\n",
	"({ get a() { return 1 }, set a(v) {}, async *g() {} })",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range snippets {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds добавляет все *.js из testdata пакетов
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..")
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".js" || filepath.Base(filepath.Dir(path)) != "testdata" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
