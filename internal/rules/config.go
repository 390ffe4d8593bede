package rules

import (
	"fmt"

	"fwlint/internal/ast"
	"fwlint/internal/diag"
)

func checkConfigProperties(src string, root *ast.Program) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, cfg := range configObjects(root) {
		keys := keySet(cfg.obj)
		for _, want := range requiredConfigKeys {
			if _, ok := keys[want]; ok {
				continue
			}
			out = append(out, report("config-properties", diag.SevError, diag.RuleMissingConfigProperty, src, cfg.obj,
				fmt.Sprintf("Config should include '%s' property", want), ""))
		}
	}
	return out
}

func checkInteractionAttributes(src string, root *ast.Program) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, cfg := range configObjects(root) {
		prop := lookup(cfg.obj, "customInteractionAttributes")
		arr := arrayValue(prop)
		if arr == nil || arr.Size > 0 {
			continue
		}
		out = append(out, report("interaction-attributes", diag.SevError, diag.RuleEmptyInteractionAttributes, src, prop,
			"config.customInteractionAttributes should not be empty", prop.Text()))
	}
	return out
}

func checkClientIDs(src string, root *ast.Program) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, cfg := range configObjects(root) {
		prop := lookup(cfg.obj, "clientIds")
		ids := objectValue(prop)
		if ids == nil {
			continue
		}
		configured := keySet(ids)
		for _, region := range Regions {
			if _, ok := configured[region]; ok {
				continue
			}
			out = append(out, report("client-ids", diag.SevError, diag.RuleMissingClientID, src, prop,
				"Missing client id for "+region, prop.Text()))
		}
	}
	return out
}

