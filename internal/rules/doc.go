// Package rules holds the rule catalogue run over a parsed integration file.
//
// Every rule is a pure function of the source text and the syntax tree. A rule
// that meets a shape it does not expect (a variable where a literal was
// expected, a missing branch) reports nothing; only a concrete violation
// produces a diagnostic. Rules never share state, so the aggregator may run
// them in any order or in parallel and still return catalogue order.
package rules
