// Package diag defines the diagnostic model shared by the parser, the rule
// catalogue and the renderers.
//
// # Purpose
//
//   - Provide deterministic, serialisable records that capture findings
//     produced by the parser and by rules.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting beyond the stable short form,
// IO, or CLI integration. Rendering lives in internal/diagfmt; orchestration
// lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Rule – catalogue name of the rule that produced it (empty for parser/IO).
//   - Message – human oriented text; keep it short and actionable.
//   - Line – 1-based line of the offending node.
//   - Content – raw source text of the offending node, possibly empty.
//   - Primary – the source.Span of the offending node.
//   - Notes – optional secondary spans/messages for additional context.
//
// Diagnostics are values: they are created once, appended to a Bag and never
// mutated afterwards.
package diag
