// Package parser enforces the size and nesting limits a JWT header or
// payload must satisfy before (and while) it is decoded into JSON,
// denying base64/JSON amplification attacks (spec.md §4.1's rationale: an
// 8 KiB token can inflate well past that once nested JSON is considered).
//
// encoding/json has no built-in per-string, per-array, or max-depth
// limits, so this package walks the token stream once to enforce them
// before handing the same bytes to json.Unmarshal for the real decode —
// there is no ecosystem JSON library in this project's dependency set
// that exposes those limits directly, so this one piece is hand-rolled
// on top of encoding/json (see DESIGN.md).
package parser
