// Package thing implements the front end and tree-walking evaluator of a
// small statement-oriented scripting language:
//   - Variable declarations via `let name = expr;` (the initializer defaults to nil).
//   - Blocks `{ ... }` that introduce a lexical scope.
//   - `if expr stmt else stmt` with the usual dangling-else binding.
//   - Number, bool and nil values; arithmetic (+, -, *, /, %, **), comparison
//     (<, >, <=, >=), equality (==, !=) and logic (and, or, not).
//   - Assignment `name = expr`, right-associative and of the lowest precedence.
//   - Function declarations `func name(a, b) { ... }`, which are parsed and
//     recorded but cannot yet be called.
//
// Source flows through a Scanner, a precedence-climbing Parser and an
// Interpreter that evaluates the resulting Script against an Env scope chain.
// Print renders a Script back to canonical source.
// Scanning, parsing and evaluation report *ScanError, *ParseError and
// *RuntimeError values respectively; none of them panic on malformed input.
package thing
