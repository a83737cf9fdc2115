// Package sema is the semantic analyzer. It runs four passes over a parsed
// document and returns diagnostics together with the user function catalog and
// the scope tree:
//
//   - pass 0 scans the raw text for `name(...) =>` to recover definitions the
//     parser broke into error nodes;
//   - pass 1 harvests user functions, types, imports and global declarations;
//   - pass 2 walks the tree with a scope stack and validates conditions,
//     assignments, calls and member access;
//   - pass 3 scans the raw text for unused global `var` declarations.
//
// Types are plain strings (see package types), and every heuristic prefers
// silence over a false positive.
package sema
