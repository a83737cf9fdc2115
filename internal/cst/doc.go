// Package cst defines the concrete syntax tree produced by the parser.
//
// Nodes carry a string type tag, their byte span, row/column positions, the ordered
// child list (punctuation and keywords included as unnamed leaves) and an optional
// field name under which the parent refers to them. A Tree owns all of its nodes;
// Parent links are non-owning back references.
package cst
