// Package expression compiles textual predicates and condition trees into
// Row-level operations. Textual predicates use https://github.com/expr-lang/expr,
// and condition trees are maps of the form {"AND": [...]}, {"OR": [...]} or
// {column: {op: operand}}.
package expression
