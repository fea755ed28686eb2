// Package compiler wraps the external shader compiler. It builds the command
// line for one shader, runs it with the compiler's own stdio passed through,
// and classifies the outcome: a missing or non-executable compiler is an
// environment failure (ErrNotFound, ErrNotExecutable), a non-zero exit is a
// per-shader *CompileError.
package compiler
