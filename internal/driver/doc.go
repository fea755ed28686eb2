// Package driver implements the shader build pass: list the input directory,
// and for every entry in it run the compiler once, writing
// <output_dir>/<entry>.spv.
//
// The pass is sequential and unconditional. A compiler failure on one entry
// is recorded and the pass moves on; only environment failures (unreadable
// input directory, missing or non-executable compiler, cancelled context)
// stop it. The output directory is never created.
package driver
