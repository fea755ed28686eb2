// Package app contains the core application logic. It resolves the layered
// configuration (flags, build file, defaults), wires the compiler and runs
// the build pass, decoupled from the CLI entrypoint.
package app
