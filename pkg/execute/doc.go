// Package execute implements the execution wrapper and the dry-run
// counter. Every mutation in dotstrap, external command or filesystem
// call alike, passes through a Runner: preview mode renders and counts
// the operation, real mode performs it and propagates failures.
package execute
