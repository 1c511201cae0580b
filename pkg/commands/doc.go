// Package commands contains the top-level orchestration invoked by
// the CLI: lock acquisition, runner construction and the per-link
// deployment loop. The CLI layer itself holds no state logic.
package commands
