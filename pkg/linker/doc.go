// Package linker is the symlink state manager: it decides whether a
// destination needs to change, performs changes through the execution
// wrapper, backs up displaced content and records links in the ledger.
package linker
