// Package lock implements the session-wide mutual-exclusion lock that
// serializes dotstrap runs. Atomic directory creation is the mutex
// primitive; liveness of a previous holder is approximated by
// signaling its stored pid.
package lock
