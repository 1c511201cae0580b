// Package types holds the small shared interfaces used across dotstrap
// packages, kept separate to avoid import cycles.
package types
