// Package ledger maintains the flat-file record of symlinks dotstrap
// has created, plus reverse discovery of repo-owned links on disk.
package ledger
