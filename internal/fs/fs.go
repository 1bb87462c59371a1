// Package fs provides the filesystem boundary for jsonkit.
//
// The main types are:
//   - [FS]: interface for the filesystem operations batch I/O needs
//   - [Real]: production implementation using the [os] package
//   - [Injected]: testing implementation with per-method fault hooks
//
// Batch orchestrators treat every failure from this boundary uniformly
// (not found, permission denied, invalid path) as an item failure, so the
// interface is deliberately small: whole-file reads, atomic whole-file
// writes, and directory enumeration.
package fs

import "os"

// FS defines the filesystem operations used by jsonkit.
//
// Two implementations are provided:
//   - [Real]: production use, wraps the [os] package
//   - [Injected]: testing use, overrides individual methods
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data to a file atomically.
	// Uses a temp file + rename so a crash never leaves a partial write.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// ReadDir reads a directory and returns its entries sorted by name.
	// See [os.ReadDir].
	ReadDir(path string) ([]os.DirEntry, error)

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	MkdirAll(path string, perm os.FileMode) error

	// Stat returns file info. See [os.Stat].
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)

	// Remove deletes a file or empty directory. See [os.Remove].
	Remove(path string) error
}
