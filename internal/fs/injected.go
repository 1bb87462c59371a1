package fs

import "os"

// Injected implements [FS] with per-method function hooks.
//
// Any nil hook falls through to the Base filesystem (or [Real] if Base is
// nil). Tests use it to fail specific paths in a batch and assert that
// sibling items are unaffected.
type Injected struct {
	Base FS

	ReadFileFn        func(path string) ([]byte, error)
	WriteFileAtomicFn func(path string, data []byte, perm os.FileMode) error
	ReadDirFn         func(path string) ([]os.DirEntry, error)
	MkdirAllFn        func(path string, perm os.FileMode) error
	StatFn            func(path string) (os.FileInfo, error)
	ExistsFn          func(path string) (bool, error)
	RemoveFn          func(path string) error
}

func (i *Injected) base() FS {
	if i.Base != nil {
		return i.Base
	}

	return NewReal()
}

func (i *Injected) ReadFile(path string) ([]byte, error) {
	if i.ReadFileFn != nil {
		return i.ReadFileFn(path)
	}

	return i.base().ReadFile(path)
}

func (i *Injected) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if i.WriteFileAtomicFn != nil {
		return i.WriteFileAtomicFn(path, data, perm)
	}

	return i.base().WriteFileAtomic(path, data, perm)
}

func (i *Injected) ReadDir(path string) ([]os.DirEntry, error) {
	if i.ReadDirFn != nil {
		return i.ReadDirFn(path)
	}

	return i.base().ReadDir(path)
}

func (i *Injected) MkdirAll(path string, perm os.FileMode) error {
	if i.MkdirAllFn != nil {
		return i.MkdirAllFn(path, perm)
	}

	return i.base().MkdirAll(path, perm)
}

func (i *Injected) Stat(path string) (os.FileInfo, error) {
	if i.StatFn != nil {
		return i.StatFn(path)
	}

	return i.base().Stat(path)
}

func (i *Injected) Exists(path string) (bool, error) {
	if i.ExistsFn != nil {
		return i.ExistsFn(path)
	}

	return i.base().Exists(path)
}

func (i *Injected) Remove(path string) error {
	if i.RemoveFn != nil {
		return i.RemoveFn(path)
	}

	return i.base().Remove(path)
}

// Compile-time interface check.
var _ FS = (*Injected)(nil)
