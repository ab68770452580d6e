// Package hostfs exposes the native filesystem as a billy.Filesystem that
// accepts absolute paths.
package hostfs

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// FS is the native filesystem rooted at "/".
type FS struct {
	osfs.ChrootOS
}

// New returns the native filesystem.
//
//nolint:ireturn // callers depend on billy.Filesystem, not this type.
func New() billy.Filesystem {
	return &FS{}
}

// Chroot returns a filesystem rooted at path.
//
//nolint:ireturn // signature is dictated by billy.Chroot.
func (f *FS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

// Root returns "/".
func (f *FS) Root() string {
	return "/"
}
