package repositories

import "errors"

// ErrNotFound is wrapped by repositories when a lookup has no match
var ErrNotFound = errors.New("not found")

// ErrDuplicate is wrapped by repositories when a name is already taken
var ErrDuplicate = errors.New("duplicate")
