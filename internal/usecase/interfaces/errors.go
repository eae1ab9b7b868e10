package interfaces

import "errors"

// ErrAlreadyExists is returned by repositories when a conditional create
// finds the key taken.
var ErrAlreadyExists = errors.New("item already exists")
