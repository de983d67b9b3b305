package mmslab

import "github.com/webbmaffian/go-slab/slab"

const (
	ErrReadOnly    = slab.Error("slab is opened read-only")
	ErrPointerType = slab.Error("type must not contain pointers")
	ErrLayout      = slab.Error("file does not match the slab layout")
)
