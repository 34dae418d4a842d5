package internal

import (
	"errors"
	"fmt"
)

// ErrNoFolderOpen is returned by operations that need an open working folder.
var ErrNoFolderOpen = errors.New("no folder open")

// EmptyFolderError reports a folder with no supported image files.
type EmptyFolderError struct {
	Dir string
}

func (e *EmptyFolderError) Error() string {
	return fmt.Sprintf("no image files found in %s", e.Dir)
}

// IndexOutOfRangeError reports a navigation or pair index outside bounds.
type IndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range [0,%d)", e.Index, e.Count)
}

// EmptyFieldError reports a blank question or answer at commit time.
type EmptyFieldError struct {
	Field string // "question" or "answer"
}

func (e *EmptyFieldError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}

// DecodeError reports an unreadable or corrupt image file.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a failure reading or writing the annotation file.
type PersistenceError struct {
	Op   string // "read", "parse", "write"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
