package utils

import (
	"errors"
	"fmt"
)

type Category string

const (
	CategoryNetwork    Category = "NETWORK"    // connection or transfer failure
	CategoryFilesystem Category = "FILESYSTEM" // path creation or write failure
	CategoryArchive    Category = "ARCHIVE"    // invalid or unreadable archive
)

var (
	ErrNetwork    = errors.New("network error")
	ErrFilesystem = errors.New("filesystem error")
	ErrArchive    = errors.New("archive error")
)

// FetchError carries the category of a pipeline failure and the resource it concerns.
// errors.Is matches it against the sentinel of its category.
type FetchError struct {
	Category Category
	Resource string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Category, e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	switch e.Category {
	case CategoryNetwork:
		return target == ErrNetwork
	case CategoryFilesystem:
		return target == ErrFilesystem
	case CategoryArchive:
		return target == ErrArchive
	}
	return false
}

func NewNetworkError(resource string, err error) *FetchError {
	return &FetchError{Category: CategoryNetwork, Resource: resource, Err: err}
}

func NewFilesystemError(resource string, err error) *FetchError {
	return &FetchError{Category: CategoryFilesystem, Resource: resource, Err: err}
}

func NewArchiveError(resource string, err error) *FetchError {
	return &FetchError{Category: CategoryArchive, Resource: resource, Err: err}
}
