package reference

import "errors"

var (
	// ErrWalkFailed indicates traversal of a module source directory failed.
	ErrWalkFailed = errors.New("module source walk failed")

	// ErrInvalidRelativePath indicates a source file could not be expressed relative to its module root.
	ErrInvalidRelativePath = errors.New("invalid relative path calculation")

	// ErrStubWriteFailed indicates opening or writing a staged stub document failed.
	ErrStubWriteFailed = errors.New("stub write failed")

	// ErrNavigationFailed indicates a navigation entry could not be registered.
	ErrNavigationFailed = errors.New("navigation registration failed")

	// ErrSummaryWriteFailed indicates writing SUMMARY.md failed.
	ErrSummaryWriteFailed = errors.New("summary write failed")
)
