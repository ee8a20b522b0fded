package domain

import "errors"

// Domain errors represent error conditions in the pagemark domain.
// They are returned wrapped and can be checked with errors.Is.
var (
	// ErrNoActiveDocument is returned when an operation is invoked without a document.
	ErrNoActiveDocument = errors.New("pagemark: no active document")

	// ErrNoBookmarksFound is returned when the document has no top-level bookmarks.
	ErrNoBookmarksFound = errors.New("pagemark: no bookmarks found")

	// ErrPageIndexOutOfRange is returned when a page index falls outside [0, PageCount).
	ErrPageIndexOutOfRange = errors.New("pagemark: page index out of range")

	// ErrAnnotationCreationFailed is returned by documents that refuse to create an annotation.
	ErrAnnotationCreationFailed = errors.New("pagemark: annotation creation failed")

	// ErrUserCancelled is returned when the operator declines a confirmation.
	// It marks a clean terminal state, not a failure.
	ErrUserCancelled = errors.New("pagemark: cancelled by user")

	// ErrInvalidTransition is returned when a workflow method is called in the wrong state.
	ErrInvalidTransition = errors.New("pagemark: invalid workflow transition")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("pagemark: invalid configuration")
)
