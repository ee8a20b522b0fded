package ports

// AnnotationHandle identifies an annotation created on a Document.
type AnnotationHandle string

// Document is the host's open PDF document.
//
// A Document has a single navigation cursor. Callers must not run more than
// one workflow against the same Document at a time; implementations are not
// required to be safe for concurrent use.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// CurrentPage returns the zero-based index of the cursor.
	CurrentPage() int

	// SetCurrentPage moves the cursor.
	SetCurrentPage(page int)

	// Bookmarks returns the top-level bookmarks in document order.
	Bookmarks() []Bookmark

	// CreateAnnotation adds an annotation carrying text to page.
	// Implementations return an error wrapping domain.ErrAnnotationCreationFailed
	// when the host refuses the annotation.
	CreateAnnotation(page int, text string) (AnnotationHandle, error)

	// DestroyAnnotation removes an annotation created earlier.
	DestroyAnnotation(h AnnotationHandle) error

	// Annotations returns the annotations on page, oldest first.
	Annotations(page int) ([]AnnotationHandle, error)
}

// Bookmark is a named navigation shortcut.
type Bookmark interface {
	// Name returns the bookmark title.
	Name() string

	// Resolve moves the owning document's cursor to the bookmark target.
	Resolve() error
}
