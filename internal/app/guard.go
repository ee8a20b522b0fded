package app

import (
	"github.com/bft-labs/pagemark/internal/domain"
	"github.com/bft-labs/pagemark/internal/ports"
)

// WithCursorRestored runs fn and then moves doc's cursor back to the page it
// was on before the call. Restoration happens when fn returns, fails or
// panics; fn's error is returned unchanged and a panic keeps propagating.
func WithCursorRestored(doc ports.Document, fn func() error) error {
	if doc == nil {
		return domain.ErrNoActiveDocument
	}
	return withCursorAt(doc, doc.CurrentPage(), fn)
}

// withCursorAt runs fn and leaves doc's cursor on page however fn exits.
func withCursorAt(doc ports.Document, page int, fn func() error) error {
	defer doc.SetCurrentPage(page)
	return fn()
}
