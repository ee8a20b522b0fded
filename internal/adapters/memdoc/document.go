// Package memdoc provides an in-memory implementation of ports.Document.
//
// It is the host document used by the CLI (populated from a fixture or a
// PDF outline) and by tests. Pages can be locked to make annotation creation
// fail, and sealed to make annotation removal fail.
package memdoc

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bft-labs/pagemark/internal/domain"
	"github.com/bft-labs/pagemark/internal/ports"
)

// Annotation is an annotation stored on a page.
type Annotation struct {
	Handle ports.AnnotationHandle
	Page   int
	Text   string
}

// Document is an in-memory PDF document. It is not safe for concurrent use.
type Document struct {
	name      string
	pageCount int
	current   int
	bookmarks []*Bookmark

	annots map[int][]Annotation
	pageOf map[ports.AnnotationHandle]int

	locked map[int]bool
	sealed map[int]bool
}

// New creates a document with pageCount empty pages and the cursor on page 0.
func New(name string, pageCount int) *Document {
	return &Document{
		name:      name,
		pageCount: pageCount,
		annots:    make(map[int][]Annotation),
		pageOf:    make(map[ports.AnnotationHandle]int),
		locked:    make(map[int]bool),
		sealed:    make(map[int]bool),
	}
}

// Name returns the document name.
func (d *Document) Name() string {
	return d.name
}

// AddBookmark appends a top-level bookmark that navigates to target.
// target is not validated, so broken bookmarks can be modelled.
func (d *Document) AddBookmark(name string, target int) *Bookmark {
	bm := &Bookmark{doc: d, name: name, target: target}
	d.bookmarks = append(d.bookmarks, bm)
	return bm
}

// LockPage makes annotation creation on page fail.
func (d *Document) LockPage(page int) {
	d.locked[page] = true
}

// SealPage makes annotation removal on page fail.
func (d *Document) SealPage(page int) {
	d.sealed[page] = true
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.pageCount
}

// CurrentPage returns the cursor position.
func (d *Document) CurrentPage() int {
	return d.current
}

// SetCurrentPage moves the cursor.
func (d *Document) SetCurrentPage(page int) {
	d.current = page
}

// Bookmarks returns the top-level bookmarks in insertion order.
func (d *Document) Bookmarks() []ports.Bookmark {
	out := make([]ports.Bookmark, len(d.bookmarks))
	for i, bm := range d.bookmarks {
		out[i] = bm
	}
	return out
}

// CreateAnnotation adds an annotation with text to page.
func (d *Document) CreateAnnotation(page int, text string) (ports.AnnotationHandle, error) {
	if page < 0 || page >= d.pageCount {
		return "", fmt.Errorf("%w: page %d of %d", domain.ErrPageIndexOutOfRange, page+1, d.pageCount)
	}
	if d.locked[page] {
		return "", fmt.Errorf("%w: page %d is locked", domain.ErrAnnotationCreationFailed, page+1)
	}
	h := ports.AnnotationHandle(uuid.New().String())
	d.annots[page] = append(d.annots[page], Annotation{Handle: h, Page: page, Text: text})
	d.pageOf[h] = page
	return h, nil
}

// DestroyAnnotation removes the annotation identified by h.
func (d *Document) DestroyAnnotation(h ports.AnnotationHandle) error {
	page, ok := d.pageOf[h]
	if !ok {
		return fmt.Errorf("memdoc: unknown annotation %s", h)
	}
	if d.sealed[page] {
		return fmt.Errorf("memdoc: page %d is sealed", page+1)
	}
	list := d.annots[page]
	for i, a := range list {
		if a.Handle == h {
			d.annots[page] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	delete(d.pageOf, h)
	return nil
}

// Annotations returns the handles on page, oldest first.
func (d *Document) Annotations(page int) ([]ports.AnnotationHandle, error) {
	if page < 0 || page >= d.pageCount {
		return nil, fmt.Errorf("%w: page %d of %d", domain.ErrPageIndexOutOfRange, page+1, d.pageCount)
	}
	out := make([]ports.AnnotationHandle, len(d.annots[page]))
	for i, a := range d.annots[page] {
		out[i] = a.Handle
	}
	return out, nil
}

// PageAnnotations returns copies of the annotations stored on page.
func (d *Document) PageAnnotations(page int) []Annotation {
	return append([]Annotation(nil), d.annots[page]...)
}

// HasAnnotation reports whether h still exists.
func (d *Document) HasAnnotation(h ports.AnnotationHandle) bool {
	_, ok := d.pageOf[h]
	return ok
}

// AnnotationCount returns the number of annotations across all pages.
func (d *Document) AnnotationCount() int {
	return len(d.pageOf)
}

// Bookmark is a top-level bookmark of a Document.
type Bookmark struct {
	doc      *Document
	name     string
	target   int
	err      error
	resolved int
}

// Name returns the bookmark title.
func (b *Bookmark) Name() string {
	return b.name
}

// Target returns the page the bookmark navigates to.
func (b *Bookmark) Target() int {
	return b.target
}

// FailWith makes every later Resolve return err without moving the cursor.
func (b *Bookmark) FailWith(err error) *Bookmark {
	b.err = err
	return b
}

// Resolved returns how many times Resolve succeeded.
func (b *Bookmark) Resolved() int {
	return b.resolved
}

// Resolve moves the document cursor to the bookmark target.
func (b *Bookmark) Resolve() error {
	if b.err != nil {
		return b.err
	}
	b.doc.current = b.target
	b.resolved++
	return nil
}
