// Package pagemark finds pages without bookmarks or with several bookmarks in
// an open PDF document, and annotates bookmarked pages in a preview then
// commit batch.
//
// The host supplies the document and the operator prompt:
//
//	rep, err := pagemark.Analyze(ctx, doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(rep.Text())
//
//	rep, err = pagemark.AddBookmarkFooters(ctx, doc, confirmer,
//	    pagemark.WithLogger(logger))
//
// Only one workflow may run against a document at a time.
package pagemark

import (
	"context"

	"github.com/bft-labs/pagemark/internal/app"
	"github.com/bft-labs/pagemark/internal/domain"
	"github.com/bft-labs/pagemark/internal/ports"
)

// Document is the host's open PDF document.
type Document = ports.Document

// Bookmark is a named, side-effecting navigation shortcut.
type Bookmark = ports.Bookmark

// AnnotationHandle identifies an annotation created on a Document.
type AnnotationHandle = ports.AnnotationHandle

// Confirmer asks the operator a yes/no question asynchronously.
type Confirmer = ports.Confirmer

// Report is the result surface of a full run.
type Report = domain.Report

// Mapping is the bookmark to page correspondence of one document.
type Mapping = domain.Mapping

// BatchResult aggregates the outcome of an annotation commit pass.
type BatchResult = domain.BatchResult

// CleanResult aggregates the outcome of an annotation cleaning pass.
type CleanResult = domain.CleanResult

// Processor is the preview then commit annotation workflow.
type Processor = app.Processor

// Option configures optional behavior.
type Option = app.Option

// Re-exported options.
var (
	WithLogger        = app.WithLogger
	WithPreviewDelay  = app.WithPreviewDelay
	WithStateObserver = app.WithStateObserver
)

// Re-exported errors, for use with errors.Is.
var (
	ErrNoActiveDocument         = domain.ErrNoActiveDocument
	ErrNoBookmarksFound         = domain.ErrNoBookmarksFound
	ErrPageIndexOutOfRange      = domain.ErrPageIndexOutOfRange
	ErrAnnotationCreationFailed = domain.ErrAnnotationCreationFailed
	ErrUserCancelled            = domain.ErrUserCancelled
	ErrInvalidTransition        = domain.ErrInvalidTransition
)

// WithCursorRestored runs fn and restores doc's cursor afterwards.
func WithCursorRestored(doc Document, fn func() error) error {
	return app.WithCursorRestored(doc, fn)
}

// MapBookmarks resolves bookmarks in order and derives unmapped and duplicate pages.
func MapBookmarks(ctx context.Context, doc Document, bookmarks []Bookmark, opts ...Option) (*Mapping, error) {
	return app.MapBookmarks(ctx, doc, bookmarks, opts...)
}

// NewProcessor creates an annotation workflow for the bookmarks of doc.
func NewProcessor(doc Document, opts ...Option) (*Processor, error) {
	return app.NewProcessor(doc, opts...)
}

// Analyze maps the bookmarks of doc and returns a report without a batch section.
func Analyze(ctx context.Context, doc Document, opts ...Option) (Report, error) {
	return app.Analyze(ctx, doc, opts...)
}

// AddBookmarkFooters maps doc and runs the annotation workflow.
func AddBookmarkFooters(ctx context.Context, doc Document, confirmer Confirmer, opts ...Option) (Report, error) {
	return app.AddBookmarkFooters(ctx, doc, confirmer, opts...)
}

// CleanAnnotations removes every annotation of doc after confirmation.
func CleanAnnotations(ctx context.Context, doc Document, confirmer Confirmer, opts ...Option) (*CleanResult, error) {
	return app.CleanAnnotations(ctx, doc, confirmer, opts...)
}
