package app

import (
	"context"
	"fmt"
	"time"

	"github.com/bft-labs/pagemark/internal/domain"
	"github.com/bft-labs/pagemark/internal/ports"
	"github.com/bft-labs/pagemark/pkg/log"
)

// Processor adds one annotation per bookmark to a document after the
// operator has approved a preview.
//
// The workflow moves Idle -> Previewing -> AwaitingConfirmation, then either
// Committing -> Completed or Cancelled. Completed and Cancelled are final; to
// retry, create a new Processor.
//
// A Processor is not safe for concurrent use, and only one Processor may be
// active against a given Document at a time.
type Processor struct {
	doc       ports.Document
	bookmarks []ports.Bookmark
	opts      options

	state      State
	origin     int
	preview    ports.AnnotationHandle
	hasPreview bool
	result     *domain.BatchResult
}

// NewProcessor creates a workflow for the top-level bookmarks of doc.
func NewProcessor(doc ports.Document, opts ...Option) (*Processor, error) {
	if doc == nil {
		return nil, domain.ErrNoActiveDocument
	}
	bookmarks := doc.Bookmarks()
	if len(bookmarks) == 0 {
		return nil, domain.ErrNoBookmarksFound
	}
	return &Processor{
		doc:       doc,
		bookmarks: append([]ports.Bookmark(nil), bookmarks...),
		opts:      buildOptions(opts),
		state:     StateIdle,
	}, nil
}

// State returns the current workflow state.
func (p *Processor) State() State {
	return p.state
}

// Result returns the batch outcome once the workflow is Completed, or nil.
func (p *Processor) Result() *domain.BatchResult {
	return p.result
}

// PreviewHandle returns the provisional annotation while one exists.
func (p *Processor) PreviewHandle() (ports.AnnotationHandle, bool) {
	return p.preview, p.hasPreview
}

// Preview resolves the first bookmark and places a provisional annotation
// with its name on the target page. The cursor is restored before Preview
// returns. If the preview cannot be placed the workflow is Cancelled.
func (p *Processor) Preview(ctx context.Context) error {
	if err := p.transitionTo(StatePreviewing, "preview requested"); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		_ = p.transitionTo(StateCancelled, "context done before preview")
		return fmt.Errorf("preview: %w", err)
	}
	// Commit and Cancel return the cursor here, not to wherever the host
	// left it while the question was open.
	p.origin = p.doc.CurrentPage()

	first := p.bookmarks[0]
	err := WithCursorRestored(p.doc, func() error {
		page, err := resolvePage(p.doc, first, p.doc.PageCount())
		if err != nil {
			return err
		}
		h, err := p.doc.CreateAnnotation(page, first.Name())
		if err != nil {
			return fmt.Errorf("create preview on page %d: %w", page+1, err)
		}
		p.preview, p.hasPreview = h, true
		p.opts.logger.Info("preview annotation placed",
			log.Bookmark(first.Name()),
			log.Page(page),
		)
		return nil
	})
	if err != nil {
		_ = p.transitionTo(StateCancelled, "preview failed")
		return fmt.Errorf("preview: %w", err)
	}

	return p.transitionTo(StateAwaitingConfirmation, "preview ready")
}

// Cancel discards the preview and settles the workflow in Cancelled.
// It is valid before Preview and while awaiting confirmation. If the preview
// cannot be destroyed the workflow stays AwaitingConfirmation and Cancel may
// be retried.
func (p *Processor) Cancel() error {
	if !canTransition(p.state, StateCancelled) {
		return fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, p.state, StateCancelled)
	}
	if p.state == StateIdle {
		return p.transitionTo(StateCancelled, "cancelled before preview")
	}
	if err := withCursorAt(p.doc, p.origin, p.discardPreview); err != nil {
		return fmt.Errorf("cancel: %w", err)
	}
	return p.transitionTo(StateCancelled, "declined")
}

// Commit destroys the preview and annotates the target page of every bookmark,
// in bookmark order. Per-bookmark failures are recorded in the result and never
// stop the pass. Once started, Commit runs to completion; ctx is only checked
// before the pass begins. The cursor ends on the page it was on when Preview
// was called.
func (p *Processor) Commit(ctx context.Context) (*domain.BatchResult, error) {
	if p.state != StateAwaitingConfirmation {
		return nil, fmt.Errorf("%w: commit from %s", domain.ErrInvalidTransition, p.state)
	}
	if err := ctx.Err(); err != nil {
		return nil, p.decline(err)
	}
	// A preview left behind would be an uncounted annotation, so the workflow
	// stays AwaitingConfirmation until it is gone.
	if err := p.discardPreview(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	if err := p.transitionTo(StateCommitting, "confirmed"); err != nil {
		return nil, err
	}

	total := p.doc.PageCount()
	res := &domain.BatchResult{
		Failures:       []domain.ItemFailure{},
		UntouchedPages: []int{},
	}
	touched := make([]bool, total)

	p.opts.logger.Info("annotating bookmarks",
		log.Int("bookmarks", len(p.bookmarks)),
		log.Int("pages", total),
	)

	err := withCursorAt(p.doc, p.origin, func() error {
		for i, bm := range p.bookmarks {
			page, err := p.annotate(bm, total)
			if err != nil {
				res.FailureCount++
				res.Failures = append(res.Failures, domain.ItemFailure{
					BookmarkIndex: i,
					BookmarkName:  bm.Name(),
					ErrorMessage:  err.Error(),
				})
				p.opts.logger.Warn("bookmark annotation failed",
					log.Int("index", i),
					log.Bookmark(bm.Name()),
					log.Err(err),
				)
				continue
			}
			res.SuccessCount++
			touched[page] = true
			p.opts.logger.Debug("bookmark annotated",
				log.Int("index", i),
				log.Bookmark(bm.Name()),
				log.Page(page),
			)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	for page, ok := range touched {
		if !ok {
			res.UntouchedPages = append(res.UntouchedPages, page)
		}
	}
	p.result = res

	p.opts.logger.Info("annotation batch complete",
		log.Int("succeeded", res.SuccessCount),
		log.Int("failed", res.FailureCount),
		log.Int("untouched", len(res.UntouchedPages)),
	)
	if err := p.transitionTo(StateCompleted, "all bookmarks processed"); err != nil {
		return nil, err
	}
	return res, nil
}

// Run drives the whole workflow: preview, wait for the operator, then commit
// or cancel.
//
// The wait has no timeout of its own. It ends when confirmer delivers an
// answer or ctx is done; a done ctx counts as a decline. A decline returns
// an error wrapping domain.ErrUserCancelled. If the preview could not be
// removed, the error also wraps the destroy failure and the workflow stays
// AwaitingConfirmation.
func (p *Processor) Run(ctx context.Context, confirmer ports.Confirmer) (*domain.BatchResult, error) {
	if err := p.Preview(ctx); err != nil {
		return nil, err
	}

	if d := p.opts.previewDelay; d > 0 {
		timer := time.NewTimer(d)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, p.decline(ctx.Err())
		}
	}

	answer := confirmer.Confirm(ctx, p.confirmMessage())
	select {
	case ok, open := <-answer:
		if !open || !ok {
			return nil, p.decline(nil)
		}
		return p.Commit(ctx)
	case <-ctx.Done():
		return nil, p.decline(ctx.Err())
	}
}

func (p *Processor) decline(cause error) error {
	err := domain.ErrUserCancelled
	if cause != nil {
		err = fmt.Errorf("%w: %w", err, cause)
	}
	if cerr := p.Cancel(); cerr != nil {
		p.opts.logger.Error("preview annotation left in document", log.Err(cerr))
		return fmt.Errorf("%w: %w", err, cerr)
	}
	p.opts.logger.Info("annotation batch cancelled")
	return err
}

func (p *Processor) confirmMessage() string {
	return fmt.Sprintf(
		"Check the preview annotation %q.\nAnnotate the pages of all %d bookmarks?",
		p.bookmarks[0].Name(), len(p.bookmarks),
	)
}

// annotate resolves bm and places a persistent annotation carrying its name.
func (p *Processor) annotate(bm ports.Bookmark, total int) (int, error) {
	page, err := resolvePage(p.doc, bm, total)
	if err != nil {
		return 0, err
	}
	if _, err := p.doc.CreateAnnotation(page, bm.Name()); err != nil {
		return 0, fmt.Errorf("page %d: %w", page+1, err)
	}
	return page, nil
}

func (p *Processor) discardPreview() error {
	if !p.hasPreview {
		return nil
	}
	if err := p.doc.DestroyAnnotation(p.preview); err != nil {
		return fmt.Errorf("destroy preview: %w", err)
	}
	p.preview, p.hasPreview = "", false
	return nil
}

// transitionTo moves the workflow to newState or returns ErrInvalidTransition.
func (p *Processor) transitionTo(newState State, reason string) error {
	oldState := p.state
	if !canTransition(oldState, newState) {
		return fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, oldState, newState)
	}
	p.state = newState

	if p.opts.observer != nil {
		p.opts.observer.OnStateChange(oldState, newState, reason)
	}
	p.opts.logger.Debug("state transition",
		log.String("from", oldState.String()),
		log.String("to", newState.String()),
		log.String("reason", reason),
	)
	return nil
}
