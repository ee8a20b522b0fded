package app

import (
	"context"
	"fmt"

	"github.com/bft-labs/pagemark/internal/domain"
	"github.com/bft-labs/pagemark/internal/ports"
	"github.com/bft-labs/pagemark/pkg/log"
)

const cleanMessage = "This removes every annotation in the document, including " +
	"watermarks, typewriter text, headers and footers.\n" +
	"It cannot be undone. Continue?"

// CleanAnnotations asks the operator for confirmation and then destroys every
// annotation on every page, newest first. A page that fails is recorded and
// the remaining pages are still cleaned. A decline returns an error wrapping
// domain.ErrUserCancelled and leaves the document untouched.
func CleanAnnotations(ctx context.Context, doc ports.Document, confirmer ports.Confirmer, opts ...Option) (*domain.CleanResult, error) {
	if doc == nil {
		return nil, domain.ErrNoActiveDocument
	}
	o := buildOptions(opts)

	select {
	case ok, open := <-confirmer.Confirm(ctx, cleanMessage):
		if !open || !ok {
			o.logger.Info("annotation cleaning cancelled")
			return nil, domain.ErrUserCancelled
		}
	case <-ctx.Done():
		o.logger.Info("annotation cleaning cancelled", log.Err(ctx.Err()))
		return nil, fmt.Errorf("%w: %w", domain.ErrUserCancelled, ctx.Err())
	}

	total := doc.PageCount()
	res := &domain.CleanResult{
		TotalPages:  total,
		FailedPages: []domain.PageFailure{},
	}

	err := WithCursorRestored(doc, func() error {
		for page := 0; page < total; page++ {
			n, err := cleanPage(doc, page)
			res.Removed += n
			if err != nil {
				res.FailedPages = append(res.FailedPages, domain.PageFailure{
					Page:         page,
					ErrorMessage: err.Error(),
				})
				o.logger.Warn("page cleaning failed", log.Page(page), log.Err(err))
				continue
			}
			o.logger.Debug("page cleaned", log.Page(page), log.Int("removed", n))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("clean annotations: %w", err)
	}

	o.logger.Info("annotation cleaning complete",
		log.Int("pages", total),
		log.Int("removed", res.Removed),
		log.Int("failed", len(res.FailedPages)),
	)
	return res, nil
}

// cleanPage destroys the annotations of page and returns how many it removed
// before the first failure.
func cleanPage(doc ports.Document, page int) (int, error) {
	handles, err := doc.Annotations(page)
	if err != nil {
		return 0, fmt.Errorf("list annotations: %w", err)
	}
	removed := 0
	for i := len(handles) - 1; i >= 0; i-- {
		if err := doc.DestroyAnnotation(handles[i]); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
