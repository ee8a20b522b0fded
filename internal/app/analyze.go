package app

import (
	"context"
	"errors"

	"github.com/bft-labs/pagemark/internal/domain"
	"github.com/bft-labs/pagemark/internal/ports"
)

// Analyze maps the bookmarks of doc and returns a report without a batch
// section.
func Analyze(ctx context.Context, doc ports.Document, opts ...Option) (domain.Report, error) {
	if doc == nil {
		return domain.Report{}, domain.ErrNoActiveDocument
	}
	m, err := MapBookmarks(ctx, doc, doc.Bookmarks(), opts...)
	if err != nil {
		return domain.Report{}, err
	}
	return domain.NewReport(m, nil), nil
}

// AddBookmarkFooters maps the bookmarks of doc, then runs the preview and
// commit workflow. When the operator declines, the report carries no batch
// section and the error is nil, unless the preview could not be removed.
func AddBookmarkFooters(ctx context.Context, doc ports.Document, confirmer ports.Confirmer, opts ...Option) (domain.Report, error) {
	if doc == nil {
		return domain.Report{}, domain.ErrNoActiveDocument
	}
	m, err := MapBookmarks(ctx, doc, doc.Bookmarks(), opts...)
	if err != nil {
		return domain.Report{}, err
	}

	p, err := NewProcessor(doc, opts...)
	if err != nil {
		return domain.Report{}, err
	}
	res, err := p.Run(ctx, confirmer)
	if errors.Is(err, domain.ErrUserCancelled) && p.State() == StateCancelled {
		return domain.NewReport(m, nil), nil
	}
	if err != nil {
		return domain.Report{}, err
	}
	return domain.NewReport(m, res), nil
}
