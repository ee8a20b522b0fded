package app

import (
	"context"
	"fmt"

	"github.com/bft-labs/pagemark/internal/domain"
	"github.com/bft-labs/pagemark/internal/ports"
	"github.com/bft-labs/pagemark/pkg/log"
)

// MapBookmarks resolves every bookmark in order and records which page each
// one lands on. The document cursor is restored before MapBookmarks returns.
//
// Resolution moves the single shared cursor, so bookmarks are resolved one at
// a time, strictly in input order. A bookmark that fails to resolve or that
// lands outside the document fails the whole call.
func MapBookmarks(ctx context.Context, doc ports.Document, bookmarks []ports.Bookmark, opts ...Option) (*domain.Mapping, error) {
	if doc == nil {
		return nil, domain.ErrNoActiveDocument
	}
	if len(bookmarks) == 0 {
		return nil, domain.ErrNoBookmarksFound
	}
	o := buildOptions(opts)

	total := doc.PageCount()
	index := make(domain.PageBookmarkIndex)

	o.logger.Info("mapping bookmarks",
		log.Int("pages", total),
		log.Int("bookmarks", len(bookmarks)),
	)

	err := WithCursorRestored(doc, func() error {
		for i, bm := range bookmarks {
			if err := ctx.Err(); err != nil {
				return err
			}
			page, err := resolvePage(doc, bm, total)
			if err != nil {
				return fmt.Errorf("bookmark %d: %w", i, err)
			}
			index.Add(page, bm.Name())
			o.logger.Debug("bookmark resolved",
				log.Int("index", i),
				log.Bookmark(bm.Name()),
				log.Page(page),
			)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("map bookmarks: %w", err)
	}

	m := domain.NewMapping(total, len(bookmarks), index)
	o.logger.Info("bookmarks mapped",
		log.Int("unmapped", len(m.Unmapped)),
		log.Int("duplicates", len(m.Duplicates)),
	)
	return m, nil
}

// resolvePage resolves bm and returns the page the cursor landed on.
func resolvePage(doc ports.Document, bm ports.Bookmark, total int) (int, error) {
	if err := bm.Resolve(); err != nil {
		return 0, fmt.Errorf("resolve %q: %w", bm.Name(), err)
	}
	page := doc.CurrentPage()
	if err := checkPage(page, total); err != nil {
		return 0, fmt.Errorf("bookmark %q: %w", bm.Name(), err)
	}
	return page, nil
}

func checkPage(page, total int) error {
	if page < 0 || page >= total {
		return fmt.Errorf("%w: page %d of %d", domain.ErrPageIndexOutOfRange, page+1, total)
	}
	return nil
}
