// Package pdfdoc builds in-memory documents from the page count, top-level
// outline and existing annotations of a PDF file.
//
// The PDF is only read. Annotations created or removed on the returned
// document live in memory and are never written back to the file.
package pdfdoc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/bft-labs/pagemark/internal/adapters/memdoc"
	"github.com/bft-labs/pagemark/pkg/log"
)

// Load opens the PDF at path and returns a document with its pages,
// top-level bookmarks and annotations.
func Load(path string, logger log.Logger) (*memdoc.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Read(f, filepath.Base(path), logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Read builds a document from the PDF in rs.
func Read(rs io.ReadSeeker, name string, logger log.Logger) (*memdoc.Document, error) {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pageCount, err := api.PageCount(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("page count: %w", err)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	bookmarks, err := api.Bookmarks(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("read outline: %w", err)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	annots, err := api.Annotations(rs, nil, conf)
	if err != nil {
		return nil, fmt.Errorf("read annotations: %w", err)
	}

	doc := memdoc.New(name, pageCount)
	if err := seedAnnotations(doc, annotationTexts(annots)); err != nil {
		return nil, err
	}
	addBookmarks(doc, bookmarks, logger)
	return doc, nil
}

// annotationTexts flattens pdfcpu's per-page annotation maps into texts by
// 1-based page, in object number order.
func annotationTexts(pages map[int]model.PgAnnots) map[int][]string {
	out := make(map[int][]string, len(pages))
	for page, byType := range pages {
		type entry struct {
			objNr int
			text  string
		}
		var entries []entry
		for _, annot := range byType {
			for objNr, r := range annot.Map {
				entries = append(entries, entry{objNr, r.ContentString()})
			}
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].objNr < entries[j].objNr })
		for _, e := range entries {
			out[page] = append(out[page], e.text)
		}
	}
	return out
}

// seedAnnotations creates one annotation per text, pages ascending.
func seedAnnotations(doc *memdoc.Document, byPage map[int][]string) error {
	pages := make([]int, 0, len(byPage))
	for p := range byPage {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	for _, p := range pages {
		for _, text := range byPage[p] {
			if _, err := doc.CreateAnnotation(p-1, text); err != nil {
				return fmt.Errorf("annotation on page %d: %w", p, err)
			}
		}
	}
	return nil
}

// addBookmarks adds the top-level outline entries. pdfcpu numbers pages from
// 1 and reports 0 for a destination it could not resolve; such entries are
// kept so the mapping pass reports them, and logged here by name.
func addBookmarks(doc *memdoc.Document, bookmarks []pdfcpu.Bookmark, logger log.Logger) {
	for _, bm := range bookmarks {
		if bm.PageFrom < 1 || bm.PageFrom > doc.PageCount() {
			logger.Warn("bookmark destination is not a page of the document",
				log.Bookmark(bm.Title),
				log.Int("target", bm.PageFrom),
				log.Int("pages", doc.PageCount()),
			)
		}
		doc.AddBookmark(bm.Title, bm.PageFrom-1)
	}
}
