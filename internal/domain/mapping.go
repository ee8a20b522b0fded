package domain

import "sort"

// PageBookmarkIndex maps a zero-based page index to the names of the
// bookmarks that resolved to it, in resolution order.
type PageBookmarkIndex map[int][]string

// Add appends name to the list of page. Equal names are kept.
func (idx PageBookmarkIndex) Add(page int, name string) {
	idx[page] = append(idx[page], name)
}

// Pages returns the mapped page indices in ascending order.
func (idx PageBookmarkIndex) Pages() []int {
	pages := make([]int, 0, len(idx))
	for p := range idx {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}

// DuplicateGroup is a page reached by more than one bookmark.
type DuplicateGroup struct {
	// Page is the zero-based page index.
	Page int

	// Names holds every bookmark name that resolved to Page, in resolution
	// order. Repeated names are not collapsed.
	Names []string
}

// Mapping is the bookmark to page correspondence of one document.
type Mapping struct {
	// TotalPages is the page count of the document at mapping time.
	TotalPages int

	// BookmarkCount is the number of bookmarks that were resolved.
	BookmarkCount int

	// Index maps pages to bookmark names.
	Index PageBookmarkIndex

	// Duplicates lists pages with more than one bookmark, by page index.
	Duplicates []DuplicateGroup

	// Unmapped lists pages no bookmark resolved to, ascending.
	Unmapped []int
}

// NewMapping derives the duplicate and unmapped page sets from index.
// Every key of index must lie in [0, totalPages).
func NewMapping(totalPages, bookmarkCount int, index PageBookmarkIndex) *Mapping {
	m := &Mapping{
		TotalPages:    totalPages,
		BookmarkCount: bookmarkCount,
		Index:         index,
		Duplicates:    []DuplicateGroup{},
		Unmapped:      []int{},
	}
	for _, p := range index.Pages() {
		names := index[p]
		if len(names) > 1 {
			m.Duplicates = append(m.Duplicates, DuplicateGroup{
				Page:  p,
				Names: append([]string(nil), names...),
			})
		}
	}
	for p := 0; p < totalPages; p++ {
		if _, ok := index[p]; !ok {
			m.Unmapped = append(m.Unmapped, p)
		}
	}
	return m
}
