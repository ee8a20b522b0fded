package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Report is the result surface of a full run. Page numbers are 1-based;
// BookmarkIndex inside failures stays zero-based.
type Report struct {
	TotalPages     int              `json:"totalPages"`
	BookmarkCount  int              `json:"bookmarkCount"`
	UnmappedPages  []int            `json:"unmappedPages"`
	DuplicatePages map[int][]string `json:"duplicatePages"`

	// Batch is nil when the batch step did not run or was cancelled.
	Batch *BatchReport `json:"batch"`
}

// BatchReport is the display form of a BatchResult.
type BatchReport struct {
	SuccessCount   int           `json:"successCount"`
	FailureCount   int           `json:"failureCount"`
	Failures       []ItemFailure `json:"failures"`
	UntouchedPages []int         `json:"untouchedPages"`
}

// NewReport converts a mapping and an optional batch result into a Report.
func NewReport(m *Mapping, batch *BatchResult) Report {
	r := Report{
		TotalPages:     m.TotalPages,
		BookmarkCount:  m.BookmarkCount,
		UnmappedPages:  oneBased(m.Unmapped),
		DuplicatePages: make(map[int][]string, len(m.Duplicates)),
	}
	for _, g := range m.Duplicates {
		r.DuplicatePages[g.Page+1] = append([]string(nil), g.Names...)
	}
	if batch != nil {
		failures := make([]ItemFailure, len(batch.Failures))
		copy(failures, batch.Failures)
		r.Batch = &BatchReport{
			SuccessCount:   batch.SuccessCount,
			FailureCount:   batch.FailureCount,
			Failures:       failures,
			UntouchedPages: oneBased(batch.UntouchedPages),
		}
	}
	return r
}

// Text renders the report as an operator summary.
func (r Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total pages: %d\n", r.TotalPages)
	fmt.Fprintf(&b, "Bookmarks: %d\n", r.BookmarkCount)
	fmt.Fprintf(&b, "Pages without bookmarks: %d\n", len(r.UnmappedPages))
	fmt.Fprintf(&b, "Pages with several bookmarks: %d\n", len(r.DuplicatePages))

	if len(r.UnmappedPages) > 0 {
		fmt.Fprintf(&b, "\nPages without bookmarks: %s\n", joinInts(r.UnmappedPages))
	}

	if len(r.DuplicatePages) > 0 {
		b.WriteString("\nPages with several bookmarks:\n")
		for _, page := range sortedKeys(r.DuplicatePages) {
			names := r.DuplicatePages[page]
			fmt.Fprintf(&b, "Page %d (%d bookmarks):\n", page, len(names))
			for _, name := range names {
				fmt.Fprintf(&b, "- %s\n", name)
			}
		}
	}

	if r.Batch != nil {
		fmt.Fprintf(&b, "\nAnnotations added: %d\n", r.Batch.SuccessCount)
		fmt.Fprintf(&b, "Failed bookmarks: %d\n", r.Batch.FailureCount)
		if len(r.Batch.UntouchedPages) > 0 {
			fmt.Fprintf(&b, "Untouched pages: %s\n", joinInts(r.Batch.UntouchedPages))
		} else {
			b.WriteString("All pages were annotated.\n")
		}
		for _, f := range r.Batch.Failures {
			fmt.Fprintf(&b, "#%d %s: %s\n", f.BookmarkIndex+1, f.BookmarkName, f.ErrorMessage)
		}
	}
	return b.String()
}

// Text renders the cleaning outcome as an operator summary.
func (r *CleanResult) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total pages: %d\n", r.TotalPages)
	fmt.Fprintf(&b, "Annotations removed: %d\n", r.Removed)
	if len(r.FailedPages) > 0 {
		pages := make([]int, len(r.FailedPages))
		for i, f := range r.FailedPages {
			pages[i] = f.Page + 1
		}
		fmt.Fprintf(&b, "Failed pages: %d\n", len(r.FailedPages))
		fmt.Fprintf(&b, "Failed page numbers: %s\n", joinInts(pages))
	}
	return b.String()
}

func oneBased(pages []int) []int {
	out := make([]int, len(pages))
	for i, p := range pages {
		out[i] = p + 1
	}
	return out
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ", ")
}

func sortedKeys(m map[int][]string) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
