package domain

// ItemFailure records one bookmark that could not be annotated.
type ItemFailure struct {
	// BookmarkIndex is the zero-based position of the bookmark in the input.
	BookmarkIndex int `json:"bookmarkIndex"`

	BookmarkName string `json:"bookmarkName"`
	ErrorMessage string `json:"errorMessage"`
}

// BatchResult aggregates the outcome of an annotation commit pass.
type BatchResult struct {
	SuccessCount int
	FailureCount int

	// Failures holds one record per failed bookmark, in bookmark order.
	Failures []ItemFailure

	// UntouchedPages lists zero-based pages that received no persistent
	// annotation during the pass, ascending.
	UntouchedPages []int
}

// PageFailure records one page that could not be cleaned.
type PageFailure struct {
	// Page is the zero-based page index.
	Page         int    `json:"page"`
	ErrorMessage string `json:"errorMessage"`
}

// CleanResult aggregates the outcome of an annotation cleaning pass.
type CleanResult struct {
	TotalPages int `json:"totalPages"`

	// Removed is the number of annotations destroyed across all pages.
	Removed int `json:"removed"`

	FailedPages []PageFailure `json:"failedPages"`
}
