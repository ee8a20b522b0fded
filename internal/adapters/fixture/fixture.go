// Package fixture loads document descriptions from TOML files into memdoc
// documents.
//
// A fixture looks like:
//
//	name = "handbook.pdf"
//	pages = 10
//	current_page = 4      # 1-based, optional
//	locked_pages = [3]    # 1-based pages that refuse annotations
//
//	[[bookmarks]]
//	name = "Introduction"
//	page = 1              # 1-based target page
//
//	[[annotations]]
//	page = 2
//	text = "draft"
//
// Page numbers are 1-based, as printed in a viewer.
package fixture

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bft-labs/pagemark/internal/adapters/memdoc"
)

// File mirrors the TOML layout of a fixture.
type File struct {
	Name        string       `toml:"name"`
	Pages       int          `toml:"pages"`
	CurrentPage int          `toml:"current_page"`
	LockedPages []int        `toml:"locked_pages"`
	SealedPages []int        `toml:"sealed_pages"`
	Bookmarks   []Bookmark   `toml:"bookmarks"`
	Annotations []Annotation `toml:"annotations"`
}

// Bookmark is a fixture bookmark entry.
type Bookmark struct {
	Name string `toml:"name"`
	Page int    `toml:"page"`
}

// Annotation is a pre-existing annotation entry.
type Annotation struct {
	Page int    `toml:"page"`
	Text string `toml:"text"`
}

// Parse decodes fixture TOML.
func Parse(b []byte) (File, error) {
	var f File
	if err := toml.Unmarshal(b, &f); err != nil {
		return f, fmt.Errorf("parse fixture: %w", err)
	}
	if f.Pages < 0 {
		return f, fmt.Errorf("parse fixture: negative page count %d", f.Pages)
	}
	return f, nil
}

// Load reads the fixture at path and builds the document it describes.
func Load(path string) (*memdoc.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if f.Name == "" {
		f.Name = filepath.Base(path)
	}
	return f.Build()
}

// Build creates the memdoc document described by f.
func (f File) Build() (*memdoc.Document, error) {
	doc := memdoc.New(f.Name, f.Pages)
	for _, a := range f.Annotations {
		if _, err := doc.CreateAnnotation(a.Page-1, a.Text); err != nil {
			return nil, fmt.Errorf("fixture annotation: %w", err)
		}
	}
	// Locks apply after seeding so locked pages may still carry annotations.
	for _, p := range f.LockedPages {
		doc.LockPage(p - 1)
	}
	for _, p := range f.SealedPages {
		doc.SealPage(p - 1)
	}
	for _, bm := range f.Bookmarks {
		doc.AddBookmark(bm.Name, bm.Page-1)
	}
	if f.CurrentPage > 0 {
		doc.SetCurrentPage(f.CurrentPage - 1)
	}
	return doc, nil
}
