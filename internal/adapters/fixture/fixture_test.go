package fixture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bft-labs/pagemark/internal/domain"
)

const handbook = `
name = "handbook.pdf"
pages = 4
current_page = 3
locked_pages = [2]
sealed_pages = [4]

[[bookmarks]]
name = "Intro"
page = 1

[[bookmarks]]
name = "Usage"
page = 2

[[annotations]]
page = 2
text = "draft"
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handbook.toml")
	if err := os.WriteFile(path, []byte(handbook), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if doc.Name() != "handbook.pdf" {
		t.Errorf("Name() = %q, want handbook.pdf", doc.Name())
	}
	if doc.PageCount() != 4 {
		t.Errorf("PageCount() = %d, want 4", doc.PageCount())
	}
	if doc.CurrentPage() != 2 {
		t.Errorf("CurrentPage() = %d, want 2 (0-based)", doc.CurrentPage())
	}

	bms := doc.Bookmarks()
	if len(bms) != 2 {
		t.Fatalf("Bookmarks() len = %d, want 2", len(bms))
	}
	if err := bms[1].Resolve(); err != nil {
		t.Fatal(err)
	}
	if doc.CurrentPage() != 1 {
		t.Errorf("Usage resolves to %d, want 1", doc.CurrentPage())
	}

	// The seeded annotation lives on the locked page.
	if got := doc.PageAnnotations(1); len(got) != 1 || got[0].Text != "draft" {
		t.Errorf("PageAnnotations(1) = %+v", got)
	}
	if _, err := doc.CreateAnnotation(1, "new"); !errors.Is(err, domain.ErrAnnotationCreationFailed) {
		t.Errorf("locked page accepted annotation: %v", err)
	}

	h, err := doc.CreateAnnotation(3, "stuck")
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.DestroyAnnotation(h); err == nil {
		t.Error("sealed page allowed removal")
	}
}

func TestLoad_DefaultsNameToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.toml")
	if err := os.WriteFile(path, []byte("pages = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Name() != "bare.toml" {
		t.Errorf("Name() = %q, want bare.toml", doc.Name())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "invalid toml", input: "pages = ["},
		{name: "negative pages", input: "pages = -2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.input)); err == nil {
				t.Error("Parse() expected error")
			}
		})
	}
}

func TestBuild_AnnotationOutOfRange(t *testing.T) {
	f := File{Pages: 1, Annotations: []Annotation{{Page: 5, Text: "x"}}}
	if _, err := f.Build(); !errors.Is(err, domain.ErrPageIndexOutOfRange) {
		t.Errorf("Build() error = %v, want ErrPageIndexOutOfRange", err)
	}
}
