package memdoc

import (
	"errors"
	"testing"

	"github.com/bft-labs/pagemark/internal/domain"
)

func TestDocument_CreateAndDestroy(t *testing.T) {
	doc := New("a.pdf", 3)

	h1, err := doc.CreateAnnotation(1, "first")
	if err != nil {
		t.Fatalf("CreateAnnotation() error = %v", err)
	}
	h2, err := doc.CreateAnnotation(1, "second")
	if err != nil {
		t.Fatalf("CreateAnnotation() error = %v", err)
	}
	if h1 == h2 {
		t.Fatalf("handles are not unique: %s", h1)
	}

	handles, err := doc.Annotations(1)
	if err != nil {
		t.Fatalf("Annotations() error = %v", err)
	}
	if len(handles) != 2 || handles[0] != h1 || handles[1] != h2 {
		t.Errorf("Annotations(1) = %v, want [%s %s]", handles, h1, h2)
	}

	if err := doc.DestroyAnnotation(h1); err != nil {
		t.Fatalf("DestroyAnnotation() error = %v", err)
	}
	if doc.HasAnnotation(h1) {
		t.Error("destroyed annotation still present")
	}
	if got := doc.PageAnnotations(1); len(got) != 1 || got[0].Text != "second" {
		t.Errorf("PageAnnotations(1) = %+v", got)
	}
	if err := doc.DestroyAnnotation(h1); err == nil {
		t.Error("destroying an unknown handle: expected error")
	}
	if doc.AnnotationCount() != 1 {
		t.Errorf("AnnotationCount() = %d, want 1", doc.AnnotationCount())
	}
}

func TestDocument_PageRange(t *testing.T) {
	doc := New("a.pdf", 2)

	for _, page := range []int{-1, 2} {
		if _, err := doc.CreateAnnotation(page, "x"); !errors.Is(err, domain.ErrPageIndexOutOfRange) {
			t.Errorf("CreateAnnotation(%d) error = %v, want ErrPageIndexOutOfRange", page, err)
		}
		if _, err := doc.Annotations(page); !errors.Is(err, domain.ErrPageIndexOutOfRange) {
			t.Errorf("Annotations(%d) error = %v, want ErrPageIndexOutOfRange", page, err)
		}
	}
}

func TestDocument_LockAndSeal(t *testing.T) {
	doc := New("a.pdf", 2)
	h, err := doc.CreateAnnotation(0, "kept")
	if err != nil {
		t.Fatal(err)
	}

	doc.LockPage(0)
	if _, err := doc.CreateAnnotation(0, "refused"); !errors.Is(err, domain.ErrAnnotationCreationFailed) {
		t.Errorf("CreateAnnotation on locked page error = %v, want ErrAnnotationCreationFailed", err)
	}
	if _, err := doc.CreateAnnotation(1, "fine"); err != nil {
		t.Errorf("CreateAnnotation on unlocked page error = %v", err)
	}

	doc.SealPage(0)
	if err := doc.DestroyAnnotation(h); err == nil {
		t.Error("DestroyAnnotation on sealed page: expected error")
	}
	if !doc.HasAnnotation(h) {
		t.Error("annotation on sealed page was removed")
	}
}

func TestBookmark_Resolve(t *testing.T) {
	doc := New("a.pdf", 5)
	good := doc.AddBookmark("Intro", 3)
	boom := errors.New("dangling destination")
	bad := doc.AddBookmark("Broken", 1).FailWith(boom)

	if err := good.Resolve(); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if doc.CurrentPage() != 3 {
		t.Errorf("CurrentPage() = %d, want 3", doc.CurrentPage())
	}
	if good.Resolved() != 1 {
		t.Errorf("Resolved() = %d, want 1", good.Resolved())
	}

	if err := bad.Resolve(); !errors.Is(err, boom) {
		t.Errorf("Resolve() error = %v, want %v", err, boom)
	}
	if doc.CurrentPage() != 3 {
		t.Errorf("failed Resolve moved the cursor to %d", doc.CurrentPage())
	}

	bms := doc.Bookmarks()
	if len(bms) != 2 || bms[0].Name() != "Intro" || bms[1].Name() != "Broken" {
		t.Errorf("Bookmarks() order wrong: %v", bms)
	}
}
