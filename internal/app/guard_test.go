package app

import (
	"errors"
	"testing"

	"github.com/bft-labs/pagemark/internal/adapters/memdoc"
	"github.com/bft-labs/pagemark/internal/domain"
)

func TestWithCursorRestored(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name    string
		fn      func(doc *memdoc.Document) error
		wantErr error
	}{
		{
			name: "success",
			fn: func(doc *memdoc.Document) error {
				doc.SetCurrentPage(1)
				return nil
			},
		},
		{
			name: "error is passed through",
			fn: func(doc *memdoc.Document) error {
				doc.SetCurrentPage(2)
				return errBoom
			},
			wantErr: errBoom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDoc(5)
			doc.SetCurrentPage(3)

			err := WithCursorRestored(doc, func() error { return tt.fn(doc) })
			if err != tt.wantErr {
				t.Errorf("WithCursorRestored() error = %v, want %v", err, tt.wantErr)
			}
			if got := doc.CurrentPage(); got != 3 {
				t.Errorf("CurrentPage() = %d after call, want 3", got)
			}
		})
	}
}

func TestWithCursorRestored_Panic(t *testing.T) {
	doc := newDoc(5)
	doc.SetCurrentPage(4)

	defer func() {
		if r := recover(); r != "resolve exploded" {
			t.Fatalf("recover() = %v, want the original panic", r)
		}
		if got := doc.CurrentPage(); got != 4 {
			t.Errorf("CurrentPage() = %d after panic, want 4", got)
		}
	}()

	_ = WithCursorRestored(doc, func() error {
		doc.SetCurrentPage(0)
		panic("resolve exploded")
	})
}

func TestWithCursorRestored_NilDocument(t *testing.T) {
	called := false
	err := WithCursorRestored(nil, func() error {
		called = true
		return nil
	})
	if !errors.Is(err, domain.ErrNoActiveDocument) {
		t.Errorf("error = %v, want ErrNoActiveDocument", err)
	}
	if called {
		t.Error("operation ran without a document")
	}
}
