package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/bft-labs/pagemark/internal/adapters/memdoc"
	"github.com/bft-labs/pagemark/internal/domain"
	"github.com/bft-labs/pagemark/internal/ports"
)

// newDoc creates a document whose bookmarks bm-0, bm-1, ... target the given pages.
func newDoc(pages int, targets ...int) *memdoc.Document {
	doc := memdoc.New("test.pdf", pages)
	for i, t := range targets {
		doc.AddBookmark(fmt.Sprintf("bm-%d", i), t)
	}
	return doc
}

// failingDoc refuses annotations whose text is listed in failOn.
type failingDoc struct {
	*memdoc.Document
	failOn map[string]bool
}

func (d *failingDoc) CreateAnnotation(page int, text string) (ports.AnnotationHandle, error) {
	if d.failOn[text] {
		return "", fmt.Errorf("%w: injected for %s", domain.ErrAnnotationCreationFailed, text)
	}
	return d.Document.CreateAnnotation(page, text)
}

// recordingObserver tracks state change events for testing.
type recordingObserver struct {
	mu     sync.Mutex
	events []stateChangeEvent
}

type stateChangeEvent struct {
	previous State
	current  State
}

func (r *recordingObserver) OnStateChange(previous, current State, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, stateChangeEvent{previous, current})
}

func (r *recordingObserver) Events() []stateChangeEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]stateChangeEvent{}, r.events...)
}

// answer returns a confirmer that delivers ok once.
func answer(ok bool) ports.Confirmer {
	return ports.ConfirmerFunc(func(ctx context.Context, message string) <-chan bool {
		ch := make(chan bool, 1)
		ch <- ok
		return ch
	})
}

// silent returns a confirmer whose answer never arrives.
func silent() ports.Confirmer {
	return ports.ConfirmerFunc(func(ctx context.Context, message string) <-chan bool {
		return make(chan bool)
	})
}
