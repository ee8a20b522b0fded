package ports

import "context"

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	// Confirm presents message and returns a channel that delivers the
	// answer once. A closed channel without a value counts as a decline.
	// Confirm itself must not block; the answer may never arrive.
	Confirm(ctx context.Context, message string) <-chan bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, message string) <-chan bool

// Confirm calls f(ctx, message).
func (f ConfirmerFunc) Confirm(ctx context.Context, message string) <-chan bool {
	return f(ctx, message)
}
