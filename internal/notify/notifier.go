package notify

import "context"

// Notifier is the chat transport boundary. MaxMessageLen is the
// transport's payload cap; the dispatcher splits against it.
type Notifier interface {
	Send(ctx context.Context, text string) error
	MaxMessageLen() int
}
