package notify

import "context"

// Sender is the messaging-channel capability the lifecycle manager and the
// sweeper depend on. Implementations own their connection lifecycle; the
// callers only ever see this contract.
type Sender interface {
	Send(ctx context.Context, recipient, message string) error
	IsReady() bool
}
