package contact

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/portfolio/internal/mail"
)

// SendBothOrFail sends a and b concurrently and waits for both to settle.
// It fails if either send fails, returning the first error. A message that
// did go out is not recalled.
func SendBothOrFail(ctx context.Context, sender mail.Sender, a, b mail.Message) error {
	// No shared cancellation: one failed send does not abort the other.
	var g errgroup.Group
	g.Go(func() error { return send(ctx, sender, a) })
	g.Go(func() error { return send(ctx, sender, b) })
	return g.Wait()
}

func send(ctx context.Context, sender mail.Sender, msg mail.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("send to %s: panic: %v", msg.To, r)
		}
	}()
	if err := sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send to %s: %w", msg.To, err)
	}
	return nil
}
