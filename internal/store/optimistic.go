package store

import "context"

// command is the optimistic update protocol shared by the cart and compare
// stores: capture a pre-mutation snapshot, apply the local mutation
// synchronously, then mirror to the server. A failed mirror restores the
// captured snapshot, not whatever state is current at failure time.
type command[S any] struct {
	snapshot func() S
	apply    func()
	restore  func(S)
	call     func(context.Context) error // nil when unauthenticated
}

func (c command[S]) run(ctx context.Context) error {
	snap := c.snapshot()
	c.apply()
	if c.call == nil {
		return nil
	}
	if err := c.call(ctx); err != nil {
		c.restore(snap)
		return err
	}
	return nil
}
