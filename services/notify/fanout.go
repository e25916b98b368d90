package notify

import (
	"context"
)

type Fanout struct {
	notifiers []Notifier
}

func NewFanout(notifiers ...Notifier) *Fanout {
	return &Fanout{
		notifiers: notifiers,
	}
}

// Send tries every notifier and returns the first error.
func (f *Fanout) Send(c context.Context, text string) error {
	var firstErr error
	for _, n := range f.notifiers {
		err := n.Send(c, text)
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
