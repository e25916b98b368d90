package notify

import "context"

//go:generate mockgen -source=api.go -package notify -destination notifier_mock.go Notifier
type Notifier interface {
	Send(c context.Context, text string) error
}
