package order

import "context"

//go:generate mockgen -source=api.go -package order -destination repository_mock.go Repository
type Repository interface {
	// CreateAtomic stores the header and all lines in one transaction.
	CreateAtomic(c context.Context, order Order) (Order, error)
	Get(c context.Context, orderUID string) (Order, bool, error)
}
