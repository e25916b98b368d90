package catalog

import "context"

// Catalog resolves products by id.
type Catalog interface {
	Get(c context.Context, productID int64) (Product, bool, error)
	ExistsAll(c context.Context, productIDs []int64) (bool, error)
	List(c context.Context) ([]Product, error)
	Put(c context.Context, product Product) error
	Delete(c context.Context, productID int64) error
}
