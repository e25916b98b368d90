package checkout

import (
	"context"

	"github.com/MarcGrol/onlineshop/lib/mylog"
	"github.com/MarcGrol/onlineshop/lib/mytime"
	"github.com/MarcGrol/onlineshop/lib/myuuid"
	"github.com/MarcGrol/onlineshop/services/cart"
	"github.com/MarcGrol/onlineshop/services/catalog"
	"github.com/MarcGrol/onlineshop/services/notify"
	"github.com/MarcGrol/onlineshop/services/order"
)

// CartSource gives access to the cart of a session.
type CartSource interface {
	Load(c context.Context, sessionUID string) (*cart.Cart, error)
	Clear(c context.Context, sessionUID string) error
}

type Service struct {
	carts    CartSource
	catalog  catalog.Catalog
	orders   order.Repository
	notifier notify.Notifier
	policy   Policy
	nower    mytime.Nower
	uuider   myuuid.UUIDer
	logger   mylog.Logger
}

func NewService(carts CartSource, catalog catalog.Catalog, orders order.Repository, notifier notify.Notifier, policy Policy, nower mytime.Nower, uuider myuuid.UUIDer) *Service {
	return &Service{
		carts:    carts,
		catalog:  catalog,
		orders:   orders,
		notifier: notifier,
		policy:   policy,
		nower:    nower,
		uuider:   uuider,
		logger:   mylog.New("checkout"),
	}
}
