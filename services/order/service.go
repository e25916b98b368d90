package order

import (
	"context"
	"fmt"

	"github.com/MarcGrol/onlineshop/lib/myerrors"
	"github.com/MarcGrol/onlineshop/lib/mylog"
)

type service struct {
	repo   Repository
	logger mylog.Logger
}

func newService(repo Repository, logger mylog.Logger) *service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// getOrder only reveals an order to the session that placed it. Any other
// caller gets the same answer as for an order that does not exist.
func (s *service) getOrder(c context.Context, sessionUID string, orderUID string) (Order, error) {
	s.logger.Log(c, orderUID, mylog.SeverityInfo, "Fetch details of order uid %s", orderUID)

	notFound := myerrors.NewNotFoundError(fmt.Errorf("order with uid %s not found", orderUID))
	if sessionUID == "" {
		return Order{}, notFound
	}

	order, found, err := s.repo.Get(c, orderUID)
	if err != nil {
		return Order{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Order{}, notFound
	}
	if order.SessionUID != sessionUID {
		s.logger.Log(c, orderUID, mylog.SeverityWarn, "Order %s requested by another session", orderUID)
		return Order{}, notFound
	}
	return order, nil
}
