package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/MarcGrol/onlineshop/lib/myerrors"
	"github.com/MarcGrol/onlineshop/lib/mylog"
)

type service struct {
	catalog Catalog
	logger  mylog.Logger
}

func newService(catalog Catalog, logger mylog.Logger) *service {
	return &service{
		catalog: catalog,
		logger:  logger,
	}
}

func (s *service) listProducts(c context.Context) ([]Product, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "List products")

	products, err := s.catalog.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}
	return products, nil
}

func (s *service) getProduct(c context.Context, productID int64) (Product, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Get product %d", productID)

	product, found, err := s.catalog.Get(c, productID)
	if err != nil {
		return Product{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Product{}, myerrors.NewNotFoundError(fmt.Errorf("product %d: %w", productID, ErrProductNotFound))
	}
	return product, nil
}

func (s *service) putProduct(c context.Context, product Product) error {
	s.logger.Log(c, "", mylog.SeverityInfo, "Put product %d (%s)", product.ID, product.Name)

	err := product.Validate()
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	err = s.catalog.Put(c, product)
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	return nil
}

func (s *service) deleteProduct(c context.Context, productID int64) error {
	s.logger.Log(c, "", mylog.SeverityInfo, "Delete product %d", productID)

	err := s.catalog.Delete(c, productID)
	if errors.Is(err, ErrProductInUse) {
		return myerrors.NewConflictError(err)
	}
	if errors.Is(err, ErrProductNotFound) {
		return myerrors.NewNotFoundError(err)
	}
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	return nil
}
