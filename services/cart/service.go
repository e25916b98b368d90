package cart

import (
	"context"
	"fmt"

	"github.com/MarcGrol/onlineshop/lib/myerrors"
	"github.com/MarcGrol/onlineshop/lib/mylog"
	"github.com/MarcGrol/onlineshop/lib/mytime"
	"github.com/MarcGrol/onlineshop/services/catalog"
)

// Service owns the session scoped cart and favorites. Every mutation
// reads the session, changes it and writes it back. Concurrent mutations
// of the same session are last-write-wins.
type Service struct {
	sessions SessionStore
	catalog  catalog.Catalog
	nower    mytime.Nower
	logger   mylog.Logger
}

func NewService(sessions SessionStore, catalog catalog.Catalog, nower mytime.Nower) *Service {
	return &Service{
		sessions: sessions,
		catalog:  catalog,
		nower:    nower,
		logger:   mylog.New("cart"),
	}
}

func (s *Service) Add(c context.Context, sessionUID string, productID int64) (Summary, error) {
	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Add product %d to cart", productID)

	product, err := s.lookupProduct(c, productID)
	if err != nil {
		return Summary{}, err
	}

	session, err := s.load(c, sessionUID)
	if err != nil {
		return Summary{}, err
	}

	session.Cart.Add(product.ID, product.Price, product.Name)

	err = s.save(c, session)
	if err != nil {
		return Summary{}, err
	}

	return Summarize(session.Cart), nil
}

// Remove is a no-op for products that are not in the cart.
func (s *Service) Remove(c context.Context, sessionUID string, productID int64) (Summary, error) {
	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Remove product %d from cart", productID)

	session, err := s.load(c, sessionUID)
	if err != nil {
		return Summary{}, err
	}

	if _, exists := session.Cart.Get(productID); exists {
		session.Cart.Remove(productID)
		err = s.save(c, session)
		if err != nil {
			return Summary{}, err
		}
	}

	return Summarize(session.Cart), nil
}

func (s *Service) Decrement(c context.Context, sessionUID string, productID int64) (Summary, error) {
	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Decrement product %d in cart", productID)

	session, err := s.load(c, sessionUID)
	if err != nil {
		return Summary{}, err
	}

	if _, exists := session.Cart.Get(productID); exists {
		session.Cart.Decrement(productID)
		err = s.save(c, session)
		if err != nil {
			return Summary{}, err
		}
	}

	return Summarize(session.Cart), nil
}

func (s *Service) List(c context.Context, sessionUID string) (Summary, error) {
	s.logger.Log(c, sessionUID, mylog.SeverityDebug, "List cart")

	cart, err := s.Load(c, sessionUID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(cart), nil
}

// Load returns the cart of the session without changing it.
func (s *Service) Load(c context.Context, sessionUID string) (*Cart, error) {
	session, err := s.load(c, sessionUID)
	if err != nil {
		return nil, err
	}
	return session.Cart, nil
}

// Clear empties the cart and keeps the favorites.
func (s *Service) Clear(c context.Context, sessionUID string) error {
	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Clear cart")

	session, err := s.load(c, sessionUID)
	if err != nil {
		return err
	}

	session.Cart.Clear()

	return s.save(c, session)
}

func (s *Service) AddFavorite(c context.Context, sessionUID string, productID int64) ([]catalog.Product, error) {
	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Add product %d to favorites", productID)

	_, err := s.lookupProduct(c, productID)
	if err != nil {
		return nil, err
	}

	session, err := s.load(c, sessionUID)
	if err != nil {
		return nil, err
	}

	if !session.Favorites[productID] {
		session.Favorites[productID] = true
		err = s.save(c, session)
		if err != nil {
			return nil, err
		}
	}

	return s.resolveFavorites(c, session)
}

func (s *Service) RemoveFavorite(c context.Context, sessionUID string, productID int64) ([]catalog.Product, error) {
	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Remove product %d from favorites", productID)

	session, err := s.load(c, sessionUID)
	if err != nil {
		return nil, err
	}

	if session.Favorites[productID] {
		delete(session.Favorites, productID)
		err = s.save(c, session)
		if err != nil {
			return nil, err
		}
	}

	return s.resolveFavorites(c, session)
}

func (s *Service) ListFavorites(c context.Context, sessionUID string) ([]catalog.Product, error) {
	s.logger.Log(c, sessionUID, mylog.SeverityDebug, "List favorites")

	session, err := s.load(c, sessionUID)
	if err != nil {
		return nil, err
	}

	return s.resolveFavorites(c, session)
}

// resolveFavorites skips products that were removed from the catalog.
func (s *Service) resolveFavorites(c context.Context, session Session) ([]catalog.Product, error) {
	products := []catalog.Product{}
	for _, id := range session.FavoriteIDs() {
		product, found, err := s.catalog.Get(c, id)
		if err != nil {
			return nil, myerrors.NewInternalError(err)
		}
		if found {
			products = append(products, product)
		}
	}
	return products, nil
}

func (s *Service) lookupProduct(c context.Context, productID int64) (catalog.Product, error) {
	product, found, err := s.catalog.Get(c, productID)
	if err != nil {
		return catalog.Product{}, myerrors.NewInternalError(err)
	}
	if !found {
		return catalog.Product{}, myerrors.NewNotFoundError(fmt.Errorf("product %d: %w", productID, ErrProductNotFound))
	}
	return product, nil
}

func (s *Service) load(c context.Context, sessionUID string) (Session, error) {
	session, err := s.sessions.Load(c, sessionUID)
	if err != nil {
		return Session{}, myerrors.NewInternalError(err)
	}
	return session, nil
}

func (s *Service) save(c context.Context, session Session) error {
	session.LastModified = s.nower.Now()
	err := s.sessions.Save(c, session)
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	return nil
}
