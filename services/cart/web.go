package cart

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/onlineshop/lib/mycontext"
	"github.com/MarcGrol/onlineshop/lib/myhttp"
	"github.com/MarcGrol/onlineshop/lib/mylog"
	"github.com/MarcGrol/onlineshop/lib/myuuid"
	"github.com/MarcGrol/onlineshop/services/catalog"
)

type webService struct {
	logger     mylog.Logger
	service    *Service
	uuider     myuuid.UUIDer
	sessionTTL time.Duration
}

func NewWebService(service *Service, uuider myuuid.UUIDer, sessionTTL time.Duration) *webService {
	return &webService{
		logger:     mylog.New("cart"),
		service:    service,
		uuider:     uuider,
		sessionTTL: sessionTTL,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/cart", s.listCart()).Methods("GET")
	router.HandleFunc("/api/cart/{productID}", s.mutateCart(s.service.Add)).Methods("POST")
	router.HandleFunc("/api/cart/{productID}/decrement", s.mutateCart(s.service.Decrement)).Methods("POST")
	router.HandleFunc("/api/cart/{productID}", s.mutateCart(s.service.Remove)).Methods("DELETE")

	router.HandleFunc("/api/favorites", s.listFavorites()).Methods("GET")
	router.HandleFunc("/api/favorites/{productID}", s.mutateFavorites(s.service.AddFavorite)).Methods("POST")
	router.HandleFunc("/api/favorites/{productID}", s.mutateFavorites(s.service.RemoveFavorite)).Methods("DELETE")

	return nil
}

func (s *webService) listCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		sessionUID := myhttp.SessionUID(w, r, s.uuider, s.sessionTTL)

		summary, err := s.service.List(c, sessionUID)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		writer.Write(c, w, http.StatusOK, summary)
	}
}

type cartMutation func(c context.Context, sessionUID string, productID int64) (Summary, error)

func (s *webService) mutateCart(mutate cartMutation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		productID, err := catalog.ProductIDFromRequest(r)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		sessionUID := myhttp.SessionUID(w, r, s.uuider, s.sessionTTL)

		summary, err := mutate(c, sessionUID, productID)
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusOK, summary)
	}
}

func (s *webService) listFavorites() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		sessionUID := myhttp.SessionUID(w, r, s.uuider, s.sessionTTL)

		favorites, err := s.service.ListFavorites(c, sessionUID)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		writer.Write(c, w, http.StatusOK, favorites)
	}
}

type favoritesMutation func(c context.Context, sessionUID string, productID int64) ([]catalog.Product, error)

func (s *webService) mutateFavorites(mutate favoritesMutation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		productID, err := catalog.ProductIDFromRequest(r)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		sessionUID := myhttp.SessionUID(w, r, s.uuider, s.sessionTTL)

		favorites, err := mutate(c, sessionUID, productID)
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusOK, favorites)
	}
}
