package order

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/onlineshop/lib/mycontext"
	"github.com/MarcGrol/onlineshop/lib/myhttp"
	"github.com/MarcGrol/onlineshop/lib/mylog"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

func NewWebService(repo Repository) *webService {
	logger := mylog.New("order")
	return &webService{
		logger:  logger,
		service: newService(repo, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/order/{orderUID}", s.getOrder()).Methods("GET")

	return nil
}

func (s *webService) getOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		sessionUID, _ := myhttp.RequestSessionUID(r)
		orderUID := mux.Vars(r)["orderUID"]

		order, err := s.service.getOrder(c, sessionUID, orderUID)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		writer.Write(c, w, http.StatusOK, order)
	}
}
