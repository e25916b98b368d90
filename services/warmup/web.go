package warmup

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/onlineshop/lib/mycontext"
	"github.com/MarcGrol/onlineshop/lib/myerrors"
	"github.com/MarcGrol/onlineshop/lib/myhttp"
	"github.com/MarcGrol/onlineshop/lib/mylog"
)

type Pinger interface {
	Ping(c context.Context) error
}

type webService struct {
	logger mylog.Logger
	db     Pinger
}

func NewWebService(db Pinger) *webService {
	return &webService{
		logger: mylog.New("warmup"),
		db:     db,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")

	return nil
}

// warmupPage opens a database connection before the first shopper arrives.
func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		err := s.db.Ping(c)
		if err != nil {
			writer.WriteError(c, w, 1, myerrors.NewUnavailableError(err))
			return
		}

		writer.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed warmup request",
		})
	}
}
