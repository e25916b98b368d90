package checkout

import (
	"context"
	"net/http"
	"time"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/onlineshop/lib/mycontext"
	"github.com/MarcGrol/onlineshop/lib/myerrors"
	"github.com/MarcGrol/onlineshop/lib/myhttp"
	"github.com/MarcGrol/onlineshop/lib/mylog"
	"github.com/MarcGrol/onlineshop/lib/myratelimit"
	"github.com/MarcGrol/onlineshop/lib/myuuid"
)

type webService struct {
	logger     mylog.Logger
	service    *Service
	uuider     myuuid.UUIDer
	sessionTTL time.Duration
	limiter    *myratelimit.Limiter
}

// NewWebService exposes preview and submission. Submission is throttled by
// limiter when one is given.
func NewWebService(service *Service, uuider myuuid.UUIDer, sessionTTL time.Duration, limiter *myratelimit.Limiter) *webService {
	return &webService{
		logger:     mylog.New("checkout"),
		service:    service,
		uuider:     uuider,
		sessionTTL: sessionTTL,
		limiter:    limiter,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/checkout/preview", s.preview()).Methods("POST")

	var submit http.Handler = s.submit()
	if s.limiter != nil {
		submit = s.limiter.Middleware(submit)
	}
	router.Handle("/api/checkout", submit).Methods("POST")

	return nil
}

func (s *webService) preview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		req := PreviewRequest{}
		err := decodeForm(r, &req)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		sessionUID := myhttp.SessionUID(w, r, s.uuider, s.sessionTTL)

		quote, err := s.service.Preview(c, sessionUID, req)
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusOK, quote)
	}
}

func (s *webService) submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		req := SubmitRequest{}
		err := decodeForm(r, &req)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		sessionUID := myhttp.SessionUID(w, r, s.uuider, s.sessionTTL)

		created, err := s.service.Submit(c, sessionUID, req)
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusCreated, created)
	}
}

func decodeForm(r *http.Request, dest any) error {
	err := r.ParseForm()
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	err = formcodec.NewDecoder().Decode(dest, r.Form)
	if err != nil {
		return myerrors.NewInvalidInputErrorf("error decoding form: %s", err)
	}
	return nil
}
