package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/MarcGrol/onlineshop/lib/mycontext"
	"github.com/MarcGrol/onlineshop/lib/myerrors"
	"github.com/MarcGrol/onlineshop/lib/myhttp"
	"github.com/MarcGrol/onlineshop/lib/mylog"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

func NewWebService(catalog Catalog) *webService {
	logger := mylog.New("catalog")
	return &webService{
		logger:  logger,
		service: newService(catalog, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/product", s.listProducts()).Methods("GET")
	router.HandleFunc("/api/product/{productID}", s.getProduct()).Methods("GET")
	router.HandleFunc("/api/product/{productID}", s.putProduct()).Methods("PUT")
	router.HandleFunc("/api/product/{productID}", s.deleteProduct()).Methods("DELETE")

	return nil
}

func (s *webService) listProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		products, err := s.service.listProducts(c)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		writer.Write(c, w, http.StatusOK, products)
	}
}

func (s *webService) getProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		productID, err := ProductIDFromRequest(r)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		product, err := s.service.getProduct(c, productID)
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusOK, product)
	}
}

type productForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Price       string `form:"price"`
	Stock       int    `form:"stock"`
}

func (s *webService) putProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		product, err := parseProductForm(r)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		err = s.service.putProduct(c, product)
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusOK, product)
	}
}

func (s *webService) deleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		productID, err := ProductIDFromRequest(r)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		err = s.service.deleteProduct(c, productID)
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: fmt.Sprintf("product %d deleted", productID)})
	}
}

// ProductIDFromRequest extracts the {productID} path variable.
func ProductIDFromRequest(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["productID"]
	productID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || productID <= 0 {
		return 0, myerrors.NewInvalidInputErrorf("invalid product id '%s'", raw)
	}
	return productID, nil
}

func parseProductForm(r *http.Request) (Product, error) {
	productID, err := ProductIDFromRequest(r)
	if err != nil {
		return Product{}, err
	}

	err = r.ParseForm()
	if err != nil {
		return Product{}, myerrors.NewInvalidInputError(err)
	}

	f := productForm{}
	err = formcodec.NewDecoder().Decode(&f, r.Form)
	if err != nil {
		return Product{}, myerrors.NewInvalidInputErrorf("error decoding product form: %s", err)
	}

	price, err := decimal.NewFromString(f.Price)
	if err != nil {
		return Product{}, myerrors.NewInvalidInputErrorf("invalid price '%s'", f.Price)
	}

	return Product{
		ID:          productID,
		Name:        f.Name,
		Description: f.Description,
		Price:       price.Round(2),
		Stock:       f.Stock,
	}, nil
}
