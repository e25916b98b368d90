package checkout

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/onlineshop/lib/myhttp"
	"github.com/MarcGrol/onlineshop/lib/myratelimit"
	"github.com/MarcGrol/onlineshop/lib/mytime"
	"github.com/MarcGrol/onlineshop/services/order"
)

func setupRouter(t *testing.T, f fixture, limiter *myratelimit.Limiter) *mux.Router {
	router := mux.NewRouter()
	err := NewWebService(f.sut, f.uuider, 720*time.Hour, limiter).RegisterEndpoints(f.ctx, router)
	require.NoError(t, err)
	return router
}

func postForm(router *mux.Router, path string, values url.Values, sessionUID string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.AddCookie(&http.Cookie{Name: myhttp.SessionCookieName, Value: sessionUID})
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func TestCheckoutWebService(t *testing.T) {

	t.Run("Preview", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		f := newFixture(t, ctrl, nil)
		router := setupRouter(t, f, nil)

		// given
		f.fillCart(t, "s1", 1, 2)

		// when
		response := postForm(router, "/api/checkout/preview", url.Values{"deliveryMethod": {"express"}, "preferredTime": {"09:00"}}, "s1")

		// then
		assert.Equal(t, 200, response.Code)
		quote := Quote{}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &quote))
		assert.Equal(t, "325.49", quote.Total.StringFixed(2))
		assert.Contains(t, quote.Note, "03.01.2024 09:00")
	})

	t.Run("Preview empty cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		f := newFixture(t, ctrl, nil)
		router := setupRouter(t, f, nil)

		// when
		response := postForm(router, "/api/checkout/preview", url.Values{}, "s1")

		// then
		assert.Equal(t, 400, response.Code)
		assert.Contains(t, response.Body.String(), ErrEmptyCart.Error())
	})

	t.Run("Submit", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		f := newFixture(t, ctrl, nil)
		router := setupRouter(t, f, nil)

		// given
		f.fillCart(t, "s1", 1)
		f.uuider.EXPECT().Create().Return("order-1")
		f.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
		values, err := formcodec.NewEncoder().Encode(validSubmit)
		require.NoError(t, err)

		// when
		response := postForm(router, "/api/checkout", values, "s1")

		// then
		assert.Equal(t, 201, response.Code)
		created := order.Order{}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &created))
		assert.Equal(t, "order-1", created.UID)
		assert.Equal(t, "Main street", created.Address.Street)
		assert.True(t, mytime.ExampleTime.Equal(created.CreatedAt))
	})

	t.Run("Submit is rate limited", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		f := newFixture(t, ctrl, nil)
		limiterNower := mytime.NewMockNower(ctrl)
		limiterNower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
		router := setupRouter(t, f, myratelimit.New(limiterNower, 1, 1))

		// when
		first := postForm(router, "/api/checkout", url.Values{}, "s1")
		second := postForm(router, "/api/checkout", url.Values{}, "s1")

		// then
		assert.Equal(t, 400, first.Code)
		assert.Equal(t, 429, second.Code)
	})
}
