package order

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/onlineshop/lib/myhttp"
	"github.com/MarcGrol/onlineshop/lib/mytime"
)

func setup(t *testing.T, ctrl *gomock.Controller) (*mux.Router, *MockRepository) {
	repo := NewMockRepository(ctrl)

	router := mux.NewRouter()
	err := NewWebService(repo).RegisterEndpoints(context.TODO(), router)
	require.NoError(t, err)

	return router, repo
}

func getOrder(router *mux.Router, path string, sessionUID string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, path, nil)
	if sessionUID != "" {
		request.AddCookie(&http.Cookie{Name: myhttp.SessionCookieName, Value: sessionUID})
	}
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func TestOrderWebService(t *testing.T) {

	t.Run("Get own order", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, repo := setup(t, ctrl)

		// given
		repo.EXPECT().Get(gomock.Any(), "o1").Return(exampleOrder("o1", mytime.ExampleTime, rosesLine), true, nil)

		// when
		response := getOrder(router, "/api/order/o1", "s1")

		// then
		assert.Equal(t, 200, response.Code)
		got := Order{}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &got))
		assert.Equal(t, "o1", got.UID)
		assert.Equal(t, "39.98", got.Lines[0].LineTotal.StringFixed(2))
		assert.NotContains(t, response.Body.String(), "SessionUID")
	})

	t.Run("Get order of another session", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, repo := setup(t, ctrl)

		// given
		repo.EXPECT().Get(gomock.Any(), "o1").Return(exampleOrder("o1", mytime.ExampleTime, rosesLine), true, nil)

		// when
		response := getOrder(router, "/api/order/o1", "s2")

		// then
		assert.Equal(t, 404, response.Code)
		assert.NotContains(t, response.Body.String(), "Eva")
	})

	t.Run("Get order without session", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, _ := setup(t, ctrl)

		// when
		response := getOrder(router, "/api/order/o1", "")

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Get order not exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, repo := setup(t, ctrl)

		// given
		repo.EXPECT().Get(gomock.Any(), "o2").Return(Order{}, false, nil)

		// when
		response := getOrder(router, "/api/order/o2", "s1")

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Get order fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, repo := setup(t, ctrl)

		// given
		repo.EXPECT().Get(gomock.Any(), "o1").Return(Order{}, false, fmt.Errorf("db down"))

		// when
		response := getOrder(router, "/api/order/o1", "s1")

		// then
		assert.Equal(t, 500, response.Code)
	})

	t.Run("Orders are not listed", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, _ := setup(t, ctrl)

		// when
		response := getOrder(router, "/api/order", "s1")

		// then
		assert.Equal(t, 404, response.Code)
	})
}
