package myratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/onlineshop/lib/mytime"
)

func TestAllow(t *testing.T) {
	// setup
	ctrl := gomock.NewController(t)
	nowerMock := mytime.NewMockNower(ctrl)

	// given
	nowerMock.EXPECT().Now().Return(mytime.ExampleTime).Times(3)
	nowerMock.EXPECT().Now().Return(mytime.ExampleTime.Add(time.Minute)).Times(1)
	sut := New(nowerMock, 2, 2)

	// when-then
	assert.True(t, sut.Allow("1.2.3.4"))
	assert.True(t, sut.Allow("1.2.3.4"))
	assert.False(t, sut.Allow("1.2.3.4"))
	assert.True(t, sut.Allow("1.2.3.4"))
}

func TestKeysAreIndependentAndIdleOnesEvicted(t *testing.T) {
	// setup
	ctrl := gomock.NewController(t)
	nowerMock := mytime.NewMockNower(ctrl)

	// given
	nowerMock.EXPECT().Now().Return(mytime.ExampleTime).Times(2)
	nowerMock.EXPECT().Now().Return(mytime.ExampleTime.Add(time.Hour)).Times(1)
	sut := New(nowerMock, 1, 1)

	// when-then
	assert.True(t, sut.Allow("1.1.1.1"))
	assert.True(t, sut.Allow("2.2.2.2"))
	assert.True(t, sut.Allow("3.3.3.3"))
	assert.Len(t, sut.visitors, 1)
}

func TestMiddleware(t *testing.T) {
	// setup
	ctrl := gomock.NewController(t)
	nowerMock := mytime.NewMockNower(ctrl)
	nowerMock.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	sut := New(nowerMock, 1, 1)
	handler := sut.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	// when
	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/checkout", nil))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/checkout", nil))

	// then
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "too many requests")
}

func TestClientAddress(t *testing.T) {
	testCases := []struct {
		name         string
		cloudProject string
		forwardedFor string
		remoteAddr   string
		expectedKey  string
	}{
		{name: "peer address", remoteAddr: "10.0.0.1:5555", forwardedFor: "1.2.3.4", expectedKey: "10.0.0.1"},
		{name: "peer address without port", remoteAddr: "10.0.0.1", expectedKey: "10.0.0.1"},
		{name: "first forwarded hop on gcloud", cloudProject: "shop", remoteAddr: "169.254.1.1:80", forwardedFor: "1.2.3.4, 130.211.0.1", expectedKey: "1.2.3.4"},
		{name: "peer address on gcloud without header", cloudProject: "shop", remoteAddr: "169.254.1.1:80", expectedKey: "169.254.1.1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			t.Setenv("GOOGLE_CLOUD_PROJECT", tc.cloudProject)
			sut := New(mytime.NewMockNower(gomock.NewController(t)), 1, 1)

			// given
			request := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
			request.RemoteAddr = tc.remoteAddr
			if tc.forwardedFor != "" {
				request.Header.Set("X-Forwarded-For", tc.forwardedFor)
			}

			// when
			key := sut.clientAddress(request)

			// then
			assert.Equal(t, tc.expectedKey, key)
		})
	}
}

func TestMiddlewareSeparatesForwardedClients(t *testing.T) {
	// setup
	t.Setenv("GOOGLE_CLOUD_PROJECT", "shop")
	ctrl := gomock.NewController(t)
	nowerMock := mytime.NewMockNower(ctrl)
	nowerMock.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	sut := New(nowerMock, 1, 1)
	handler := sut.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := []int{}
	for _, client := range []string{"1.1.1.1", "2.2.2.2", "1.1.1.1"} {
		// given
		request := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
		request.RemoteAddr = "169.254.1.1:80"
		request.Header.Set("X-Forwarded-For", client)

		// when
		response := httptest.NewRecorder()
		handler.ServeHTTP(response, request)
		codes = append(codes, response.Code)
	}

	// then
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}
