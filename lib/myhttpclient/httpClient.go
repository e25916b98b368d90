package myhttpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type httpClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) HTTPSender {
	return &httpClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (hc httpClient) PostForm(c context.Context, url string, values url.Values) (int, []byte, error) {
	httpReq, err := http.NewRequestWithContext(c, http.MethodPost, url, strings.NewReader(values.Encode()))
	if err != nil {
		return 0, nil, fmt.Errorf("error creating http form request: %s", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	return hc.do(httpReq)
}

// do never includes the url in errors: it may carry credentials
func (hc httpClient) do(httpReq *http.Request) (int, []byte, error) {
	httpResp, err := hc.client.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("error sending %s request to %s: %s", httpReq.Method, httpReq.URL.Host, unwrapURLError(err))
	}
	defer httpResp.Body.Close()

	respPayload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("error reading response from %s: %s", httpReq.URL.Host, err)
	}

	return httpResp.StatusCode, respPayload, nil
}

func unwrapURLError(err error) error {
	if urlErr, ok := err.(*url.Error); ok {
		return urlErr.Err
	}
	return err
}
