package myhttpclient

import (
	"context"
	"net/url"
	"time"
)

type HTTPSender interface {
	PostForm(c context.Context, url string, values url.Values) (int, []byte, error)
}

func New(timeout time.Duration) HTTPSender {
	return newHTTPClient(timeout)
}
