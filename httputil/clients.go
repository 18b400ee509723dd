package httputil

import (
	"time"

	"github.com/go-resty/resty/v2"
)

type Clients struct {
	Webhook *resty.Client // short-timeout, for text alerts
	Upload  *resty.Client // longer timeout, for multipart image uploads
}

func NewClients() *Clients {
	return &Clients{
		Webhook: resty.New().
			SetTimeout(10 * time.Second).
			SetRetryCount(2).
			SetRetryWaitTime(2 * time.Second),
		Upload: resty.New().
			SetTimeout(30 * time.Second),
	}
}
