package myhttpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	timeout = 15 * time.Second
)

//go:generate mockgen -source=http_client.go -package myhttpclient -destination http_client_mock.go HTTPSender
type HTTPSender interface {
	Send(ctx context.Context, method string, url string, body []byte, bearerToken string) (int, []byte, error)
}

type result struct {
	status  int
	payload []byte
}

type jsonHTTPClient struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[result]
}

func New(name string) HTTPSender {
	return &jsonHTTPClient{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[result](gobreaker.Settings{
			Name:    name,
			Timeout: 10 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

func (c *jsonHTTPClient) Send(ctx context.Context, method string, url string, body []byte, bearerToken string) (int, []byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return 0, []byte{}, fmt.Errorf("error creating http request for %s %s: %s", method, url, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if bearerToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := c.breaker.Execute(func() (result, error) {
		httpResp, err := c.client.Do(httpReq)
		if err != nil {
			return result{}, fmt.Errorf("error sending %s %s: %s", method, url, err)
		}
		defer httpResp.Body.Close()

		respPayload, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return result{}, fmt.Errorf("error reading response %s %s: %s", method, url, err)
		}

		return result{
			status:  httpResp.StatusCode,
			payload: respPayload,
		}, nil
	})
	if err != nil {
		return 0, []byte{}, err
	}

	return resp.status, resp.payload, nil
}
