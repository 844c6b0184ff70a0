package utils

import (
	"fmt"
	"io"
	"net/http"
	u "net/url"
	"time"
)

const (
	// MaxRetries is the total attempt allowance per request, not a shared budget.
	MaxRetries     = 5
	backoffFactor  = 100 * time.Millisecond
	DefaultTimeout = 60 * time.Second
)

// retryStatuses are the transient server errors worth another attempt.
var retryStatuses = map[int]bool{
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

type HTTPClientConfig struct {
	Timeout   time.Duration
	KATimeout time.Duration
	ProxyURL  string
	UserAgent string
	Headers   map[string]string
	Transport http.RoundTripper // test override
}

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
	SetHeader(key, value string)
}

// RetryClient is the process-wide HTTP client. Plain-HTTP requests get up to
// MaxRetries attempts with exponential backoff on transient failures; HTTPS
// requests fail on the first error. The asymmetry matches a retry adapter
// mounted on the http:// prefix only and is kept deliberately.
type RetryClient struct {
	client *http.Client
	config HTTPClientConfig
}

func NewRetryClient(cfg HTTPClientConfig) *RetryClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.KATimeout == 0 {
		cfg.KATimeout = 60 * time.Second
	}
	if cfg.Headers == nil {
		cfg.Headers = make(map[string]string)
	}
	var transport http.RoundTripper
	if cfg.Transport != nil {
		transport = cfg.Transport
	} else {
		htransport := &http.Transport{
			IdleConnTimeout:     cfg.KATimeout,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
		}
		if cfg.ProxyURL != "" {
			if proxyURL, err := u.Parse(cfg.ProxyURL); err == nil {
				htransport.Proxy = http.ProxyURL(proxyURL)
			}
		}
		transport = htransport
	}
	return &RetryClient{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		config: cfg,
	}
}

func (c *RetryClient) SetHeader(key, value string) {
	c.config.Headers[key] = value
}

func (c *RetryClient) Do(req *http.Request) (*http.Response, error) {
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	} else {
		req.Header.Set("User-Agent", ToolUserAgent)
	}
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}
	if req.URL.Scheme != "http" {
		return c.client.Do(req)
	}
	var resp *http.Response
	var err error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(backoffFactor * (1 << (attempt - 1)))
		}
		resp, err = c.client.Do(req)
		if err != nil {
			continue
		}
		if !retryStatuses[resp.StatusCode] {
			return resp, nil
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		err = fmt.Errorf("giving up on %s after %d attempts: status %d", req.URL, MaxRetries, resp.StatusCode)
	}
	return nil, err
}
