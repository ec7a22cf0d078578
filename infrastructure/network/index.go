package network

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResponseBytes = 4 << 20

type BasicAuth struct {
	Username string
	Password string
}

// NetworkController performs JSON requests against a single base URL. It
// returns the raw body and status code for every response the server sends;
// err is only set when no response was received.
type NetworkController struct {
	BaseUrl string
	Client  *http.Client
}

func NewNetworkController(baseUrl string, timeout time.Duration) *NetworkController {
	return &NetworkController{
		BaseUrl: strings.TrimRight(baseUrl, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (nc *NetworkController) Get(ctx context.Context, path string, headers *map[string]string, params *map[string]string) (*[]byte, *int, error) {
	return nc.do(ctx, http.MethodGet, path, headers, nil, params, false, nil)
}

func (nc *NetworkController) Post(ctx context.Context, path string, headers *map[string]string, body any, params *map[string]string, urlencoded bool, basicAuth *BasicAuth) (*[]byte, *int, error) {
	return nc.do(ctx, http.MethodPost, path, headers, body, params, urlencoded, basicAuth)
}

func (nc *NetworkController) do(ctx context.Context, method string, path string, headers *map[string]string, body any, params *map[string]string, urlencoded bool, basicAuth *BasicAuth) (*[]byte, *int, error) {
	endpoint, err := nc.buildURL(path, params)
	if err != nil {
		return nil, nil, err
	}

	var reader io.Reader
	contentType := "application/json"
	if body != nil {
		if urlencoded {
			form, ok := body.(map[string]string)
			if !ok {
				return nil, nil, fmt.Errorf("urlencoded body must be map[string]string, got %T", body)
			}
			values := url.Values{}
			for key, value := range form {
				values.Set(key, value)
			}
			reader = strings.NewReader(values.Encode())
			contentType = "application/x-www-form-urlencoded"
		} else {
			encoded, err := json.Marshal(body)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to encode request body: %w", err)
			}
			reader = bytes.NewReader(encoded)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if headers != nil {
		for key, value := range *headers {
			req.Header.Set(key, value)
		}
	}
	if basicAuth != nil {
		req.SetBasicAuth(basicAuth.Username, basicAuth.Password)
	}

	client := nc.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer res.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	statusCode := res.StatusCode
	if err != nil {
		// a partial body is still handed back so callers can salvage a message
		return &responseBody, &statusCode, err
	}
	return &responseBody, &statusCode, nil
}

func (nc *NetworkController) buildURL(path string, params *map[string]string) (string, error) {
	endpoint, err := url.Parse(nc.BaseUrl + path)
	if err != nil {
		return "", fmt.Errorf("invalid request url: %w", err)
	}
	if params != nil && len(*params) > 0 {
		query := endpoint.Query()
		for key, value := range *params {
			query.Set(key, value)
		}
		endpoint.RawQuery = query.Encode()
	}
	return endpoint.String(), nil
}
