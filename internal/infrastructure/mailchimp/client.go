// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package mailchimp implements the provider gateway over the Mailchimp
// Marketing API v3.
package mailchimp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/go-querystring/query"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/httpclient"
)

// Client is the HTTP implementation of port.Gateway
type Client struct {
	config     Config
	baseURL    string
	httpClient *httpclient.Client
	lastStatus atomic.Int64
	responses  metric.Int64Counter
}

var _ port.Gateway = (*Client)(nil)

// Option configures a Client
type Option func(*clientOptions)

type clientOptions struct {
	httpOptions []httpclient.Option
}

// WithHTTPClient sends requests through hc instead of the default
// instrumented client
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		o.httpOptions = append(o.httpOptions, httpclient.WithHTTPClient(hc))
	}
}

// DataCenter extracts the data center from an API key: the segment after the
// last hyphen. Keys without one, or with an empty or non-alphanumeric
// segment, fail with InvalidInput.
func DataCenter(apiKey string) (string, error) {
	if apiKey == "" {
		return "", errors.NewInvalidInput("API key is required")
	}
	idx := strings.LastIndex(apiKey, "-")
	if idx < 0 || idx == len(apiKey)-1 {
		return "", errors.NewInvalidInput("invalid API key: missing data center suffix")
	}
	dc := apiKey[idx+1:]
	for _, r := range dc {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return "", errors.NewInvalidInput("invalid API key: malformed data center suffix")
		}
	}
	return dc, nil
}

// NewClient creates a new Mailchimp client with the given configuration.
// The API key is validated even when BaseURL is overridden.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	dc, err := DataCenter(cfg.APIKey)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = strings.Replace(constants.BaseURLTemplate, constants.DataCenterPlaceholder, dc, 1)
	}

	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	httpConfig := httpclient.Config{
		Timeout:      cfg.Timeout,
		MaxRetries:   cfg.MaxRetries,
		RetryDelay:   cfg.RetryDelay,
		RetryBackoff: true,
	}

	client := &Client{
		config:     cfg,
		baseURL:    baseURL,
		httpClient: httpclient.NewClient(httpConfig, o.httpOptions...),
	}

	client.httpClient.AddRoundTripper(httpclient.BasicAuth{
		Username: constants.BasicAuthUsername,
		Password: cfg.APIKey,
	})
	client.httpClient.AddRoundTripper(httpclient.RequestID{Header: constants.RequestIDHeader})
	client.httpClient.AddRoundTripper(httpclient.UserAgent(cfg.UserAgent))

	responses, err := otel.Meter(constants.InstrumentationName).Int64Counter(
		"mailchimp.gateway.responses",
		metric.WithDescription("Responses received from the Mailchimp API, by method and status code"),
		metric.WithUnit("{response}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create response counter: %w", err)
	}
	client.responses = responses

	slog.DebugContext(context.Background(), "mailchimp client initialized",
		"base_url", baseURL,
		"max_retries", cfg.MaxRetries,
	)

	return client, nil
}

// BaseURL returns the API root the client sends requests to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ResponseCode returns the status of the most recent response
func (c *Client) ResponseCode() int {
	return int(c.lastStatus.Load())
}

// ResponseCodeNotFound reports whether the most recent response was a 404
func (c *Client) ResponseCodeNotFound() bool {
	return c.ResponseCode() == http.StatusNotFound
}

// Call issues one request and returns the decoded JSON object
func (c *Client) Call(ctx context.Context, method model.Method, path string, payload any) (map[string]any, error) {
	body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}

	out := map[string]any{}
	if len(bytes.TrimSpace(body)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil || out == nil {
		slog.DebugContext(ctx, "response body is not a JSON object",
			"path", path,
			"error", err,
		)
		return map[string]any{}, nil
	}
	return out, nil
}

// callInto issues one request and decodes a successful body into result.
// An unparseable body leaves result untouched.
func (c *Client) callInto(ctx context.Context, method model.Method, path string, payload any, result any) error {
	body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return err
	}

	if result == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		slog.DebugContext(ctx, "failed to decode response body",
			"path", path,
			"error", err,
		)
	}
	return nil
}

// do performs the request and classifies the outcome. It returns the raw body
// of a successful response.
func (c *Client) do(ctx context.Context, method model.Method, path string, payload any) ([]byte, error) {
	if !method.Valid() {
		return nil, errors.NewInvalidInput(fmt.Sprintf("invalid API call method: %s", method))
	}

	reqURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	headers := map[string]string{}
	var body []byte

	if method.QueryPayload() {
		values, err := encodeQuery(payload)
		if err != nil {
			return nil, errors.NewInvalidInput("failed to encode query parameters", err)
		}
		if encoded := values.Encode(); encoded != "" {
			sep := "?"
			if strings.Contains(reqURL, "?") {
				sep = "&"
			}
			reqURL += sep + encoded
		}
	} else if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.NewInvalidInput("failed to encode request body", err)
		}
		body = encoded
		headers["Content-Type"] = "application/json"
	}

	slog.DebugContext(ctx, "calling Mailchimp API",
		"method", method.HTTP(),
		"path", path,
	)

	resp, err := c.httpClient.Request(ctx, method.HTTP(), reqURL, body, headers)
	if resp == nil {
		c.lastStatus.Store(0)
		if err == nil {
			err = fmt.Errorf("no response")
		}
		return nil, errors.NewInternalError("Mailchimp API request failed", 0, "", err)
	}

	c.lastStatus.Store(int64(resp.StatusCode))
	c.responses.Add(ctx, 1, metric.WithAttributes(
		attribute.String("http.request.method", method.HTTP()),
		attribute.Int("http.response.status_code", resp.StatusCode),
	))

	slog.DebugContext(ctx, "Mailchimp API responded",
		"method", method.HTTP(),
		"path", path,
		"status_code", resp.StatusCode,
	)

	if classified := ClassifyResponse(resp.StatusCode, resp.Body); classified != nil {
		return nil, classified
	}

	return resp.Body, nil
}

// encodeQuery turns a payload into query parameters. Maps are encoded key by
// key, nested maps in bracket form (nested[a]=1); structs go through their
// `url` tags.
func encodeQuery(payload any) (url.Values, error) {
	switch p := payload.(type) {
	case nil:
		return url.Values{}, nil
	case url.Values:
		return p, nil
	case map[string]string, map[string]any:
		values := url.Values{}
		addQueryValue(values, "", p)
		return values, nil
	}
	return query.Values(payload)
}

// addQueryValue adds v under key; a map value fans out to key[sub] entries
func addQueryValue(values url.Values, key string, v any) {
	nest := func(sub string) string {
		if key == "" {
			return sub
		}
		return key + "[" + sub + "]"
	}

	switch vv := v.(type) {
	case nil:
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(vv)) {
			addQueryValue(values, nest(k), vv[k])
		}
	case map[string]string:
		for _, k := range slices.Sorted(maps.Keys(vv)) {
			values.Add(nest(k), vv[k])
		}
	case []string:
		for _, s := range vv {
			values.Add(key, s)
		}
	case []any:
		for i, item := range vv {
			switch item.(type) {
			case map[string]any, map[string]string:
				addQueryValue(values, key+"["+strconv.Itoa(i)+"]", item)
			default:
				addQueryValue(values, key, item)
			}
		}
	default:
		values.Add(key, fmt.Sprint(vv))
	}
}
