// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonclient JSON-RPC 2.0 client over http
package jsonclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/33cn/splitsteal/common/log"
	"github.com/33cn/splitsteal/types"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rcrowley/go-metrics"
)

var jlog = log.New("module", "rpc.jsonclient")

// JSONClient a object of jsonclient
type JSONClient struct {
	url      string
	client   *http.Client
	registry metrics.Registry
}

// Option configures a JSONClient
type Option func(*JSONClient)

// WithTimeout sets the http client timeout, zero means none
func WithTimeout(d time.Duration) Option {
	return func(c *JSONClient) {
		c.client = &http.Client{Timeout: d}
	}
}

// WithHTTPClient replaces the http client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *JSONClient) {
		c.client = hc
	}
}

// WithRegistry records call metrics into r instead of metrics.DefaultRegistry
func WithRegistry(r metrics.Registry) Option {
	return func(c *JSONClient) {
		c.registry = r
	}
}

// NewJSONClient produce a json object
func NewJSONClient(laddr string, opts ...Option) (*JSONClient, error) {
	u, err := url.Parse(laddr)
	if err != nil {
		return nil, errors.WithMessagef(types.ErrValidation, "rpc address %q: %v", laddr, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.WithMessagef(types.ErrValidation, "rpc address %q must be http or https", laddr)
	}
	c := &JSONClient{
		url:      laddr,
		client:   http.DefaultClient,
		registry: metrics.DefaultRegistry,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type clientRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type clientResponse struct {
	ID     string           `json:"id"`
	Result *json.RawMessage `json:"result"`
	Error  *RPCError        `json:"error"`
}

// ErrorCause is the structured cause NEAR style nodes attach to errors
type ErrorCause struct {
	Name string          `json:"name"`
	Info json.RawMessage `json:"info,omitempty"`
}

// RPCError is an error object returned by the node
type RPCError struct {
	Name    string          `json:"name,omitempty"`
	Cause   *ErrorCause     `json:"cause,omitempty"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	s := fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
	if e.Cause != nil && e.Cause.Name != "" {
		s += " (" + e.Cause.Name + ")"
	}
	if len(e.Data) > 0 {
		s += ": " + string(e.Data)
	}
	return s
}

// Unwrap every node reported error is a transport error
func (e *RPCError) Unwrap() error {
	return types.ErrTransport
}

// Call calls method with a background context
func (c *JSONClient) Call(method string, params, resp interface{}) error {
	return c.CallContext(context.Background(), method, params, resp)
}

// CallContext posts one JSON-RPC request and decodes its result into resp.
// Network and http failures wrap types.ErrTransport; node errors are *RPCError.
func (c *JSONClient) CallContext(ctx context.Context, method string, params, resp interface{}) (err error) {
	timer := metrics.GetOrRegisterTimer("rpc/"+method, c.registry)
	start := time.Now()
	defer func() {
		timer.UpdateSince(start)
		if err != nil {
			metrics.GetOrRegisterMeter("rpc/"+method+"/errors", c.registry).Mark(1)
		}
	}()

	req := &clientRequest{JSONRPC: "2.0", ID: uuid.New().String(), Method: method, Params: params}
	data, err := json.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "marshal rpc request")
	}
	jlog.Debug("CallContext", "method", method, "id", req.ID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(types.ErrTransport, err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return errors.Wrap(types.ErrTransport, err.Error())
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return errors.Wrap(types.ErrTransport, err.Error())
	}
	var cr clientResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		if httpResp.StatusCode != http.StatusOK {
			return errors.WithMessagef(types.ErrTransport, "http status %d", httpResp.StatusCode)
		}
		return errors.WithMessagef(types.ErrTransport, "undecodable rpc response: %v", err)
	}
	if cr.Error != nil {
		jlog.Debug("CallContext", "method", method, "err", cr.Error)
		return cr.Error
	}
	if cr.Result == nil {
		return errors.WithMessagef(types.ErrTransport, "rpc response for %s has no result", method)
	}
	if resp == nil {
		return nil
	}
	if err := json.Unmarshal(*cr.Result, resp); err != nil {
		return errors.WithMessagef(types.ErrTransport, "decode %s result: %v", method, err)
	}
	return nil
}
