package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/revolutionchain/ethfmt/pkg/eth"
	"github.com/revolutionchain/ethfmt/pkg/params"
	"golang.org/x/time/rate"
)

const maxLoggedBody = 1000

var ErrEmptyResponse = errors.New("node returned an empty response")

type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

type Option func(*Client) error

// Client sends JSON-RPC calls to a node over HTTP. It implements eth.Transport.
type Client struct {
	URL  string
	doer Doer

	id      int64
	limiter *rate.Limiter

	logger          log.Logger
	debug           bool
	disableSnipping bool
}

func NewClient(rpcURL string, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(rpcURL); err != nil {
		return nil, errors.Wrapf(err, "invalid node url %q", rpcURL)
	}

	c := &Client{
		URL:    rpcURL,
		doer:   http.DefaultClient,
		logger: log.NewNopLogger(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Send posts one call and decodes the response into an outcome. Results are
// decoded with json.Number so quantities sent as JSON numbers keep their
// precision.
func (c *Client) Send(ctx context.Context, method string, args []interface{}) (*eth.Outcome, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "rate limiter")
		}
	}

	req, err := c.NewRPCRequest(method, args)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "marshal request")
	}

	c.GetDebugLogger().Log("method", method, "request", c.snip(body))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build http request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", params.UserAgent)

	resp, err := c.doer.Do(httpReq)
	if err != nil {
		return nil, errors.Wrapf(err, "%s request", method)
	}
	defer resp.Body.Close()

	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}

	c.GetDebugLogger().Log("method", method, "status", resp.StatusCode, "response", c.snip(raw))

	res, err := decodeResult(raw)
	if err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, errors.Errorf("%s: node responded with http status %d", method, resp.StatusCode)
		}
		return nil, errors.Wrapf(err, "%s response", method)
	}

	if res.Error != nil {
		return eth.NewErrorOutcome(res.Error), nil
	}

	result, err := decodeValue(res.RawResult)
	if err != nil {
		return nil, errors.Wrapf(err, "%s result", method)
	}
	return eth.NewResultOutcome(result), nil
}

func (c *Client) NewRPCRequest(method string, args []interface{}) (*eth.JSONRPCRequest, error) {
	if args == nil {
		args = []interface{}{}
	}
	paramsJSON, err := json.Marshal(args)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal %s params", method)
	}

	id := atomic.AddInt64(&c.id, 1)
	return &eth.JSONRPCRequest{
		JSONRPC: eth.RPCVersion,
		Method:  method,
		ID:      json.RawMessage(strconv.FormatInt(id, 10)),
		Params:  paramsJSON,
	}, nil
}

func decodeResult(raw []byte) (*eth.JSONRPCResult, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyResponse
	}
	var res eth.JSONRPCResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, errors.Wrap(err, "decode json-rpc envelope")
	}
	return &res, nil
}

// decodeValue decodes a raw JSON value, keeping numbers as json.Number. An
// absent result decodes to nil.
func decodeValue(raw json.RawMessage) (interface{}, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func (c *Client) snip(body []byte) string {
	if c.disableSnipping || len(body) <= maxLoggedBody {
		return string(body)
	}
	return string(body[:maxLoggedBody]) + "...snip..."
}

func (c *Client) IsDebugEnabled() bool {
	return c.debug
}

func (c *Client) GetDebugLogger() log.Logger {
	if !c.IsDebugEnabled() {
		return log.NewNopLogger()
	}
	return level.Debug(c.logger)
}

func SetDoer(d Doer) func(*Client) error {
	return func(c *Client) error {
		c.doer = d
		return nil
	}
}

func SetDebug(debug bool) func(*Client) error {
	return func(c *Client) error {
		c.debug = debug
		return nil
	}
}

func SetLogger(l log.Logger) func(*Client) error {
	return func(c *Client) error {
		c.logger = log.WithPrefix(l, "component", "transport")
		return nil
	}
}

func SetDisableSnipping(disable bool) func(*Client) error {
	return func(c *Client) error {
		c.disableSnipping = disable
		return nil
	}
}

// SetRateLimit caps outgoing calls at perSecond with the given burst. A
// non-positive rate disables limiting.
func SetRateLimit(perSecond float64, burst int) func(*Client) error {
	return func(c *Client) error {
		if perSecond <= 0 {
			c.limiter = nil
			return nil
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		return nil
	}
}
