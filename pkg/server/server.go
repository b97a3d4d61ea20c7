package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/websocket"
	"github.com/heptiolabs/healthcheck"
	"github.com/labstack/echo"
	"github.com/pkg/errors"
	"github.com/revolutionchain/ethfmt/pkg/analytics"
	"github.com/revolutionchain/ethfmt/pkg/eth"
	"github.com/revolutionchain/ethfmt/pkg/formatting"
	"github.com/revolutionchain/ethfmt/pkg/pipeline"
)

type Option func(*Server) error

// Server exposes a pipeline as a JSON-RPC endpoint over HTTP and websocket.
// Requests are formatted on the way to the node and results are returned in
// their decoded form.
type Server struct {
	pipeline *pipeline.Pipeline
	node     eth.Transport
	address  string

	logWriter io.Writer
	logger    log.Logger
	debug     bool
	echo      *echo.Echo

	analytics          *analytics.Analytics
	healthCheckPercent int
	now                func() time.Time

	blocksMutex     sync.RWMutex
	lastBlock       int64
	nextBlockCheck  *time.Time
	lastBlockStatus error
}

func New(p *pipeline.Pipeline, node eth.Transport, address string, opts ...Option) (*Server, error) {
	if p == nil || node == nil {
		return nil, errors.New("server needs a pipeline and a node")
	}

	s := &Server{
		pipeline:           p,
		node:               node,
		address:            address,
		logWriter:          ioutil.Discard,
		logger:             log.NewNopLogger(),
		analytics:          p.Analytics(),
		healthCheckPercent: 80,
		now:                time.Now,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.echo = s.routes()
	return s, nil
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(s.logWriter)

	health := healthcheck.NewHandler()
	health.AddLivenessCheck("node", healthcheck.Timeout(s.testConnectionToNode, healthCheckTimeout))
	health.AddLivenessCheck("blocks-syncing", s.testBlocksSyncing)
	health.AddReadinessCheck("success-rate", s.testFormattingSuccessRate)

	e.GET("/live", echo.WrapHandler(http.HandlerFunc(health.LiveEndpoint)))
	e.GET("/ready", echo.WrapHandler(http.HandlerFunc(health.ReadyEndpoint)))
	e.GET("/", s.websocketHandler)
	e.POST("/", s.httpHandler)

	return e
}

// Handler returns the http handler serving the endpoint.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start() error {
	level.Info(s.logger).Log("msg", "starting server", "address", s.address)
	return s.echo.Start(s.address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) httpHandler(c echo.Context) error {
	body, err := ioutil.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResult(nil, eth.NewJSONRPCError(eth.ErrCodeParse, err.Error(), nil)))
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var batch []json.RawMessage
		if err := json.Unmarshal(trimmed, &batch); err != nil {
			return c.JSON(http.StatusOK, errorResult(nil, eth.NewJSONRPCError(eth.ErrCodeParse, err.Error(), nil)))
		}
		if len(batch) == 0 {
			return c.JSON(http.StatusOK, errorResult(nil, eth.NewJSONRPCError(eth.ErrCodeInvalidRequest, "empty batch", nil)))
		}
		results := make([]*eth.JSONRPCResult, 0, len(batch))
		for _, raw := range batch {
			if result := s.handle(c.Request().Context(), raw); result != nil {
				results = append(results, result)
			}
		}
		if len(results) == 0 {
			return c.NoContent(http.StatusNoContent)
		}
		return c.JSON(http.StatusOK, results)
	}

	result := s.handle(c.Request().Context(), trimmed)
	if result == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, result)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) websocketHandler(c echo.Context) error {
	if !websocket.IsWebSocketUpgrade(c.Request()) {
		return c.String(http.StatusMethodNotAllowed, "send JSON-RPC requests with POST or open a websocket")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.GetDebugLogger().Log("msg", "websocket read failed", "err", err)
			}
			return nil
		}
		if messageType != websocket.TextMessage {
			continue
		}

		result := s.handle(ctx, message)
		if result == nil {
			continue
		}
		response, err := json.Marshal(result)
		if err != nil {
			return errors.Wrap(err, "marshal websocket response")
		}
		if err := conn.WriteMessage(websocket.TextMessage, response); err != nil {
			s.GetDebugLogger().Log("msg", "websocket write failed", "err", err)
			return nil
		}
	}
}

// handle runs one raw JSON-RPC request through the pipeline. Notifications,
// requests without an id, are run but get no result.
func (s *Server) handle(ctx context.Context, raw []byte) *eth.JSONRPCResult {
	var req eth.JSONRPCRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return errorResult(nil, eth.NewJSONRPCError(eth.ErrCodeParse, err.Error(), nil))
	}
	if req.Method == "" {
		return errorResult(req.ID, eth.NewJSONRPCError(eth.ErrCodeInvalidRequest, "missing method", nil))
	}

	result := s.call(ctx, &req)
	if req.ID == nil {
		return nil
	}
	return result
}

func (s *Server) call(ctx context.Context, req *eth.JSONRPCRequest) *eth.JSONRPCResult {
	params, err := decodeParams(req.Params)
	if err != nil {
		return errorResult(req.ID, eth.NewInvalidParamsError(err.Error()))
	}

	outcome, err := s.pipeline.Do(ctx, req.Method, params)
	if err != nil {
		s.GetDebugLogger().Log("msg", "call failed", "method", req.Method, "err", err)
		return errorResult(req.ID, toJSONRPCError(err))
	}
	if outcome.State() == eth.StateError {
		return errorResult(req.ID, outcome.Error)
	}

	result, err := json.Marshal(outcome.Result)
	if err != nil {
		return errorResult(req.ID, eth.NewCallbackError(errors.Wrap(err, "encode result").Error()))
	}

	return &eth.JSONRPCResult{
		JSONRPC:   eth.RPCVersion,
		RawResult: result,
		ID:        req.ID,
	}
}

func decodeParams(raw json.RawMessage) (formatting.Params, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return formatting.Params{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var params formatting.Params
	if err := dec.Decode(&params); err != nil {
		return nil, errors.Wrap(err, "params must be an array")
	}
	if params == nil {
		params = formatting.Params{}
	}
	return params, nil
}

// toJSONRPCError maps a pipeline failure to the error object returned to the
// caller. Bad request params are the caller's fault, anything else is ours
// or the node's.
func toJSONRPCError(err error) *eth.JSONRPCError {
	var ferr *formatting.FormatterError
	if errors.As(err, &ferr) && ferr.Direction == formatting.DirectionRequest {
		return eth.NewInvalidParamsError(err.Error())
	}
	var rpcErr *eth.JSONRPCError
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	return eth.NewCallbackError(err.Error())
}

func errorResult(id json.RawMessage, err *eth.JSONRPCError) *eth.JSONRPCResult {
	if id == nil {
		id = json.RawMessage("null")
	}
	return &eth.JSONRPCResult{
		JSONRPC: eth.RPCVersion,
		Error:   err,
		ID:      id,
	}
}

func (s *Server) IsDebugEnabled() bool {
	return s.debug
}

func (s *Server) GetDebugLogger() log.Logger {
	if !s.IsDebugEnabled() {
		return log.NewNopLogger()
	}
	return level.Debug(s.logger)
}

func SetLogWriter(w io.Writer) func(*Server) error {
	return func(s *Server) error {
		s.logWriter = w
		return nil
	}
}

func SetLogger(l log.Logger) func(*Server) error {
	return func(s *Server) error {
		s.logger = log.WithPrefix(l, "component", "server")
		return nil
	}
}

func SetDebug(debug bool) func(*Server) error {
	return func(s *Server) error {
		s.debug = debug
		return nil
	}
}

func SetAnalytics(a *analytics.Analytics) func(*Server) error {
	return func(s *Server) error {
		s.analytics = a
		return nil
	}
}

// SetHealthCheckPercent sets the minimum success rate, in percent, for the
// server to report ready.
func SetHealthCheckPercent(percent int) func(*Server) error {
	return func(s *Server) error {
		if percent < 0 || percent > 100 {
			return errors.Errorf("health check percent %d out of range", percent)
		}
		s.healthCheckPercent = percent
		return nil
	}
}

func SetClock(now func() time.Time) func(*Server) error {
	return func(s *Server) error {
		s.now = now
		return nil
	}
}
