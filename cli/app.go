package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/revolutionchain/ethfmt/pkg/analytics"
	"github.com/revolutionchain/ethfmt/pkg/formatting"
	"github.com/revolutionchain/ethfmt/pkg/middleware"
	"github.com/revolutionchain/ethfmt/pkg/params"
	"github.com/revolutionchain/ethfmt/pkg/pipeline"
	"github.com/revolutionchain/ethfmt/pkg/server"
	"github.com/revolutionchain/ethfmt/pkg/transformer"
	"github.com/revolutionchain/ethfmt/pkg/transport"
	"github.com/revolutionchain/ethfmt/pkg/units"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("ethfmt", "Formatting pipeline for Ethereum JSON-RPC")

	ethRPC          = app.Flag("rpc", "URL of the Ethereum JSON-RPC node").Envar("ETH_RPC").Default("http://localhost:8545").String()
	logFile         = app.Flag("log-file", "write logs to a file").Envar("LOG_FILE").Default("").String()
	devMode         = app.Flag("dev", "[Insecure] Developer mode").Envar("DEV").Default("false").Bool()
	rateLimit       = app.Flag("rate-limit", "maximum node requests per second, 0 disables limiting").Envar("RATE_LIMIT").Default("0").Float64()
	rateBurst       = app.Flag("rate-burst", "node requests allowed in a burst above the rate limit").Envar("RATE_BURST").Default("10").Int()
	unit            = app.Flag("units", "denomination of balances and gas prices: wei, gwei or ether").Envar("UNITS").Default("wei").String()
	validateChainID = app.Flag("validate-chain-id", "reject transactions whose chainId differs from the node's").Envar("VALIDATE_CHAIN_ID").Default("false").Bool()
	chainIDTTL      = app.Flag("chain-id-ttl", "how long the node's chain id is cached").Envar("CHAIN_ID_TTL").Default("15s").Duration()
	disableSnipping = app.Flag("disableSnipping", "[Development] Disable ...snip... in logs").Default("false").Bool()

	callCmd    = app.Command("call", "Send one formatted call and print its decoded result")
	callMethod = callCmd.Arg("method", "JSON-RPC method name").Required().String()
	callParams = callCmd.Arg("params", "params as JSON literals, anything else is taken as a string").Strings()

	serveCmd           = app.Command("serve", "Serve a JSON-RPC endpoint returning decoded results")
	bind               = serveCmd.Flag("bind", "network interface to bind to (e.g. 0.0.0.0) ").Default("localhost").String()
	port               = serveCmd.Flag("port", "port to serve on").Default("23890").Int()
	healthCheckPercent = serveCmd.Flag("health-check-healthy-request-amount", "configure the minimum call success rate for the readiness check").Envar("HEALTH_CHECK_REQUEST_PERCENT").Default("80").Int()
)

func setupLogger(out io.Writer) (log.Logger, io.Writer, func(), error) {
	writers := []io.Writer{out}
	closer := func() {}

	if logFile != nil && (*logFile) != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, nil, errors.Wrapf(err, "Failed to open log file %s", *logFile)
		}
		writers = append(writers, f)
		closer = func() { f.Close() }
	}

	logWriter := io.MultiWriter(writers...)
	logger := log.NewLogfmtLogger(logWriter)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	if !*devMode {
		logger = level.NewFilter(logger, level.AllowWarn())
	}

	return logger, logWriter, closer, nil
}

// buildPipeline wires the node client and the formatting stages selected by
// the flags.
func buildPipeline(ctx context.Context, logger log.Logger, a *analytics.Analytics) (*pipeline.Pipeline, *transport.Client, error) {
	client, err := transport.NewClient(
		*ethRPC,
		transport.SetDebug(*devMode),
		transport.SetLogger(logger),
		transport.SetRateLimit(*rateLimit, *rateBurst),
		transport.SetDisableSnipping(*disableSnipping),
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "transport#NewClient")
	}

	p, err := pipeline.NewDefault(
		client,
		pipeline.SetDebug(*devMode),
		pipeline.SetLogger(logger),
		pipeline.SetAnalytics(a),
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "pipeline#NewDefault")
	}

	if *validateChainID {
		builder, err := middleware.Memoize(
			transformer.ChainIDValidation(),
			*chainIDTTL,
			middleware.WithContext(ctx),
			middleware.WithLogger(logger, *devMode),
		)
		if err != nil {
			return nil, nil, errors.Wrap(err, "middleware#Memoize")
		}
		stage, err := middleware.New(
			middleware.Config{FormattersBuilder: builder},
			middleware.SetDebug(*devMode),
			middleware.SetLogger(logger),
		)
		if err != nil {
			return nil, nil, errors.Wrap(err, "chain id middleware")
		}
		if err := p.Add("chain-id", stage); err != nil {
			return nil, nil, err
		}
	}

	u, err := units.ParseUnit(*unit)
	if err != nil {
		return nil, nil, err
	}
	if u != units.Wei {
		stage, err := units.NewStage(u, middleware.SetDebug(*devMode), middleware.SetLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		if err := p.Inject("units", stage, 0); err != nil {
			return nil, nil, err
		}
	}

	level.Debug(logger).Log("msg", "pipeline ready", "stages", strings.Join(p.Stages(), ","))
	return p, client, nil
}

// parseParams reads each argument as a JSON literal. Arguments that are not
// valid JSON, like a bare 0x address, are taken as strings.
func parseParams(args []string) formatting.Params {
	out := make(formatting.Params, 0, len(args))
	for _, arg := range args {
		dec := json.NewDecoder(bytes.NewReader([]byte(arg)))
		dec.UseNumber()
		var v interface{}
		if err := dec.Decode(&v); err != nil || dec.More() {
			out = append(out, arg)
			continue
		}
		out = append(out, v)
	}
	return out
}

func callAction(pc *kingpin.ParseContext) error {
	return runCall(context.Background(), os.Stdout, os.Stderr)
}

func runCall(ctx context.Context, stdout, stderr io.Writer) error {
	logger, _, closeLog, err := setupLogger(stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p, _, err := buildPipeline(ctx, logger, nil)
	if err != nil {
		return err
	}

	result, err := p.Call(ctx, *callMethod, parseParams(*callParams)...)
	if err != nil {
		return errors.Wrap(err, *callMethod)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode result")
	}
	_, err = fmt.Fprintln(stdout, string(out))
	return err
}

func serveAction(pc *kingpin.ParseContext) error {
	logger, logWriter, closeLog, err := setupLogger(os.Stdout)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	callAnalytics := analytics.NewAnalytics(50)

	p, client, err := buildPipeline(ctx, logger, callAnalytics)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", *bind, *port)
	s, err := server.New(
		p,
		client,
		addr,
		server.SetLogWriter(logWriter),
		server.SetLogger(logger),
		server.SetDebug(*devMode),
		server.SetAnalytics(callAnalytics),
		server.SetHealthCheckPercent(*healthCheckPercent),
	)
	if err != nil {
		return errors.Wrap(err, "server#New")
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := s.Shutdown(shutdownCtx); err != nil {
			level.Error(logger).Log("msg", "shutdown failed", "err", err)
		}
	}()

	if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func Run() {
	app.Version(params.VersionWithGitSha)
	kingpin.MustParse(app.Parse(os.Args[1:]))
}

func init() {
	callCmd.Action(callAction)
	serveCmd.Action(serveAction)
}
