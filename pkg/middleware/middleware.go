package middleware

import (
	"context"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/revolutionchain/ethfmt/pkg/eth"
	"github.com/revolutionchain/ethfmt/pkg/formatting"
)

// FormattersBuilder produces the formatter set for method at call time. It
// may query the node through client, e.g. for the chain id, and must honour
// ctx while doing so.
type FormattersBuilder func(ctx context.Context, client eth.Transport, method string) (*formatting.FormatterSet, error)

// Config holds the static formatter maps of a middleware and an optional
// builder consulted on every call.
type Config struct {
	RequestFormatters map[string]formatting.ParamsFormatter
	ResultFormatters  map[string]formatting.Formatter
	ErrorFormatters   map[string]formatting.ErrorFormatter
	NullFormatters    map[string]formatting.NullFormatter

	FormattersBuilder FormattersBuilder

	// RejectAmbiguous makes a method formatted both statically and by the
	// builder on the same leg an error instead of letting the builder win.
	RejectAmbiguous bool
}

type Option func(*FormattingMiddleware) error

// FormattingMiddleware applies one layer of formatting around a call.
type FormattingMiddleware struct {
	static          *formatting.FormatterSet
	builder         FormattersBuilder
	rejectAmbiguous bool

	logger    log.Logger
	debugMode bool
}

func New(cfg Config, opts ...Option) (*FormattingMiddleware, error) {
	static := formatting.NewFormatterSet()
	for m, f := range cfg.RequestFormatters {
		static.Request[m] = f
	}
	for m, f := range cfg.ResultFormatters {
		static.Result[m] = f
	}
	for m, f := range cfg.ErrorFormatters {
		static.Error[m] = f
	}
	for m, f := range cfg.NullFormatters {
		static.Null[m] = f
	}

	mw := &FormattingMiddleware{
		static:          static,
		builder:         cfg.FormattersBuilder,
		rejectAmbiguous: cfg.RejectAmbiguous,
		logger:          log.NewNopLogger(),
	}

	for _, opt := range opts {
		if err := opt(mw); err != nil {
			return nil, err
		}
	}

	return mw, nil
}

// FromFormatterSet wraps an already built set as a static middleware.
func FromFormatterSet(set *formatting.FormatterSet, opts ...Option) (*FormattingMiddleware, error) {
	if set == nil {
		set = formatting.NewFormatterSet()
	}
	return New(Config{
		RequestFormatters: set.Request,
		ResultFormatters:  set.Result,
		ErrorFormatters:   set.Error,
		NullFormatters:    set.Null,
	}, opts...)
}

// Static returns the formatters given at construction.
func (mw *FormattingMiddleware) Static() *formatting.FormatterSet {
	return mw.static
}

// Resolve returns the formatter set to use for one call of method. Without a
// builder this is the static set. Builder errors abort the call.
func (mw *FormattingMiddleware) Resolve(ctx context.Context, client eth.Transport, method string) (*formatting.FormatterSet, error) {
	if mw.builder == nil {
		return mw.static, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dynamic, err := mw.builder(ctx, client, method)
	if err != nil {
		return nil, errors.Wrapf(err, "building formatters for %s", method)
	}
	if dynamic.IsEmpty() {
		return mw.static, nil
	}

	if overlap := mw.static.Overlap(dynamic); len(overlap) > 0 {
		if mw.rejectAmbiguous {
			return nil, errors.Wrapf(formatting.ErrAmbiguousFormatterSource, "%v", overlap)
		}
		if mw.debugMode {
			level.Debug(mw.logger).Log("msg", "dynamic formatters override static ones", "method", method, "overlap", overlap)
		}
	}

	return mw.static.Merge(dynamic), nil
}

// ProcessRequest resolves the formatters for method and applies the request leg.
func (mw *FormattingMiddleware) ProcessRequest(ctx context.Context, client eth.Transport, method string, params formatting.Params) (formatting.Params, error) {
	set, err := mw.Resolve(ctx, client, method)
	if err != nil {
		return nil, err
	}
	return set.ProcessRequest(method, params)
}

// ProcessResponse resolves the formatters for method and applies the leg
// matching the state of outcome.
func (mw *FormattingMiddleware) ProcessResponse(ctx context.Context, client eth.Transport, method string, params formatting.Params, outcome *eth.Outcome) (*eth.Outcome, error) {
	set, err := mw.Resolve(ctx, client, method)
	if err != nil {
		return nil, err
	}
	return set.ProcessResponse(method, params, outcome)
}

func (mw *FormattingMiddleware) IsDebugEnabled() bool {
	return mw.debugMode
}

func SetDebug(debug bool) func(*FormattingMiddleware) error {
	return func(mw *FormattingMiddleware) error {
		mw.debugMode = debug
		return nil
	}
}

func SetLogger(l log.Logger) func(*FormattingMiddleware) error {
	return func(mw *FormattingMiddleware) error {
		mw.logger = log.WithPrefix(l, "component", "middleware")
		return nil
	}
}
