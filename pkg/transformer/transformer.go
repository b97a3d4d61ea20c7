package transformer

import (
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/revolutionchain/ethfmt/pkg/eth"
	"github.com/revolutionchain/ethfmt/pkg/formatting"
)

type Transformer struct {
	debugMode  bool
	logger     log.Logger
	formatters map[string]MethodFormatter
}

// New creates a new Transformer
func New(formatters []MethodFormatter, opts ...Option) (*Transformer, error) {
	t := &Transformer{
		logger: log.NewNopLogger(),
	}

	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}

	for _, mf := range formatters {
		if err := t.Register(mf); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Register registers a MethodFormatter to a Transformer
func (t *Transformer) Register(mf MethodFormatter) error {
	if t.formatters == nil {
		t.formatters = make(map[string]MethodFormatter)
	}

	m := mf.Method()
	if _, ok := t.formatters[m]; ok {
		return errors.Errorf("method already exist: %s ", m)
	}

	t.formatters[m] = mf
	if t.debugMode {
		level.Debug(t.logger).Log("msg", "registered method formatter", "method", m)
	}

	return nil
}

func (t *Transformer) Lookup(method string) (MethodFormatter, bool) {
	mf, ok := t.formatters[method]
	return mf, ok
}

// FormatterSet flattens the registered method formatters into the per-leg
// maps used by the middleware.
func (t *Transformer) FormatterSet() *formatting.FormatterSet {
	set := formatting.NewFormatterSet()
	for method, mf := range t.formatters {
		if req := mf.RequestFormatter(); req != nil {
			set.Request[method] = req
		}
		if res := mf.ResultFormatter(); res != nil {
			set.Result[method] = res
		}
		if nr, ok := mf.(NullResultFormatter); ok {
			if nf := nr.NullFormatter(); nf != nil {
				set.Null[method] = nf
			}
		}
	}
	return set
}

func (t *Transformer) IsDebugEnabled() bool {
	return t.debugMode
}

var (
	defaultSetOnce sync.Once
	defaultSet     *formatting.FormatterSet
)

// DefaultFormatterSet returns the formatter set of DefaultFormatters. It is
// built once and shared; callers must not modify it.
func DefaultFormatterSet() *formatting.FormatterSet {
	defaultSetOnce.Do(func() {
		t, err := New(DefaultFormatters())
		if err != nil {
			panic(errors.Wrap(err, "default method formatters"))
		}
		defaultSet = t.FormatterSet()
	})
	return defaultSet
}

// DefaultFormatters are the method formatters made available by default
func DefaultFormatters() []MethodFormatter {
	formatters := []MethodFormatter{
		&ETHGetBalance{},
		&ETHGetCode{},
		&ETHGetTransactionCount{},
		&ETHGetStorageAt{},

		&ETHGetBlockByNumber{},
		&ETHGetBlockByHash{},
		&ETHGetUncleByBlockNumberAndIndex{},
		&ETHGetUncleByBlockHashAndIndex{},

		&ETHGetTransactionByHash{},
		&ETHGetTransactionByBlockNumberAndIndex{},
		&ETHGetTransactionByBlockHashAndIndex{},
		&ETHGetRawTransactionByHash{},
		&ETHGetTransactionReceipt{},

		&ETHGetLogs{},
		&ETHNewFilter{},
		&ETHGetFilterLogs{},
		&ETHGetFilterChanges{},

		&ETHCall{},
		&ETHEstimateGas{},
		&ETHSendTransaction{},
		&ETHSendRawTransaction{},
		&ETHSign{},
		&ETHSignTransaction{},

		&ETHAccounts{},
		&ETHCoinbase{},
		&ETHSyncing{},
		&ETHFeeHistory{},
		&ETHGetProof{},
	}

	quantityMethods := []string{
		eth.MethodBlockNumber,
		eth.MethodChainId,
		eth.MethodGasPrice,
		eth.MethodMaxPriorityFeePerGas,
		eth.MethodBlobBaseFee,
		eth.MethodNetPeerCount,
		eth.MethodGetBlockTransactionCountByHash,
		eth.MethodGetUncleCountByBlockHash,
	}
	for _, method := range quantityMethods {
		formatters = append(formatters, &QuantityResult{method: method})
	}

	blockCountMethods := []string{
		eth.MethodGetBlockTransactionCountByNumber,
		eth.MethodGetUncleCountByBlockNumber,
	}
	for _, method := range blockCountMethods {
		formatters = append(formatters, &BlockCountByNumber{method: method})
	}

	return formatters
}

func SetDebug(debug bool) func(*Transformer) error {
	return func(t *Transformer) error {
		t.debugMode = debug
		return nil
	}
}

func SetLogger(l log.Logger) func(*Transformer) error {
	return func(t *Transformer) error {
		t.logger = log.WithPrefix(l, "component", "transformer")
		return nil
	}
}
