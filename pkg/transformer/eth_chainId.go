package transformer

import (
	"context"

	"github.com/pkg/errors"
	"github.com/revolutionchain/ethfmt/pkg/eth"
	f "github.com/revolutionchain/ethfmt/pkg/formatting"
	"github.com/revolutionchain/ethfmt/pkg/middleware"
)

var ErrChainIDMismatch = errors.New("transaction chain id does not match the node")

// methods whose first param is a transaction that may carry a chainId
var chainIDValidatedMethods = []string{
	eth.MethodCall,
	eth.MethodEstimateGas,
	eth.MethodSendTransaction,
	eth.MethodSignTransaction,
}

// ChainIDValidation builds request formatters that reject transactions whose
// chainId differs from the chain id reported by the node. The chain id is
// fetched through the client on every call; wrap it with middleware.Memoize
// to reuse it.
func ChainIDValidation() middleware.FormattersBuilder {
	return func(ctx context.Context, client eth.Transport, method string) (*f.FormatterSet, error) {
		if !isChainIDValidated(method) {
			return nil, nil
		}
		if client == nil {
			return nil, errors.New("chain id validation needs a client")
		}

		chainID, err := FetchChainID(ctx, client)
		if err != nil {
			return nil, err
		}

		set := f.NewFormatterSet()
		set.Request[method] = f.ApplyAtIndex(f.ApplyIf(f.IsMap, requireChainID(chainID)), 0)
		return set, nil
	}
}

// FetchChainID asks the node for its chain id as a normalized hex quantity.
func FetchChainID(ctx context.Context, client eth.Transport) (string, error) {
	outcome, err := client.Send(ctx, eth.MethodChainId, nil)
	if err != nil {
		return "", errors.Wrap(err, "fetching chain id")
	}
	if outcome.State() == eth.StateError {
		return "", errors.Wrap(outcome.Error, "fetching chain id")
	}
	if outcome.State() == eth.StateNull {
		return "", errors.New("node returned no chain id")
	}
	chainID, err := f.IntegerToHex(outcome.Result)
	if err != nil {
		return "", errors.Wrap(err, "decoding chain id")
	}
	return chainID.(string), nil
}

func requireChainID(expected string) f.Formatter {
	return func(value interface{}) (interface{}, error) {
		tx := value.(map[string]interface{})
		raw, ok := tx["chainId"]
		if !ok || raw == nil {
			return value, nil
		}
		got, err := f.IntegerToHex(raw)
		if err != nil {
			return nil, errors.Wrap(err, "chainId")
		}
		if got != expected {
			return nil, errors.Wrapf(ErrChainIDMismatch, "got %s, node is on %s", got, expected)
		}
		return value, nil
	}
}

func isChainIDValidated(method string) bool {
	for _, m := range chainIDValidatedMethods {
		if m == method {
			return true
		}
	}
	return false
}
