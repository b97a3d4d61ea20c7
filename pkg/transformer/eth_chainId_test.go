package transformer

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/revolutionchain/ethfmt/pkg/eth"
	"github.com/revolutionchain/ethfmt/pkg/formatting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainIDNode(chainID interface{}, calls *int) eth.Transport {
	return eth.TransportFunc(func(ctx context.Context, method string, params []interface{}) (*eth.Outcome, error) {
		if method != eth.MethodChainId {
			return nil, errors.Errorf("unexpected method %s", method)
		}
		*calls++
		return eth.NewResultOutcome(chainID), nil
	})
}

func TestChainIDValidation(t *testing.T) {
	calls := 0
	client := chainIDNode("0x1", &calls)
	build := ChainIDValidation()
	ctx := context.Background()

	set, err := build(ctx, client, eth.MethodGetBalance)
	require.NoError(t, err)
	assert.True(t, set.IsEmpty())
	assert.Equal(t, 0, calls, "other methods do not query the node")

	set, err = build(ctx, client, eth.MethodSendTransaction)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	tests := []struct {
		name    string
		tx      map[string]interface{}
		wantErr bool
	}{
		{"matching hex", map[string]interface{}{"chainId": "0x1"}, false},
		{"matching integer", map[string]interface{}{"chainId": 1}, false},
		{"absent", map[string]interface{}{"value": "0x0"}, false},
		{"mismatch", map[string]interface{}{"chainId": "0x5"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := set.ProcessRequest(eth.MethodSendTransaction, formatting.Params{tt.tx})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrChainIDMismatch))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestFetchChainID(t *testing.T) {
	calls := 0
	chainID, err := FetchChainID(context.Background(), chainIDNode("0x0000a", &calls))
	require.NoError(t, err)
	assert.Equal(t, "0xa", chainID)

	failing := eth.TransportFunc(func(ctx context.Context, method string, params []interface{}) (*eth.Outcome, error) {
		return eth.NewErrorOutcome(eth.NewMethodNotFoundError(method)), nil
	})
	_, err = FetchChainID(context.Background(), failing)
	require.Error(t, err)

	var rpcErr *eth.JSONRPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, eth.ErrCodeMethodNotFound, rpcErr.Code)
}
