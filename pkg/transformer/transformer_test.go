package transformer

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/revolutionchain/ethfmt/pkg/eth"
	"github.com/revolutionchain/ethfmt/pkg/formatting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsDuplicates(t *testing.T) {
	_, err := New([]MethodFormatter{&ETHGetBalance{}, &ETHGetBalance{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), eth.MethodGetBalance)
}

func TestDefaultFormattersAreUnique(t *testing.T) {
	tr, err := New(DefaultFormatters())
	require.NoError(t, err)

	for _, mf := range DefaultFormatters() {
		got, ok := tr.Lookup(mf.Method())
		require.True(t, ok, mf.Method())
		assert.Equal(t, mf.Method(), got.Method())
	}
}

func TestDefaultFormatterSet(t *testing.T) {
	set := DefaultFormatterSet()
	assert.Same(t, set, DefaultFormatterSet())

	tests := []struct {
		method  string
		request bool
		result  bool
		null    bool
	}{
		{eth.MethodGetBalance, true, true, false},
		{eth.MethodBlockNumber, false, true, false},
		{eth.MethodGetBlockByNumber, true, true, true},
		{eth.MethodGetBlockByHash, false, true, true},
		{eth.MethodGetTransactionByHash, false, true, true},
		{eth.MethodGetTransactionReceipt, false, true, true},
		{eth.MethodNewFilter, true, false, false},
		{eth.MethodSendRawTransaction, true, true, false},
		{eth.MethodGetBlockTransactionCountByNumber, true, true, false},
		{eth.MethodNetPeerCount, false, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			_, req := set.Request[tt.method]
			_, res := set.Result[tt.method]
			_, null := set.Null[tt.method]
			assert.Equal(t, tt.request, req, "request")
			assert.Equal(t, tt.result, res, "result")
			assert.Equal(t, tt.null, null, "null")
		})
	}

	assert.False(t, set.Has("web3_sha3"))
}

func TestGetBalanceRequest(t *testing.T) {
	set := DefaultFormatterSet()
	params, err := set.ProcessRequest(eth.MethodGetBalance, formatting.Params{
		"0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED",
		12345,
	})
	require.NoError(t, err)
	assert.Equal(t, formatting.Params{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", "0x3039"}, params)
}

func TestGetBalanceRequestBlockArgument(t *testing.T) {
	set := DefaultFormatterSet()
	addr := "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"

	tests := []struct {
		name  string
		block interface{}
		want  interface{}
	}{
		{"tag", eth.BlockTagLatest, eth.BlockTagLatest},
		{"finalized", eth.BlockTagFinalized, eth.BlockTagFinalized},
		{"hex", "0x10", "0x10"},
		{"integer", uint64(0), "0x0"},
		{"big", big.NewInt(255), "0xff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := set.ProcessRequest(eth.MethodGetBalance, formatting.Params{addr, tt.block})
			require.NoError(t, err)
			assert.Equal(t, tt.want, params[1])
		})
	}

	t.Run("block is optional", func(t *testing.T) {
		params, err := set.ProcessRequest(eth.MethodGetBalance, formatting.Params{addr})
		require.NoError(t, err)
		assert.Len(t, params, 1)
	})

	t.Run("address is required", func(t *testing.T) {
		_, err := set.ProcessRequest(eth.MethodGetBalance, formatting.Params{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, formatting.ErrIndexOutOfRange))
	})

	t.Run("invalid address", func(t *testing.T) {
		_, err := set.ProcessRequest(eth.MethodGetBalance, formatting.Params{"0x1234", "latest"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, formatting.ErrInvalidAddress))

		var ferr *formatting.FormatterError
		require.True(t, errors.As(err, &ferr))
		assert.Equal(t, eth.MethodGetBalance, ferr.Method)
		assert.Equal(t, formatting.DirectionRequest, ferr.Direction)
	})
}

func TestGetBalanceResult(t *testing.T) {
	set := DefaultFormatterSet()
	outcome, err := set.ProcessResponse(eth.MethodGetBalance, nil, eth.NewResultOutcome("0x83a3c396d1a7b40"))
	require.NoError(t, err)

	want, _ := new(big.Int).SetString("592852518293896000", 10)
	assertBig(t, want, outcome.Result)
}

// big.Int values built differently may hold different internal slices
func assertBig(t *testing.T, want interface{}, got interface{}) {
	t.Helper()
	n, ok := got.(*big.Int)
	require.True(t, ok, "expected *big.Int, got %T", got)
	switch w := want.(type) {
	case *big.Int:
		assert.Equal(t, w.String(), n.String())
	case int:
		assert.Equal(t, big.NewInt(int64(w)).String(), n.String())
	case int64:
		assert.Equal(t, big.NewInt(w).String(), n.String())
	default:
		t.Fatalf("unsupported want type %T", want)
	}
}

func TestRoundTripQuantity(t *testing.T) {
	set := DefaultFormatterSet()
	for _, n := range []int64{0, 1, 15, 16, 12345, 1 << 40} {
		params, err := set.ProcessRequest(eth.MethodGetBlockTransactionCountByNumber, formatting.Params{n})
		require.NoError(t, err)

		outcome, err := set.ProcessResponse(eth.MethodBlockNumber, nil, eth.NewResultOutcome(params[0]))
		require.NoError(t, err)
		assertBig(t, n, outcome.Result)
	}
}

func TestUnknownMethodPassesThrough(t *testing.T) {
	set := DefaultFormatterSet()
	in := formatting.Params{"anything", 1}
	params, err := set.ProcessRequest("debug_traceTransaction", in)
	require.NoError(t, err)
	assert.Equal(t, in, params)

	outcome, err := set.ProcessResponse("debug_traceTransaction", in, eth.NewResultOutcome("0x1"))
	require.NoError(t, err)
	assert.Equal(t, "0x1", outcome.Result)
}
