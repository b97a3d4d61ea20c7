package transformer

import (
	"bytes"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/revolutionchain/ethfmt/pkg/eth"
	"github.com/revolutionchain/ethfmt/pkg/formatting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodes a node response the way the transport does
func wire(t *testing.T, raw string) interface{} {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var v interface{}
	require.NoError(t, dec.Decode(&v))
	return v
}

const testBlock = `{
	"baseFeePerGas": "0x7",
	"difficulty": "0x0",
	"extraData": "0x",
	"gasLimit": "0x1c9c380",
	"gasUsed": "0x5208",
	"hash": "0x4e3a3754410177e6937ef1f84bba68ea139e8d1a2258c5f85db9f1cd715a1bdd",
	"logsBloom": "0x00",
	"miner": "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
	"mixHash": "0x0000000000000000000000000000000000000000000000000000000000000000",
	"nonce": "0x0000000000000000",
	"number": "0x1b4",
	"parentHash": "0x9646252be9520f6e71339a8df9c55e4d7619deeb018d2a3f2d21fc165dde5eb5",
	"size": "0x220",
	"timestamp": "0x55ba467c",
	"totalDifficulty": null,
	"transactions": ["0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"],
	"uncles": [],
	"sealFields": ["0x1"]
}`

func TestBlockResult(t *testing.T) {
	set := DefaultFormatterSet()
	outcome, err := set.ProcessResponse(eth.MethodGetBlockByNumber, formatting.Params{"0x1b4", false}, eth.NewResultOutcome(wire(t, testBlock)))
	require.NoError(t, err)

	block := outcome.Result.(map[string]interface{})
	assertBig(t, 436, block["number"])
	assertBig(t, 7, block["baseFeePerGas"])
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", block["miner"])
	assert.Equal(t, common.HexToHash("0x4e3a3754410177e6937ef1f84bba68ea139e8d1a2258c5f85db9f1cd715a1bdd"), block["hash"])
	assert.IsType(t, hexutil.Bytes{}, block["extraData"])
	assert.Empty(t, block["extraData"])
	assert.Nil(t, block["totalDifficulty"], "null fields stay null")
	assert.Equal(t, []interface{}{"0x1"}, block["sealFields"], "unknown fields are kept")
	assert.Equal(t, []interface{}{
		common.HexToHash("0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"),
	}, block["transactions"])
	assert.Equal(t, []interface{}{}, block["uncles"])
}

func TestBlockResultRequiresPrefix(t *testing.T) {
	set := DefaultFormatterSet()
	block := wire(t, `{"number": "1b4"}`)
	_, err := set.ProcessResponse(eth.MethodGetBlockByNumber, nil, eth.NewResultOutcome(block))
	require.Error(t, err)
	assert.True(t, errors.Is(err, formatting.ErrInvalidHex))
}

func TestBlockWithFullTransactions(t *testing.T) {
	set := DefaultFormatterSet()
	block := wire(t, `{
		"number": "0x1",
		"transactions": [{
			"hash": "0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b",
			"from": "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359",
			"to": null,
			"value": "0xde0b6b3a7640000",
			"v": "1b",
			"nonce": "0x15"
		}]
	}`)
	outcome, err := set.ProcessResponse(eth.MethodGetBlockByHash, nil, eth.NewResultOutcome(block))
	require.NoError(t, err)

	txs := outcome.Result.(map[string]interface{})["transactions"].([]interface{})
	require.Len(t, txs, 1)
	tx := txs[0].(map[string]interface{})
	assert.Equal(t, "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359", tx["from"])
	assert.Nil(t, tx["to"])
	assertBig(t, 27, tx["v"])
	assertBig(t, 21, tx["nonce"])
}

func TestNullBlockAndTransaction(t *testing.T) {
	set := DefaultFormatterSet()

	_, err := set.ProcessResponse(eth.MethodGetBlockByNumber, formatting.Params{"0x99999999", false}, eth.NewResultOutcome(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, formatting.ErrBlockNotFound))
	assert.Contains(t, err.Error(), "0x99999999")

	for _, method := range []string{
		eth.MethodGetTransactionByHash,
		eth.MethodGetTransactionReceipt,
		eth.MethodGetRawTransactionByHash,
		eth.MethodGetTransactionByBlockNumberAndIndex,
	} {
		_, err := set.ProcessResponse(method, formatting.Params{"0xabc"}, eth.NewResultOutcome(nil))
		require.Error(t, err, method)
		assert.True(t, errors.Is(err, formatting.ErrTransactionNotFound), method)
	}

	// methods without a null formatter return nil
	outcome, err := set.ProcessResponse(eth.MethodGetBalance, nil, eth.NewResultOutcome(nil))
	require.NoError(t, err)
	assert.Equal(t, eth.StateNull, outcome.State())
}

func TestReceiptResult(t *testing.T) {
	set := DefaultFormatterSet()
	receipt := wire(t, `{
		"blockNumber": "0x10",
		"contractAddress": null,
		"gasUsed": "0x5208",
		"status": "1",
		"logs": [{
			"address": "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
			"topics": ["0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"],
			"data": "0x0001",
			"logIndex": "0x0",
			"removed": false
		}]
	}`)
	outcome, err := set.ProcessResponse(eth.MethodGetTransactionReceipt, nil, eth.NewResultOutcome(receipt))
	require.NoError(t, err)

	r := outcome.Result.(map[string]interface{})
	assertBig(t, 1, r["status"])
	assertBig(t, 21000, r["gasUsed"])
	assert.Nil(t, r["contractAddress"])

	logs := r["logs"].([]interface{})
	log := logs[0].(map[string]interface{})
	assert.Equal(t, hexutil.Bytes{0x00, 0x01}, log["data"])
	assertBig(t, 0, log["logIndex"])
	assert.Equal(t, false, log["removed"])
}

func TestFilterChangesResult(t *testing.T) {
	set := DefaultFormatterSet()
	changes := wire(t, `["0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"]`)
	outcome, err := set.ProcessResponse(eth.MethodGetFilterChanges, nil, eth.NewResultOutcome(changes))
	require.NoError(t, err)
	assert.Equal(t, []interface{}{
		common.HexToHash("0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"),
	}, outcome.Result)
}

func TestGetLogsRequest(t *testing.T) {
	set := DefaultFormatterSet()
	params, err := set.ProcessRequest(eth.MethodGetLogs, formatting.Params{map[string]interface{}{
		"fromBlock": 100,
		"toBlock":   "latest",
		"address":   []string{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"},
		"topics":    []interface{}{nil},
	}})
	require.NoError(t, err)

	filter := params[0].(map[string]interface{})
	assert.Equal(t, "0x64", filter["fromBlock"])
	assert.Equal(t, "latest", filter["toBlock"])
	assert.Equal(t, []interface{}{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"}, filter["address"])
	assert.Equal(t, []interface{}{nil}, filter["topics"])
}

func TestCallRequest(t *testing.T) {
	set := DefaultFormatterSet()
	tx := map[string]interface{}{
		"from":  "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
		"to":    common.HexToAddress("0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359"),
		"value": big.NewInt(1000000000000000000),
		"gas":   21000,
		"data":  []byte{0xde, 0xad},
	}

	params, err := set.ProcessRequest(eth.MethodCall, formatting.Params{tx})
	require.NoError(t, err)
	require.Len(t, params, 1)

	got := params[0].(map[string]interface{})
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", got["from"])
	assert.Equal(t, "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359", got["to"])
	assert.Equal(t, "0xde0b6b3a7640000", got["value"])
	assert.Equal(t, "0x5208", got["gas"])
	assert.Equal(t, "0xdead", got["data"])
	assert.Equal(t, 21000, tx["gas"], "input is not mutated")

	params, err = set.ProcessRequest(eth.MethodEstimateGas, formatting.Params{tx, 5})
	require.NoError(t, err)
	assert.Equal(t, "0x5", params[1])
}

func TestFeeHistory(t *testing.T) {
	set := DefaultFormatterSet()
	params, err := set.ProcessRequest(eth.MethodFeeHistory, formatting.Params{4, "latest", []float64{25, 75}})
	require.NoError(t, err)
	assert.Equal(t, formatting.Params{"0x4", "latest", []float64{25, 75}}, params)

	result := wire(t, `{"oldestBlock": "0x10", "baseFeePerGas": ["0x1", "0x2"], "gasUsedRatio": [0.5], "reward": [["0x3", "0x4"]]}`)
	outcome, err := set.ProcessResponse(eth.MethodFeeHistory, params, eth.NewResultOutcome(result))
	require.NoError(t, err)

	r := outcome.Result.(map[string]interface{})
	assertBig(t, 16, r["oldestBlock"])
	baseFees := r["baseFeePerGas"].([]interface{})
	require.Len(t, baseFees, 2)
	assertBig(t, 1, baseFees[0])
	assertBig(t, 2, baseFees[1])
	rewards := r["reward"].([]interface{})
	require.Len(t, rewards, 1)
	assertBig(t, 4, rewards[0].([]interface{})[1])
	assert.Equal(t, []interface{}{json.Number("0.5")}, r["gasUsedRatio"])
}

func TestSyncing(t *testing.T) {
	set := DefaultFormatterSet()
	outcome, err := set.ProcessResponse(eth.MethodSyncing, nil, eth.NewResultOutcome(false))
	require.NoError(t, err)
	assert.Equal(t, false, outcome.Result)

	outcome, err = set.ProcessResponse(eth.MethodSyncing, nil, eth.NewResultOutcome(wire(t, `{"currentBlock": "0x2", "highestBlock": "0x3"}`)))
	require.NoError(t, err)
	r := outcome.Result.(map[string]interface{})
	assertBig(t, 3, r["highestBlock"])
}

func TestAccounts(t *testing.T) {
	set := DefaultFormatterSet()
	outcome, err := set.ProcessResponse(eth.MethodAccounts, nil, eth.NewResultOutcome(wire(t, `["0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"]`)))
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"}, outcome.Result)
}
